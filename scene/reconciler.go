// Package scene maintains the live mapping from stable body identifiers to
// persistent visual representations, diff-reconciling it against each
// incoming frame. Representations for big bodies are individual ECS entities;
// qualifying small bodies share one fixed-capacity batched representation.
package scene

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/components"
	"github.com/saagar210/OrbitForge/effects"
	"github.com/saagar210/OrbitForge/sim"
)

// orientEpsilon is the minimum speed at which craft shapes re-orient along
// their velocity. Below it the previous orientation is kept.
const orientEpsilon = 1e-6

// Config holds the reconciler's fixed capacities and thresholds.
type Config struct {
	// SmallBodyMass is the batch-eligibility threshold: non-fixed, non-craft
	// bodies lighter than this render through the batch.
	SmallBodyMass float64
	// BatchCapacity bounds the batched representation.
	BatchCapacity int
	// TrailPoolSize bounds how many individual bodies can carry trails.
	TrailPoolSize int
}

// Stats reports reconciliation work. The per-sync counters reset on every
// Sync; SkippedTotal accumulates malformed-body skips for diagnostics.
type Stats struct {
	Created         int
	Disposed        int
	PropertyUpdates int
	Batched         int
	BatchDropped    int
	Skipped         int
	SkippedTotal    uint64
}

// PickSphere is the pickable bound of one individually rendered body.
type PickSphere struct {
	Center r3.Vec
	Radius float64
}

// View is the read-only identifier-to-pickable-bound snapshot published for
// the interaction layer. It reflects only individually rendered bodies;
// batched small bodies are intentionally unpickable.
type View map[uint32]PickSphere

// Reconciler owns the entity-to-representation map and the batch buffer.
// Both are mutated only inside Sync; everything else reads.
type Reconciler struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Spatial, components.Visual, components.Trail, components.Meta]

	spatialMap *ecs.Map1[components.Spatial]
	visualMap  *ecs.Map1[components.Visual]
	trailMap   *ecs.Map1[components.Trail]
	metaMap    *ecs.Map1[components.Meta]

	filter *ecs.Filter4[components.Spatial, components.Visual, components.Trail, components.Meta]

	byID   map[uint32]ecs.Entity
	batch  *Batch // created lazily on first qualifying body
	trails *effects.TrailPool

	cfg   Config
	stats Stats
	view  View
}

// NewReconciler creates a reconciler with an empty scene.
func NewReconciler(cfg Config) *Reconciler {
	world := ecs.NewWorld()
	return &Reconciler{
		world: world,
		mapper: ecs.NewMap4[
			components.Spatial,
			components.Visual,
			components.Trail,
			components.Meta,
		](world),
		filter: ecs.NewFilter4[
			components.Spatial,
			components.Visual,
			components.Trail,
			components.Meta,
		](world),
		spatialMap: ecs.NewMap1[components.Spatial](world),
		visualMap:  ecs.NewMap1[components.Visual](world),
		trailMap:   ecs.NewMap1[components.Trail](world),
		metaMap:    ecs.NewMap1[components.Meta](world),
		byID:       make(map[uint32]ecs.Entity),
		trails:     effects.NewTrailPool(cfg.TrailPoolSize, sim.MaxTrailPoints),
		cfg:        cfg,
		view:       make(View),
	}
}

// Sync reconciles the scene against the frame: create representations for
// new identifiers, update persisting ones in place, dispose vanished ones,
// and rebuild the batch. Malformed bodies are skipped for the frame, never
// fatal.
func (r *Reconciler) Sync(frame *sim.Frame) {
	skippedTotal := r.stats.SkippedTotal
	r.stats = Stats{SkippedTotal: skippedTotal}

	if r.batch != nil {
		r.batch.reset()
	}

	seen := make(map[uint32]struct{}, len(frame.Bodies))
	for i := range frame.Bodies {
		body := &frame.Bodies[i]
		if !body.Finite() {
			r.stats.Skipped++
			r.stats.SkippedTotal++
			continue
		}

		if r.batchEligible(body) {
			if r.batch == nil {
				r.batch = newBatch(r.cfg.BatchCapacity)
			}
			if r.batch.add(body) {
				r.stats.Batched++
			} else {
				r.stats.BatchDropped++
			}
			// A body can shrink into batch eligibility; its individual
			// representation must go the same frame.
			continue
		}

		seen[body.ID] = struct{}{}
		if entity, ok := r.byID[body.ID]; ok {
			r.update(entity, body)
		} else {
			r.create(body)
		}
	}

	// Dispose representations whose identifiers left the frame.
	for id, entity := range r.byID {
		if _, ok := seen[id]; ok {
			continue
		}
		r.dispose(id, entity)
	}

	r.publishView()
}

func (r *Reconciler) batchEligible(body *sim.Body) bool {
	return body.Mass < r.cfg.SmallBodyMass && !body.Fixed && body.Kind != sim.KindCraft
}

func (r *Reconciler) create(body *sim.Body) {
	forward := r3.Vec{X: 1}
	if speed := body.Speed(); speed > orientEpsilon {
		forward = r3.Scale(1/speed, body.Velocity)
	}

	// Trail pool exhaustion degrades to a trail-less representation.
	buf, _ := r.trails.Claim()
	updateTrail(buf, body.Trail)

	spatial := components.Spatial{Position: body.Position, Forward: forward}
	visual := components.Visual{
		Radius:   body.Radius,
		Color:    body.Color,
		Kind:     body.Kind,
		HasLight: body.Fixed,
	}
	trail := components.Trail{Buf: buf}
	meta := components.Meta{
		ID:      body.ID,
		Name:    body.Name,
		Fixed:   body.Fixed,
		Fuel:    body.Fuel,
		MaxFuel: body.MaxFuel,
		Thrust:  body.Thrust,
	}

	entity := r.mapper.NewEntity(&spatial, &visual, &trail, &meta)
	r.byID[body.ID] = entity
	r.stats.Created++
}

// update applies the minimal visual change for each property that differs
// from the cached last-seen values. Unchanged properties cost one compare.
func (r *Reconciler) update(entity ecs.Entity, body *sim.Body) {
	spatial := r.spatialMap.Get(entity)
	visual := r.visualMap.Get(entity)
	meta := r.metaMap.Get(entity)

	spatial.Position = body.Position
	if body.Kind == sim.KindCraft {
		if speed := body.Speed(); speed > orientEpsilon {
			spatial.Forward = r3.Scale(1/speed, body.Velocity)
		}
	}

	if visual.Radius != body.Radius || visual.Kind != body.Kind {
		visual.Radius = body.Radius
		visual.Kind = body.Kind
		r.stats.PropertyUpdates++
	}
	if visual.Color != body.Color {
		visual.Color = body.Color
		r.stats.PropertyUpdates++
	}
	if meta.Fixed != body.Fixed {
		meta.Fixed = body.Fixed
		visual.HasLight = body.Fixed
		r.stats.PropertyUpdates++
	}
	if meta.Name != body.Name {
		meta.Name = body.Name
		r.stats.PropertyUpdates++
	}
	meta.Fuel = body.Fuel
	meta.Thrust = body.Thrust

	updateTrail(r.trailMap.Get(entity).Buf, body.Trail)
}

func (r *Reconciler) dispose(id uint32, entity ecs.Entity) {
	if trail := r.trailMap.Get(entity); trail != nil {
		r.trails.Release(trail.Buf)
		trail.Buf = nil
	}
	r.world.RemoveEntity(entity)
	delete(r.byID, id)
	r.stats.Disposed++
}

func (r *Reconciler) publishView() {
	view := make(View, len(r.byID))
	for id, entity := range r.byID {
		spatial := r.spatialMap.Get(entity)
		visual := r.visualMap.Get(entity)
		view[id] = PickSphere{Center: spatial.Position, Radius: visual.Radius}
	}
	r.view = view
}

// View returns the published picking snapshot for the interaction layer.
func (r *Reconciler) View() View { return r.view }

// Batch returns the batched representation, or nil before its first use.
func (r *Reconciler) Batch() *Batch { return r.batch }

// Stats returns the counters from the most recent Sync.
func (r *Reconciler) Stats() Stats { return r.stats }

// TrailsOutstanding reports claimed trail buffers, for leak checks.
func (r *Reconciler) TrailsOutstanding() int { return r.trails.Outstanding() }

// TrackedCount returns the number of individual representations.
func (r *Reconciler) TrackedCount() int { return len(r.byID) }

// Entity resolves a body identifier to its representation entity.
func (r *Reconciler) Entity(id uint32) (ecs.Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// World exposes the ECS world for render passes.
func (r *Reconciler) World() *ecs.World { return r.world }

// Each iterates all individual representations.
func (r *Reconciler) Each(fn func(spatial *components.Spatial, visual *components.Visual, trail *components.Trail, meta *components.Meta)) {
	query := r.filter.Query()
	for query.Next() {
		spatial, visual, trail, meta := query.Get()
		fn(spatial, visual, trail, meta)
	}
}
