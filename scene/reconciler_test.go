package scene

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

func testConfig() Config {
	return Config{
		SmallBodyMass: 1.0,
		BatchCapacity: 8,
		TrailPoolSize: 16,
	}
}

func planet(id uint32, mass float64) sim.Body {
	return sim.Body{
		ID:     id,
		Mass:   mass,
		Radius: 5,
		Name:   "p",
		Kind:   sim.KindPlanet,
	}
}

func frameOf(bodies ...sim.Body) sim.Frame {
	return sim.Frame{Bodies: bodies, Tick: 1, SpeedMult: 1}
}

func TestSyncPartition(t *testing.T) {
	r := NewReconciler(testConfig())

	f := frameOf(
		planet(0, 100), // individual
		planet(1, 0.5), // batch-eligible
		planet(2, 0.5), // batch-eligible
		sim.Body{ID: 3, Mass: 0.5, Radius: 1, Fixed: true, Kind: sim.KindStar}, // fixed: individual
		sim.Body{ID: 4, Mass: 0.5, Radius: 1, Kind: sim.KindCraft},             // craft: individual
	)
	r.Sync(&f)

	if got := r.TrackedCount(); got != 3 {
		t.Errorf("individually tracked: want 3, got %d", got)
	}
	if got := r.Batch().Count(); got != 2 {
		t.Errorf("batch count: want 2, got %d", got)
	}

	// Only individual bodies are pickable.
	view := r.View()
	for _, id := range []uint32{0, 3, 4} {
		if _, ok := view[id]; !ok {
			t.Errorf("id %d missing from view", id)
		}
	}
	for _, id := range []uint32{1, 2} {
		if _, ok := view[id]; ok {
			t.Errorf("batched id %d must not be pickable", id)
		}
	}
}

func TestSyncIdempotent(t *testing.T) {
	r := NewReconciler(testConfig())
	f := frameOf(planet(0, 100), planet(1, 50))

	r.Sync(&f)
	first := r.Stats()
	if first.Created != 2 {
		t.Fatalf("first sync created %d, want 2", first.Created)
	}

	r.Sync(&f)
	second := r.Stats()
	if second.Created != 0 || second.Disposed != 0 || second.PropertyUpdates != 0 {
		t.Errorf("identical frame caused work: %+v", second)
	}
}

func TestSyncDisposal(t *testing.T) {
	r := NewReconciler(testConfig())
	baseline := r.TrailsOutstanding()

	f1 := frameOf(planet(0, 100), planet(1, 50))
	r.Sync(&f1)
	if r.TrailsOutstanding() != baseline+2 {
		t.Fatalf("expected 2 claimed trails, have %d", r.TrailsOutstanding()-baseline)
	}

	f2 := frameOf(planet(0, 100))
	r.Sync(&f2)

	if r.Stats().Disposed != 1 {
		t.Errorf("want 1 disposal, got %d", r.Stats().Disposed)
	}
	if r.TrackedCount() != 1 {
		t.Errorf("want 1 tracked, got %d", r.TrackedCount())
	}
	if r.TrailsOutstanding() != baseline+1 {
		t.Errorf("trail buffer leaked: outstanding %d, want %d",
			r.TrailsOutstanding(), baseline+1)
	}
	if _, ok := r.View()[1]; ok {
		t.Error("disposed id still in view")
	}
}

func TestDisposalRemovesEntity(t *testing.T) {
	r := NewReconciler(testConfig())

	f1 := frameOf(planet(0, 100))
	r.Sync(&f1)
	entity, ok := r.Entity(0)
	if !ok {
		t.Fatal("expected representation for id 0")
	}

	f2 := frameOf()
	r.Sync(&f2)

	if _, ok := r.Entity(0); ok {
		t.Error("disposed id still mapped")
	}
	// Disposal must delete the entity, not just strip its components;
	// otherwise body churn grows the world without bound.
	if r.World().Alive(entity) {
		t.Error("disposed representation's entity still alive in the world")
	}
}

func TestBatchCountResets(t *testing.T) {
	r := NewReconciler(testConfig())

	f1 := frameOf(planet(1, 0.5), planet(2, 0.5), planet(3, 0.5))
	r.Sync(&f1)
	if r.Batch().Count() != 3 {
		t.Fatalf("batch count %d, want 3", r.Batch().Count())
	}

	f2 := frameOf(planet(1, 0.5))
	r.Sync(&f2)
	if r.Batch().Count() != 1 {
		t.Errorf("stale batch slots: count %d, want 1", r.Batch().Count())
	}
	if r.Batch().IDAt(0) != 1 {
		t.Errorf("slot 0 holds id %d, want 1", r.Batch().IDAt(0))
	}
}

func TestBatchOverCapacityDropped(t *testing.T) {
	cfg := testConfig()
	cfg.BatchCapacity = 2
	r := NewReconciler(cfg)

	f := frameOf(planet(1, 0.5), planet(2, 0.5), planet(3, 0.5))
	r.Sync(&f)

	if r.Batch().Count() != 2 {
		t.Errorf("batch count %d, want capacity 2", r.Batch().Count())
	}
	if r.Stats().BatchDropped != 1 {
		t.Errorf("dropped %d, want 1", r.Stats().BatchDropped)
	}
}

func TestShrinkIntoBatchDisposesIndividual(t *testing.T) {
	r := NewReconciler(testConfig())

	f1 := frameOf(planet(0, 100))
	r.Sync(&f1)
	if r.TrackedCount() != 1 {
		t.Fatal("expected individual representation")
	}

	// Same id drops below the small-body threshold.
	f2 := frameOf(planet(0, 0.5))
	r.Sync(&f2)

	if r.TrackedCount() != 0 {
		t.Error("individual representation must be disposed when body joins the batch")
	}
	if r.Batch().Count() != 1 {
		t.Errorf("batch count %d, want 1", r.Batch().Count())
	}
	if r.TrailsOutstanding() != 0 {
		t.Errorf("trail leaked across batch transition: %d", r.TrailsOutstanding())
	}
}

func TestMalformedBodiesSkipped(t *testing.T) {
	r := NewReconciler(testConfig())

	bad := planet(7, 100)
	bad.Position = r3.Vec{X: math.NaN()}
	inf := planet(8, 100)
	inf.Radius = math.Inf(1)

	f := frameOf(planet(0, 100), bad, inf)
	r.Sync(&f)

	if r.TrackedCount() != 1 {
		t.Errorf("malformed bodies must not be tracked: %d", r.TrackedCount())
	}
	if r.Stats().Skipped != 2 || r.Stats().SkippedTotal != 2 {
		t.Errorf("skip counters: %+v", r.Stats())
	}

	// The counter accumulates across frames.
	r.Sync(&f)
	if r.Stats().SkippedTotal != 4 {
		t.Errorf("cumulative skips: want 4, got %d", r.Stats().SkippedTotal)
	}
}

func TestPropertyChangeUpdates(t *testing.T) {
	r := NewReconciler(testConfig())

	b := planet(0, 100)
	b.Color = sim.Color{R: 10, G: 20, B: 30, A: 255}
	f := frameOf(b)
	r.Sync(&f)

	entity, _ := r.Entity(0)

	// Color-only edit: one property update, radius untouched.
	b.Color = sim.Color{R: 99, G: 20, B: 30, A: 255}
	f = frameOf(b)
	r.Sync(&f)
	if got := r.Stats().PropertyUpdates; got != 1 {
		t.Errorf("color edit: want 1 update, got %d", got)
	}
	if r.visualMap.Get(entity).Color.R != 99 {
		t.Error("color edit not applied")
	}

	// Radius edit.
	b.Radius = 9
	f = frameOf(b)
	r.Sync(&f)
	if got := r.Stats().PropertyUpdates; got != 1 {
		t.Errorf("radius edit: want 1 update, got %d", got)
	}
	if r.visualMap.Get(entity).Radius != 9 {
		t.Error("radius edit not applied")
	}

	// Fixed-flag edit toggles the light.
	b.Fixed = true
	f = frameOf(b)
	r.Sync(&f)
	if !r.visualMap.Get(entity).HasLight {
		t.Error("fixed body should gain a light")
	}
}

func TestCraftOrientation(t *testing.T) {
	r := NewReconciler(testConfig())

	craft := sim.Body{ID: 1, Mass: 5, Radius: 2, Kind: sim.KindCraft, Velocity: r3.Vec{X: 3, Y: 4}}
	f := frameOf(craft)
	r.Sync(&f)

	entity, _ := r.Entity(1)
	fwd := r.spatialMap.Get(entity).Forward
	if math.Abs(fwd.X-0.6) > 1e-9 || math.Abs(fwd.Y-0.8) > 1e-9 {
		t.Errorf("forward not normalized velocity: %+v", fwd)
	}

	// Near-zero velocity keeps the previous orientation.
	craft.Velocity = r3.Vec{X: 1e-9}
	f = frameOf(craft)
	r.Sync(&f)
	fwd = r.spatialMap.Get(entity).Forward
	if math.Abs(fwd.X-0.6) > 1e-9 || math.Abs(fwd.Y-0.8) > 1e-9 {
		t.Errorf("stationary craft should keep orientation, got %+v", fwd)
	}
}

func TestTrailSpeedNormalization(t *testing.T) {
	r := NewReconciler(testConfig())

	b := planet(0, 100)
	b.Trail = []sim.TrailPoint{
		{Position: r3.Vec{X: 0}, Speed: 0},
		{Position: r3.Vec{X: 1}, Speed: 5},
		{Position: r3.Vec{X: 2}, Speed: 10},
	}
	f := frameOf(b)
	r.Sync(&f)

	entity, _ := r.Entity(0)
	buf := r.trailMap.Get(entity).Buf
	if buf.Range() != 3 {
		t.Fatalf("trail range %d, want 3", buf.Range())
	}
	// Fastest sample renders hot, slowest cool.
	if buf.At(2).Color != trailHot {
		t.Errorf("max-speed vertex color %+v, want %+v", buf.At(2).Color, trailHot)
	}
	if buf.At(0).Color != trailCool {
		t.Errorf("zero-speed vertex color %+v, want %+v", buf.At(0).Color, trailCool)
	}
}

func TestTrailAllStationary(t *testing.T) {
	r := NewReconciler(testConfig())

	// All speeds negligible: normalization must not divide by ~0.
	b := planet(0, 100)
	b.Trail = []sim.TrailPoint{{Speed: 0}, {Speed: 1e-12}}
	f := frameOf(b)
	r.Sync(&f)

	entity, _ := r.Entity(0)
	buf := r.trailMap.Get(entity).Buf
	for i := 0; i < buf.Range(); i++ {
		c := buf.At(i).Color
		if c.A == 0 && c.R == 0 && c.G == 0 && c.B == 0 {
			t.Errorf("vertex %d got a garbage color", i)
		}
	}
}
