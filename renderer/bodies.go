package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/saagar210/OrbitForge/components"
	"github.com/saagar210/OrbitForge/scene"
	"github.com/saagar210/OrbitForge/sim"
)

// Sphere tessellation for the two body tiers. Batched bodies are numerous
// and small on screen, so they get far coarser meshes.
const (
	bodyRings      = 16
	bodySlices     = 16
	batchedRings   = 6
	batchedSlices  = 6
	craftConeScale = 2.2
)

// glowLayer describes one shell of a star's glow.
type glowLayer struct {
	scale float32
	alpha float32
}

var starGlow = []glowLayer{
	{3.0, 14},
	{2.2, 26},
	{1.6, 48},
	{1.2, 90},
}

// BodyRenderer draws individually-represented bodies and the small-body batch.
type BodyRenderer struct {
	selected  uint32
	selection bool
}

// NewBodyRenderer creates a body renderer.
func NewBodyRenderer() *BodyRenderer {
	return &BodyRenderer{}
}

// SetSelection marks a body as selected; pass ok=false to clear.
func (b *BodyRenderer) SetSelection(id uint32, ok bool) {
	b.selected = id
	b.selection = ok
}

// Draw renders every individual representation in the reconciled scene.
// Must be called inside BeginMode3D.
func (b *BodyRenderer) Draw(rec *scene.Reconciler) {
	rec.Each(func(spatial *components.Spatial, visual *components.Visual, trail *components.Trail, meta *components.Meta) {
		pos := vec3(spatial.Position)
		radius := float32(visual.Radius)
		color := col(visual.Color)

		if visual.HasLight {
			for _, layer := range starGlow {
				rl.DrawSphereEx(pos, radius*layer.scale, 8, 8, fade(color, layer.alpha/255))
			}
		}

		switch visual.Kind {
		case sim.KindCraft:
			b.drawCraft(pos, spatial, radius, color)
		default:
			rl.DrawSphereEx(pos, radius, bodyRings, bodySlices, color)
		}

		if b.selection && meta.ID == b.selected {
			rl.DrawSphereWires(pos, radius*1.35, 10, 10, rl.Color{R: 255, G: 255, B: 255, A: 160})
		}
	})
}

// drawCraft renders a craft as a cone pointing along its heading.
func (b *BodyRenderer) drawCraft(pos rl.Vector3, spatial *components.Spatial, radius float32, color rl.Color) {
	length := radius * craftConeScale
	tip := rl.Vector3{
		X: pos.X + float32(spatial.Forward.X)*length,
		Y: pos.Y + float32(spatial.Forward.Y)*length,
		Z: pos.Z + float32(spatial.Forward.Z)*length,
	}
	base := rl.Vector3{
		X: pos.X - float32(spatial.Forward.X)*length*0.4,
		Y: pos.Y - float32(spatial.Forward.Y)*length*0.4,
		Z: pos.Z - float32(spatial.Forward.Z)*length*0.4,
	}
	rl.DrawCylinderEx(base, tip, radius, 0, 8, color)
}

// DrawBatch renders the small-body batch as coarse spheres. Accepts nil (no
// small body has qualified yet). Must be called inside BeginMode3D.
func (b *BodyRenderer) DrawBatch(batch *scene.Batch) {
	if batch == nil {
		return
	}
	for i := 0; i < batch.Count(); i++ {
		slot := batch.Slot(i)
		rl.DrawSphereEx(vec3(slot.Position), float32(slot.Scale), batchedRings, batchedSlices, col(slot.Color))
	}
}

// DrawTrail renders a body's trail buffer as a line strip with the colors the
// reconciler assigned per vertex. Must be called inside BeginMode3D.
func DrawTrail(trail *components.Trail) {
	if trail == nil || trail.Buf == nil {
		return
	}
	n := trail.Buf.Range()
	if n < 2 {
		return
	}
	prev := trail.Buf.At(0)
	for i := 1; i < n; i++ {
		v := trail.Buf.At(i)
		rl.DrawLine3D(
			rl.Vector3{X: prev.X, Y: prev.Y, Z: prev.Z},
			rl.Vector3{X: v.X, Y: v.Y, Z: v.Z},
			rl.Color{R: v.Color.R, G: v.Color.G, B: v.Color.B, A: v.Color.A},
		)
		prev = v
	}
}

// DrawTrails renders trails for every individual representation.
func (b *BodyRenderer) DrawTrails(rec *scene.Reconciler) {
	rec.Each(func(spatial *components.Spatial, visual *components.Visual, trail *components.Trail, meta *components.Meta) {
		DrawTrail(trail)
	})
}

// DrawArrow draws a line with a small cone tip, used for velocity and
// acceleration vectors.
func DrawArrow(from, to rl.Vector3, color rl.Color) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dz := to.Z - from.Z
	length := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if length < 1e-6 {
		return
	}
	rl.DrawLine3D(from, to, color)
	tipLen := length * 0.18
	if tipLen > 4 {
		tipLen = 4
	}
	base := rl.Vector3{
		X: to.X - dx/length*tipLen,
		Y: to.Y - dy/length*tipLen,
		Z: to.Z - dz/length*tipLen,
	}
	rl.DrawCylinderEx(base, to, tipLen*0.35, 0, 6, color)
}
