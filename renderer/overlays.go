package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/mechanics"
	"github.com/saagar210/OrbitForge/sim"
)

// Overlay palette.
var (
	barycenterColor = rl.Color{R: 255, G: 255, B: 255, A: 220}
	lagrangeColor   = rl.Color{R: 120, G: 220, B: 255, A: 200}
	predictionColor = rl.Color{R: 180, G: 180, B: 255, A: 200}
	transferColor   = rl.Color{R: 255, G: 160, B: 60, A: 220}
	velocityColor   = rl.Color{R: 100, G: 255, B: 120, A: 220}
	accelColor      = rl.Color{R: 255, G: 160, B: 80, A: 220}
	planeColor      = rl.Color{R: 130, G: 150, B: 255, A: 50}
	sweptColor      = rl.Color{R: 255, G: 230, B: 100, A: 45}
	tailColor       = rl.Color{R: 160, G: 220, B: 255, A: 0} // alpha set per segment
	labelColor      = rl.Color{R: 220, G: 220, B: 220, A: 255}
)

const (
	vectorVelScale   = 2.0  // world units per unit velocity
	vectorAccelScale = 12.0 // acceleration is much smaller in magnitude
	tailSegments     = 10
)

// OverlayRenderer draws analytical overlays. 3D methods must run inside
// BeginMode3D; 2D label passes take the camera and run after EndMode3D.
type OverlayRenderer struct{}

// NewOverlayRenderer creates an overlay renderer.
func NewOverlayRenderer() *OverlayRenderer {
	return &OverlayRenderer{}
}

// DrawBarycenter draws a crosshair marker at the system barycenter.
func (o *OverlayRenderer) DrawBarycenter(pos r3.Vec) {
	c := vec3(pos)
	arm := float32(6)
	rl.DrawLine3D(rl.Vector3{X: c.X - arm, Y: c.Y, Z: c.Z}, rl.Vector3{X: c.X + arm, Y: c.Y, Z: c.Z}, barycenterColor)
	rl.DrawLine3D(rl.Vector3{X: c.X, Y: c.Y - arm, Z: c.Z}, rl.Vector3{X: c.X, Y: c.Y + arm, Z: c.Z}, barycenterColor)
	rl.DrawLine3D(rl.Vector3{X: c.X, Y: c.Y, Z: c.Z - arm}, rl.Vector3{X: c.X, Y: c.Y, Z: c.Z + arm}, barycenterColor)
	rl.DrawSphereWires(c, 2, 6, 6, barycenterColor)
}

// DrawLagrange draws wire markers at the five libration points.
func (o *OverlayRenderer) DrawLagrange(lp mechanics.LagrangePoints) {
	for _, p := range [5]r3.Vec{lp.L1, lp.L2, lp.L3, lp.L4, lp.L5} {
		rl.DrawSphereWires(vec3(p), 3, 6, 6, lagrangeColor)
	}
}

// DrawLagrangeLabels draws the L1..L5 names next to their markers.
// Must be called outside BeginMode3D.
func (o *OverlayRenderer) DrawLagrangeLabels(lp mechanics.LagrangePoints, cam rl.Camera3D) {
	points := [5]r3.Vec{lp.L1, lp.L2, lp.L3, lp.L4, lp.L5}
	for i, p := range points {
		screen := rl.GetWorldToScreen(vec3(p), cam)
		rl.DrawText(fmt.Sprintf("L%d", i+1), int32(screen.X)+6, int32(screen.Y)-6, 12, lagrangeColor)
	}
}

// DrawPath draws a solid polyline through the given world points.
func (o *OverlayRenderer) DrawPath(points []r3.Vec, color rl.Color) {
	for i := 1; i < len(points); i++ {
		rl.DrawLine3D(vec3(points[i-1]), vec3(points[i]), color)
	}
}

// DrawTransfer draws a Hohmann transfer arc with endpoint markers.
func (o *OverlayRenderer) DrawTransfer(t mechanics.Transfer) {
	o.DrawPath(t.Points, transferColor)
	if len(t.Points) > 0 {
		rl.DrawSphereWires(vec3(t.Points[0]), 2, 6, 6, transferColor)
		rl.DrawSphereWires(vec3(t.Points[len(t.Points)-1]), 2, 6, 6, transferColor)
	}
}

// DrawPrediction draws the predicted trajectory as a dashed polyline.
func (o *OverlayRenderer) DrawPrediction(points []r3.Vec) {
	for i := 1; i < len(points); i++ {
		if i%2 == 0 {
			continue
		}
		rl.DrawLine3D(vec3(points[i-1]), vec3(points[i]), predictionColor)
	}
}

// DrawVectors draws velocity and acceleration arrows for each body.
func (o *OverlayRenderer) DrawVectors(bodies []sim.Body) {
	for i := range bodies {
		b := &bodies[i]
		from := vec3(b.Position)
		vel := rl.Vector3{
			X: from.X + float32(b.Velocity.X*vectorVelScale),
			Y: from.Y + float32(b.Velocity.Y*vectorVelScale),
			Z: from.Z + float32(b.Velocity.Z*vectorVelScale),
		}
		DrawArrow(from, vel, velocityColor)

		acc := rl.Vector3{
			X: from.X + float32(b.Acceleration.X*vectorAccelScale),
			Y: from.Y + float32(b.Acceleration.Y*vectorAccelScale),
			Z: from.Z + float32(b.Acceleration.Z*vectorAccelScale),
		}
		DrawArrow(from, acc, accelColor)
	}
}

// DrawOrbitalPlane draws a translucent disc in a body's orbital plane around
// its attractor. normal must be unit length.
func (o *OverlayRenderer) DrawOrbitalPlane(center, normal r3.Vec, radius float64) {
	// DrawCircle3D starts from a circle in the XY plane (normal +Z); rotate
	// that normal onto ours.
	z := r3.Vec{Z: 1}
	axis := r3.Cross(z, normal)
	angle := math.Acos(clamp(r3.Dot(z, normal), -1, 1))
	if r3.Norm(axis) < 1e-9 {
		axis = r3.Vec{X: 1}
	}
	deg := float32(angle * 180 / math.Pi)
	for i := 1; i <= 4; i++ {
		rl.DrawCircle3D(vec3(center), float32(radius)*float32(i)/4, vec3(axis), deg, planeColor)
	}
}

// DrawSweptArea shades the region swept by the radius vector over the recent
// trail arc, a visual of Kepler's second law.
func (o *OverlayRenderer) DrawSweptArea(focus r3.Vec, arc []sim.TrailPoint) {
	f := vec3(focus)
	for i := 1; i < len(arc); i++ {
		rl.DrawTriangle3D(f, vec3(arc[i-1].Position), vec3(arc[i].Position), sweptColor)
		// Back face so the fan is visible from both sides.
		rl.DrawTriangle3D(f, vec3(arc[i].Position), vec3(arc[i-1].Position), sweptColor)
	}
}

// DrawCometTail draws a fading tail pointing away from the dominant star.
func (o *OverlayRenderer) DrawCometTail(pos, away r3.Vec, length float64) {
	n := r3.Norm(away)
	if n < 1e-9 {
		return
	}
	dir := r3.Scale(1/n, away)
	prev := pos
	for i := 1; i <= tailSegments; i++ {
		t := float64(i) / tailSegments
		next := r3.Add(pos, r3.Scale(length*t, dir))
		c := tailColor
		c.A = uint8(120 * (1 - t))
		rl.DrawLine3D(vec3(prev), vec3(next), c)
		prev = next
	}
}

// DrawGravityField draws a heatmap of field strength sampled on a grid in
// the ecliptic plane. Cell color runs log-scaled from blue (weak) to red.
func (o *OverlayRenderer) DrawGravityField(bodies []sim.Body, g, extent float64, cells int) {
	if cells < 2 {
		return
	}
	step := 2 * extent / float64(cells)
	for ix := 0; ix < cells; ix++ {
		for iz := 0; iz < cells; iz++ {
			p := r3.Vec{
				X: -extent + (float64(ix)+0.5)*step,
				Z: -extent + (float64(iz)+0.5)*step,
			}
			var accel r3.Vec
			for i := range bodies {
				d := r3.Sub(bodies[i].Position, p)
				dist2 := r3.Dot(d, d) + 1e-6
				accel = r3.Add(accel, r3.Scale(g*bodies[i].Mass/(dist2*math.Sqrt(dist2)), d))
			}
			mag := r3.Norm(accel)
			t := clamp((math.Log10(mag+1e-12)+4)/6, 0, 1)
			c := heat(t)
			size := float32(step) * 0.9
			rl.DrawCubeV(vec3(p), rl.Vector3{X: size, Y: 0.1, Z: size}, c)
		}
	}
}

// DrawLabels draws body names above their screen positions.
// Must be called outside BeginMode3D.
func (o *OverlayRenderer) DrawLabels(bodies []sim.Body, cam rl.Camera3D) {
	for i := range bodies {
		b := &bodies[i]
		if b.Name == "" {
			continue
		}
		world := b.Position
		world.Y += b.Radius * 1.6
		screen := rl.GetWorldToScreen(vec3(world), cam)
		w := rl.MeasureText(b.Name, 12)
		rl.DrawText(b.Name, int32(screen.X)-w/2, int32(screen.Y)-14, 12, labelColor)
	}
}

// heat maps t in [0,1] to a blue-to-red gradient with low alpha.
func heat(t float64) rl.Color {
	r := uint8(255 * t)
	b := uint8(255 * (1 - t))
	g := uint8(80 * (1 - math.Abs(2*t-1)))
	return rl.Color{R: r, G: g, B: b, A: 70}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
