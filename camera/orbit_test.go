package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestPositionOnOrbitSphere(t *testing.T) {
	c := New(1280, 720)
	c.Target = r3.Vec{X: 10, Y: -5, Z: 3}

	d := r3.Norm(r3.Sub(c.Position(), c.Target))
	if math.Abs(d-c.Distance) > 1e-9 {
		t.Errorf("eye distance %g, want %g", d, c.Distance)
	}

	c.Rotate(1.3, -0.4)
	d = r3.Norm(r3.Sub(c.Position(), c.Target))
	if math.Abs(d-c.Distance) > 1e-9 {
		t.Errorf("rotation changed eye distance: %g vs %g", d, c.Distance)
	}
}

func TestPitchClamp(t *testing.T) {
	c := New(1280, 720)
	c.Rotate(0, 10) // way past the pole
	if c.Pitch > math.Pi/2 {
		t.Errorf("pitch not clamped: %g", c.Pitch)
	}
	// The basis must stay usable at the clamp.
	right, up, fwd := c.basis()
	for _, v := range []r3.Vec{right, up, fwd} {
		if math.Abs(r3.Norm(v)-1) > 1e-6 {
			t.Errorf("basis vector degenerated at pitch clamp: %+v", v)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	c := New(1280, 720)
	c.ZoomBy(1e-9)
	if c.Distance != c.MinDistance {
		t.Errorf("distance %g, want min %g", c.Distance, c.MinDistance)
	}
	c.ZoomBy(1e12)
	if c.Distance != c.MaxDistance {
		t.Errorf("distance %g, want max %g", c.Distance, c.MaxDistance)
	}
}

func TestScreenCenterRayHitsTarget(t *testing.T) {
	c := New(1280, 720)
	c.Target = r3.Vec{X: 42, Y: 7, Z: -3}

	origin, dir := c.ScreenRay(640, 360)
	// The center ray points from the eye straight at the target.
	want := r3.Unit(r3.Sub(c.Target, origin))
	if r3.Norm(r3.Sub(dir, want)) > 1e-9 {
		t.Errorf("center ray %+v, want %+v", dir, want)
	}
}

func TestScreenRayCorners(t *testing.T) {
	c := New(1280, 720)
	_, center := c.ScreenRay(640, 360)
	_, corner := c.ScreenRay(0, 0)

	if r3.Norm(r3.Sub(center, corner)) < 1e-6 {
		t.Error("corner ray should diverge from the center ray")
	}
	if math.Abs(r3.Norm(corner)-1) > 1e-9 {
		t.Errorf("ray direction not unit length: %g", r3.Norm(corner))
	}
}

func TestPanMovesTargetInViewPlane(t *testing.T) {
	c := New(1280, 720)
	before := c.Position()
	_, _, fwd := c.basis()

	c.Pan(10, 0)
	// Panning must not move the target along the view axis.
	shift := r3.Sub(c.Position(), before)
	if math.Abs(r3.Dot(shift, fwd)) > 1e-6 {
		t.Errorf("pan moved the camera along the view axis by %g", r3.Dot(shift, fwd))
	}
}
