package interact

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/scene"
	"github.com/saagar210/OrbitForge/sim"
)

// recordingSink captures emitted commands.
type recordingSink struct {
	created    []sim.BodySpec
	velocities map[uint32]r3.Vec
}

func newRecordingSink() *recordingSink {
	return &recordingSink{velocities: make(map[uint32]r3.Vec)}
}

func (s *recordingSink) CreateBody(spec sim.BodySpec)    { s.created = append(s.created, spec) }
func (s *recordingSink) SetVelocity(id uint32, v r3.Vec) { s.velocities[id] = v }
func (s *recordingSink) SetThrust(uint32, r3.Vec)        {}
func (s *recordingSink) RequestPrediction(uint32, int)   {}
func (s *recordingSink) SetPaused(bool)                  {}
func (s *recordingSink) SetSpeed(float64)                {}

func testController(sink sim.CommandSink) *Controller {
	return NewController(Config{
		ImpulseScale:   0.1,
		PlacementPlane: Plane{Normal: r3.Vec{Z: 1}},
		DefaultPreset:  Preset{Mass: 10, Radius: 5, Name: "New Body", Kind: sim.KindPlanet},
		CraftPreset:    Preset{Mass: 0.1, Radius: 2, Name: "Craft", Kind: sim.KindCraft, Fuel: 75},
	}, sink)
}

func lookingAt(origin, target r3.Vec) Ray {
	return Ray{Origin: origin, Dir: r3.Unit(r3.Sub(target, origin))}
}

func TestRaySphere(t *testing.T) {
	ray := Ray{Origin: r3.Vec{Z: 100}, Dir: r3.Vec{Z: -1}}
	dist, hit := ray.HitSphere(r3.Vec{}, 10)
	if !hit {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-90) > 1e-9 {
		t.Errorf("distance: want 90, got %g", dist)
	}

	if _, hit := ray.HitSphere(r3.Vec{X: 50}, 10); hit {
		t.Error("off-axis sphere should miss")
	}
	if _, hit := ray.HitSphere(r3.Vec{Z: 200}, 10); hit {
		t.Error("sphere behind the origin should miss")
	}
}

func TestRayPlane(t *testing.T) {
	ray := Ray{Origin: r3.Vec{Z: 10}, Dir: r3.Vec{Z: -1}}
	p, hit := ray.HitPlane(Plane{Normal: r3.Vec{Z: 1}})
	if !hit || r3.Norm(p) > 1e-9 {
		t.Errorf("want origin hit, got %+v (hit=%v)", p, hit)
	}

	parallel := Ray{Origin: r3.Vec{Z: 10}, Dir: r3.Vec{X: 1}}
	if _, hit := parallel.HitPlane(Plane{Normal: r3.Vec{Z: 1}}); hit {
		t.Error("parallel ray should miss")
	}
}

func TestSelectEmitsNearestHit(t *testing.T) {
	sink := newRecordingSink()
	c := testController(sink)

	var gotID uint32
	var gotOK bool
	c.OnSelect(func(id uint32, ok bool) { gotID, gotOK = id, ok })

	view := scene.View{
		1: {Center: r3.Vec{Z: -50}, Radius: 5},
		2: {Center: r3.Vec{Z: -20}, Radius: 5}, // nearer along the ray
	}
	c.PointerDown(Ray{Dir: r3.Vec{Z: -1}}, view, false)
	if !gotOK || gotID != 2 {
		t.Errorf("want nearest id 2, got %d (ok=%v)", gotID, gotOK)
	}

	// A miss still fires the callback with ok=false.
	c.PointerDown(Ray{Dir: r3.Vec{Y: 1}}, view, false)
	if gotOK {
		t.Error("miss should report ok=false")
	}
}

func TestPlaceMode(t *testing.T) {
	sink := newRecordingSink()
	c := testController(sink)
	c.SetMode(ModePlace)

	c.PointerDown(Ray{Origin: r3.Vec{Z: 10}, Dir: r3.Vec{Z: -1}}, scene.View{}, false)
	if len(sink.created) != 1 {
		t.Fatalf("want 1 create command, got %d", len(sink.created))
	}
	if sink.created[0].Kind != sim.KindPlanet {
		t.Errorf("default preset kind: got %v", sink.created[0].Kind)
	}

	// Modifier selects the craft preset, fuel tank included.
	c.PointerDown(Ray{Origin: r3.Vec{Z: 10}, Dir: r3.Vec{Z: -1}}, scene.View{}, true)
	if sink.created[1].Kind != sim.KindCraft {
		t.Errorf("modifier preset kind: got %v", sink.created[1].Kind)
	}
	if sink.created[1].Fuel != 75 {
		t.Errorf("craft preset fuel: want 75, got %v", sink.created[1].Fuel)
	}

	// No plane intersection emits no command.
	c.PointerDown(Ray{Origin: r3.Vec{Z: 10}, Dir: r3.Vec{Z: 1}}, scene.View{}, false)
	if len(sink.created) != 2 {
		t.Errorf("miss emitted a command: %d creates", len(sink.created))
	}
}

func TestSlingshotDrag(t *testing.T) {
	sink := newRecordingSink()
	c := testController(sink)
	c.SetMode(ModeSlingshot)

	anchor := r3.Vec{Z: -30}
	view := scene.View{5: {Center: anchor, Radius: 3}}
	camera := r3.Vec{Z: 20}

	c.PointerDown(lookingAt(camera, anchor), view, false)
	if !c.CameraLocked() {
		t.Fatal("camera should be locked during drag")
	}
	if !c.Indicator().Active {
		t.Fatal("indicator should be active")
	}

	// Drag sideways: the drag plane faces the camera through the anchor.
	dragTo := r3.Vec{X: 10, Z: -30}
	c.PointerMove(lookingAt(camera, dragTo))
	if r3.Norm(r3.Sub(c.Indicator().To, dragTo)) > 1e-6 {
		t.Errorf("indicator endpoint %+v, want %+v", c.Indicator().To, dragTo)
	}

	c.PointerUp(lookingAt(camera, dragTo))
	v, ok := sink.velocities[5]
	if !ok {
		t.Fatal("expected a velocity command")
	}
	// Impulse opposes the drag: scale * (anchor - release).
	want := r3.Scale(0.1, r3.Sub(anchor, dragTo))
	if r3.Norm(r3.Sub(v, want)) > 1e-6 {
		t.Errorf("impulse %+v, want %+v", v, want)
	}
	if c.CameraLocked() || c.Indicator().Active {
		t.Error("drag state must clear on release")
	}
}

func TestPointerUpOutsideDrag(t *testing.T) {
	sink := newRecordingSink()
	c := testController(sink)
	c.SetMode(ModeSlingshot)

	c.PointerUp(Ray{Dir: r3.Vec{Z: -1}})
	if len(sink.velocities) != 0 {
		t.Error("pointer-up without a drag emitted a velocity command")
	}
}

func TestModeSwitchCancelsDrag(t *testing.T) {
	sink := newRecordingSink()
	c := testController(sink)
	c.SetMode(ModeSlingshot)

	anchor := r3.Vec{Z: -30}
	view := scene.View{5: {Center: anchor, Radius: 3}}
	c.PointerDown(lookingAt(r3.Vec{Z: 20}, anchor), view, false)
	if !c.Indicator().Active {
		t.Fatal("drag did not start")
	}

	c.SetMode(ModeSelect)
	if c.Indicator().Active {
		t.Error("mode switch left an orphaned indicator")
	}
	if c.CameraLocked() {
		t.Error("mode switch left the camera locked")
	}

	// Release after cancellation emits nothing.
	c.PointerUp(lookingAt(r3.Vec{Z: 20}, anchor))
	if len(sink.velocities) != 0 {
		t.Error("cancelled drag emitted a velocity command")
	}
}

func TestDragCancelledWhenBodyLost(t *testing.T) {
	sink := newRecordingSink()
	c := testController(sink)
	c.SetMode(ModeSlingshot)

	anchor := r3.Vec{Z: -30}
	view := scene.View{5: {Center: anchor, Radius: 3}}
	c.PointerDown(lookingAt(r3.Vec{Z: 20}, anchor), view, false)

	// Body 5 disappears from the reconciled scene mid-drag.
	c.Validate(scene.View{})
	if c.CameraLocked() || c.Indicator().Active {
		t.Error("losing the dragged body should tear down drag state")
	}
}
