package interact

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/scene"
	"github.com/saagar210/OrbitForge/sim"
)

// Mode is the interaction mode. Switching modes unconditionally cancels any
// in-progress drag.
type Mode uint8

const (
	ModeSelect Mode = iota
	ModePlace
	ModeSlingshot
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModePlace:
		return "place"
	case ModeSlingshot:
		return "slingshot"
	}
	return "unknown"
}

// Preset holds the body parameters used for placement commands.
type Preset struct {
	Mass   float64
	Radius float64
	Color  sim.Color
	Name   string
	Kind   sim.Kind
	Fuel   float64 // craft presets only
}

// Config holds the controller's tunables.
type Config struct {
	// ImpulseScale converts drag displacement into a velocity magnitude.
	ImpulseScale float64
	// PlacementPlane receives place-mode clicks.
	PlacementPlane Plane
	// DefaultPreset is placed on a plain click; CraftPreset when the
	// modifier key is held.
	DefaultPreset Preset
	CraftPreset   Preset
}

// Indicator is the transient drag-direction visual, drawn from the anchor to
// the current drag point while a slingshot drag is live.
type Indicator struct {
	Active bool
	From   r3.Vec
	To     r3.Vec
}

// Controller is the pointer-input state machine. It reads the reconciler's
// published view for picking and only ever emits commands; it never mutates
// simulation or scene state.
type Controller struct {
	cfg  Config
	mode Mode
	sink sim.CommandSink

	onSelect func(id uint32, ok bool)

	dragging  bool
	dragID    uint32
	anchor    r3.Vec
	dragPlane Plane
	indicator Indicator
}

// NewController creates a controller in select mode.
func NewController(cfg Config, sink sim.CommandSink) *Controller {
	return &Controller{cfg: cfg, sink: sink}
}

// OnSelect registers the selection callback. It receives ok=false when a
// select-mode click hits nothing.
func (c *Controller) OnSelect(fn func(id uint32, ok bool)) {
	c.onSelect = fn
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// SetMode switches mode, tearing down any in-progress drag and its
// indicator.
func (c *Controller) SetMode(m Mode) {
	if c.dragging {
		c.clearDrag()
	}
	c.mode = m
}

// CameraLocked reports whether camera input should be suspended (live drag).
func (c *Controller) CameraLocked() bool { return c.dragging }

// Indicator returns the drag-direction visual for rendering.
func (c *Controller) Indicator() Indicator { return c.indicator }

// pick returns the nearest individually rendered body hit by the ray.
// Batched small bodies are not in the view and therefore never match.
func pick(ray Ray, view scene.View) (uint32, scene.PickSphere, bool) {
	var bestID uint32
	var bestSphere scene.PickSphere
	bestDist := 0.0
	found := false

	for id, sphere := range view {
		dist, hit := ray.HitSphere(sphere.Center, sphere.Radius)
		if !hit {
			continue
		}
		if !found || dist < bestDist {
			found = true
			bestDist = dist
			bestID = id
			bestSphere = sphere
		}
	}
	return bestID, bestSphere, found
}

// PointerDown handles a press at the given ray. modifier selects the craft
// placement preset in place mode.
func (c *Controller) PointerDown(ray Ray, view scene.View, modifier bool) {
	switch c.mode {
	case ModeSelect:
		id, _, ok := pick(ray, view)
		if c.onSelect != nil {
			c.onSelect(id, ok)
		}

	case ModePlace:
		point, ok := ray.HitPlane(c.cfg.PlacementPlane)
		if !ok {
			return // no valid intersection, no command
		}
		preset := c.cfg.DefaultPreset
		if modifier {
			preset = c.cfg.CraftPreset
		}
		c.sink.CreateBody(sim.BodySpec{
			Position: point,
			Mass:     preset.Mass,
			Radius:   preset.Radius,
			Color:    preset.Color,
			Name:     preset.Name,
			Kind:     preset.Kind,
			Fuel:     preset.Fuel,
		})

	case ModeSlingshot:
		id, sphere, ok := pick(ray, view)
		if !ok {
			return
		}
		c.dragging = true
		c.dragID = id
		c.anchor = sphere.Center
		// Drag plane through the anchor, facing the camera.
		normal := r3.Sub(c.anchor, ray.Origin)
		if n := r3.Norm(normal); n > 1e-12 {
			normal = r3.Scale(1/n, normal)
		} else {
			normal = r3.Vec{Z: 1}
		}
		c.dragPlane = Plane{Point: c.anchor, Normal: normal}
		c.indicator = Indicator{Active: true, From: c.anchor, To: c.anchor}
	}
}

// PointerMove updates the drag indicator while a drag is live.
func (c *Controller) PointerMove(ray Ray) {
	if !c.dragging {
		return
	}
	if point, ok := ray.HitPlane(c.dragPlane); ok {
		c.indicator.To = point
	}
}

// PointerUp releases a live drag: the velocity impulse opposes the drag
// direction (slingshot semantics) and drag state clears unconditionally,
// whether or not the release ray intersected the drag plane.
func (c *Controller) PointerUp(ray Ray) {
	if !c.dragging {
		return
	}
	if release, ok := ray.HitPlane(c.dragPlane); ok {
		impulse := r3.Scale(c.cfg.ImpulseScale, r3.Sub(c.anchor, release))
		c.sink.SetVelocity(c.dragID, impulse)
	}
	c.clearDrag()
}

// Validate cancels the drag if the dragged body left the scene mid-drag.
func (c *Controller) Validate(view scene.View) {
	if !c.dragging {
		return
	}
	if _, ok := view[c.dragID]; !ok {
		c.clearDrag()
	}
}

func (c *Controller) clearDrag() {
	c.dragging = false
	c.indicator = Indicator{}
}
