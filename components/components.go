// Package components defines ECS components for body representations.
// One entity exists per individually rendered body; batched small bodies
// never get entities.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/effects"
	"github.com/saagar210/OrbitForge/sim"
)

// Spatial holds the representation's world transform.
type Spatial struct {
	Position r3.Vec
	// Forward is the craft shape orientation. Only updated while speed is
	// above the orientation epsilon, so a coasting craft keeps its last
	// heading.
	Forward r3.Vec
}

// Visual holds the drawable properties mirrored from the body snapshot.
// These double as the last-seen cache: the reconciler compares incoming
// frame values against them and applies only the minimal update for whatever
// changed, instead of rebuilding resources every frame.
type Visual struct {
	Radius   float64
	Color    sim.Color
	Kind     sim.Kind
	HasLight bool // fixed bodies carry a point light
}

// Trail wraps the pooled ring buffer mirroring the body's trajectory
// history. Buf is nil when the trail pool was exhausted at creation time.
type Trail struct {
	Buf *effects.TrailBuffer
}

// Meta carries identity and per-frame craft state.
type Meta struct {
	ID    uint32
	Name  string
	Fixed bool

	// Craft telemetry for labels and exhaust effects.
	Fuel    float64
	MaxFuel float64
	Thrust  r3.Vec
}
