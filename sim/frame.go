// Package sim defines the frame model delivered by the physics collaborator
// and the narrow interfaces the engine uses to talk back to it.
package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MaxTrailPoints is the producer-side cap on trajectory history length.
const MaxTrailPoints = 500

// Kind classifies a body for rendering and interaction purposes.
type Kind uint8

const (
	KindStar Kind = iota
	KindPlanet
	KindCraft
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindCraft:
		return "craft"
	}
	return "unknown"
}

// Color is a display color. Kept independent of the render backend so frame
// producers never import graphics types.
type Color struct {
	R, G, B, A uint8
}

// TrailPoint is one sample of a body's trajectory history.
type TrailPoint struct {
	Position r3.Vec
	Speed    float64
}

// Body is one celestial body snapshot. Immutable once delivered; the engine
// diff-reconciles against it but never writes it.
type Body struct {
	ID           uint32
	Position     r3.Vec
	Velocity     r3.Vec
	Acceleration r3.Vec
	Mass         float64
	Radius       float64
	Color        Color
	Fixed        bool
	Name         string
	Kind         Kind

	// Craft-only fields; zero for other kinds.
	Thrust  r3.Vec
	Fuel    float64
	MaxFuel float64

	// Trail is ordered oldest-first, capped at MaxTrailPoints by the producer.
	Trail []TrailPoint
}

// Speed returns the instantaneous speed.
func (b *Body) Speed() float64 {
	return r3.Norm(b.Velocity)
}

// Finite reports whether the body's position and radius are renderable
// numbers. Bodies failing this check are skipped for the frame.
func (b *Body) Finite() bool {
	for _, v := range []float64{b.Position.X, b.Position.Y, b.Position.Z, b.Radius} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// EnergyData aggregates the frame's energy figures.
type EnergyData struct {
	Kinetic   float64
	Potential float64
	Total     float64
}

// Frame is one immutable snapshot of the simulated system.
type Frame struct {
	Bodies    []Body
	Tick      uint64
	Paused    bool
	SpeedMult float64
	Energy    EnergyData
}

// Find returns the body with the given id, or nil.
func (f *Frame) Find(id uint32) *Body {
	for i := range f.Bodies {
		if f.Bodies[i].ID == id {
			return &f.Bodies[i]
		}
	}
	return nil
}

// IndexOf returns the slice index of the body with the given identifier, or
// -1 when absent.
func (f *Frame) IndexOf(id uint32) int {
	for i := range f.Bodies {
		if f.Bodies[i].ID == id {
			return i
		}
	}
	return -1
}

// CollisionEvent reports a merge between two bodies.
type CollisionEvent struct {
	AbsorbedID   uint32
	SurvivorID   uint32
	Position     r3.Vec
	CombinedMass float64
}
