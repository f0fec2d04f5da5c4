package sim

import "gonum.org/v1/gonum/spatial/r3"

// Source delivers frames and collision events from the physics collaborator.
// Both channels are owned by the producer and closed when it stops.
type Source interface {
	Frames() <-chan Frame
	Collisions() <-chan CollisionEvent
}

// BodySpec carries the parameters for a create-body command.
type BodySpec struct {
	Position r3.Vec
	Velocity r3.Vec
	Mass     float64
	Radius   float64
	Color    Color
	Name     string
	Fixed    bool
	Kind     Kind

	// Fuel sets the craft fuel tank; zero or negative means the default.
	Fuel float64
}

// CommandSink accepts commands emitted toward the simulation. All calls are
// fire-and-forget: the engine never waits on an acknowledgement, and the
// prediction result comes back later through the producer's prediction
// callback.
type CommandSink interface {
	CreateBody(spec BodySpec)
	SetVelocity(id uint32, v r3.Vec)
	SetThrust(id uint32, t r3.Vec)
	RequestPrediction(id uint32, steps int)
	SetPaused(paused bool)
	SetSpeed(mult float64)
}
