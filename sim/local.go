package sim

import (
	"context"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// LocalSource is the reference frame producer: a velocity-Verlet N-body
// stepper that exists so the engine has something to visualize without the
// real simulation service attached. It implements both Source and
// CommandSink; the engine only ever sees those interfaces.
type LocalSource struct {
	mu     sync.Mutex
	bodies []Body
	tick   uint64
	nextID uint32

	dt        float64
	g         float64
	softening float64
	paused    bool
	speedMult float64

	frames     chan Frame
	collisions chan CollisionEvent

	// Pending prediction requests, drained once per step.
	predictions []predictionRequest
	onPredict   func(id uint32, path []r3.Vec)
}

type predictionRequest struct {
	id    uint32
	steps int
}

// NewLocalSource creates an empty local simulation with the reference
// constants: dt 0.016, G 100, softening 10.
func NewLocalSource() *LocalSource {
	return &LocalSource{
		dt:         0.016,
		g:          100.0,
		softening:  10.0,
		speedMult:  1.0,
		frames:     make(chan Frame, 1),
		collisions: make(chan CollisionEvent, 16),
	}
}

// Frames implements Source.
func (s *LocalSource) Frames() <-chan Frame { return s.frames }

// Collisions implements Source.
func (s *LocalSource) Collisions() <-chan CollisionEvent { return s.collisions }

// OnPrediction registers the callback invoked with each computed prediction
// path. The callback runs on the stepper goroutine.
func (s *LocalSource) OnPrediction(fn func(id uint32, path []r3.Vec)) {
	s.mu.Lock()
	s.onPredict = fn
	s.mu.Unlock()
}

// Gravity returns the gravitational constant the stepper integrates with.
func (s *LocalSource) Gravity() float64 { return s.g }

// Run steps the simulation on a fixed cadence until ctx is cancelled,
// publishing a frame after every step. Intended to run on its own goroutine.
func (s *LocalSource) Run(ctx context.Context, cadence time.Duration) {
	ticker := time.NewTicker(cadence)
	defer ticker.Stop()
	defer close(s.frames)
	defer close(s.collisions)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			events := s.Step()
			for _, ev := range events {
				select {
				case s.collisions <- ev:
				default: // visual effect only, droppable
				}
			}
			f := s.Snapshot()
			select {
			case s.frames <- f:
			default:
				// Consumer is behind; replace the queued frame.
				select {
				case <-s.frames:
				default:
				}
				s.frames <- f
			}
		}
	}
}

// Snapshot builds an immutable frame from current state.
func (s *LocalSource) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	bodies := make([]Body, len(s.bodies))
	for i := range s.bodies {
		bodies[i] = s.bodies[i]
		bodies[i].Trail = append([]TrailPoint(nil), s.bodies[i].Trail...)
	}
	return Frame{
		Bodies:    bodies,
		Tick:      s.tick,
		Paused:    s.paused,
		SpeedMult: s.speedMult,
		Energy:    s.computeEnergies(),
	}
}

// Step advances the simulation by one external tick (speed-multiplier
// substeps) and returns any collisions that occurred.
func (s *LocalSource) Step() []CollisionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.servePredictions()

	if s.paused || len(s.bodies) == 0 {
		return nil
	}

	subSteps := int(math.Ceil(s.speedMult))
	dt := s.dt * s.speedMult / float64(subSteps)

	var events []CollisionEvent
	for i := 0; i < subSteps; i++ {
		stepVerlet(s.bodies, dt, s.g, s.softening)
		events = append(events, s.checkCollisions()...)
	}

	if s.tick%2 == 0 {
		for i := range s.bodies {
			if !s.bodies[i].Fixed {
				recordTrail(&s.bodies[i])
			}
		}
	}
	s.tick++
	return events
}

func recordTrail(b *Body) {
	b.Trail = append(b.Trail, TrailPoint{Position: b.Position, Speed: b.Speed()})
	if len(b.Trail) > MaxTrailPoints {
		b.Trail = b.Trail[len(b.Trail)-MaxTrailPoints:]
	}
}

// stepVerlet advances positions and velocities by one velocity-Verlet step.
func stepVerlet(bodies []Body, dt, g, softening float64) {
	for i := range bodies {
		b := &bodies[i]
		if b.Fixed {
			continue
		}
		b.Position = r3.Add(b.Position,
			r3.Add(r3.Scale(dt, b.Velocity), r3.Scale(0.5*dt*dt, b.Acceleration)))
	}

	old := make([]r3.Vec, len(bodies))
	for i := range bodies {
		old[i] = bodies[i].Acceleration
	}

	computeAccelerations(bodies, g, softening)
	applyThrust(bodies, dt)

	for i := range bodies {
		b := &bodies[i]
		if b.Fixed {
			continue
		}
		b.Velocity = r3.Add(b.Velocity, r3.Scale(0.5*dt, r3.Add(old[i], b.Acceleration)))
	}
}

func computeAccelerations(bodies []Body, g, softening float64) {
	soft2 := softening * softening
	accels := make([]r3.Vec, len(bodies))
	for i := range bodies {
		if bodies[i].Fixed {
			continue
		}
		for j := range bodies {
			if i == j {
				continue
			}
			diff := r3.Sub(bodies[j].Position, bodies[i].Position)
			distSq := r3.Norm2(diff) + soft2
			dist := math.Sqrt(distSq)
			mag := g * bodies[j].Mass / distSq
			accels[i] = r3.Add(accels[i], r3.Scale(mag/dist, diff))
		}
	}
	for i := range bodies {
		bodies[i].Acceleration = accels[i]
	}
}

// applyThrust adds craft thrust acceleration and drains fuel.
func applyThrust(bodies []Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		if b.Kind != KindCraft || b.Fuel <= 0 {
			continue
		}
		mag := r3.Norm(b.Thrust)
		if mag <= 0.001 {
			continue
		}
		b.Acceleration = r3.Add(b.Acceleration, r3.Scale(1.0/b.Mass, b.Thrust))
		b.Fuel = math.Max(0, b.Fuel-mag*dt*0.1)
	}
}

// checkCollisions merges overlapping bodies; the heavier survives with
// momentum-conserving velocity and volume-conserving radius.
func (s *LocalSource) checkCollisions() []CollisionEvent {
	var events []CollisionEvent
	absorbed := make([]bool, len(s.bodies))

	n := len(s.bodies)
	for i := 0; i < n; i++ {
		if absorbed[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if absorbed[j] {
				continue
			}
			dist := r3.Norm(r3.Sub(s.bodies[j].Position, s.bodies[i].Position))
			if dist >= s.bodies[i].Radius+s.bodies[j].Radius {
				continue
			}
			sv, ab := i, j
			if s.bodies[j].Mass > s.bodies[i].Mass {
				sv, ab = j, i
			}
			m1, m2 := s.bodies[sv].Mass, s.bodies[ab].Mass
			total := m1 + m2

			newVel := r3.Scale(1/total,
				r3.Add(r3.Scale(m1, s.bodies[sv].Velocity), r3.Scale(m2, s.bodies[ab].Velocity)))
			newPos := r3.Scale(1/total,
				r3.Add(r3.Scale(m1, s.bodies[sv].Position), r3.Scale(m2, s.bodies[ab].Position)))
			r1, r2 := s.bodies[sv].Radius, s.bodies[ab].Radius
			newRadius := math.Cbrt(r1*r1*r1 + r2*r2*r2)

			events = append(events, CollisionEvent{
				AbsorbedID:   s.bodies[ab].ID,
				SurvivorID:   s.bodies[sv].ID,
				Position:     newPos,
				CombinedMass: total,
			})

			s.bodies[sv].Mass = total
			s.bodies[sv].Velocity = newVel
			s.bodies[sv].Position = newPos
			s.bodies[sv].Radius = newRadius
			if s.bodies[ab].Fixed {
				s.bodies[sv].Fixed = true
			}
			absorbed[ab] = true
		}
	}

	for i := len(s.bodies) - 1; i >= 0; i-- {
		if absorbed[i] {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
		}
	}
	return events
}

func (s *LocalSource) computeEnergies() EnergyData {
	var ke, pe float64
	for i := range s.bodies {
		ke += 0.5 * s.bodies[i].Mass * r3.Norm2(s.bodies[i].Velocity)
	}
	for i := range s.bodies {
		for j := i + 1; j < len(s.bodies); j++ {
			dist := r3.Norm(r3.Sub(s.bodies[j].Position, s.bodies[i].Position))
			if dist > 0.001 {
				pe -= s.g * s.bodies[i].Mass * s.bodies[j].Mass / dist
			}
		}
	}
	return EnergyData{Kinetic: ke, Potential: pe, Total: ke + pe}
}

// servePredictions answers queued prediction requests by cloning the current
// bodies and integrating forward. Runs with s.mu held.
func (s *LocalSource) servePredictions() {
	if len(s.predictions) == 0 || s.onPredict == nil {
		return
	}
	reqs := s.predictions
	s.predictions = nil

	for _, req := range reqs {
		steps := req.steps
		if steps > 2000 {
			steps = 2000
		}
		clone := make([]Body, len(s.bodies))
		copy(clone, s.bodies)
		for i := range clone {
			clone[i].Trail = nil
		}

		path := make([]r3.Vec, 0, steps)
		for k := 0; k < steps; k++ {
			stepVerlet(clone, s.dt, s.g, s.softening)
			var found *Body
			for i := range clone {
				if clone[i].ID == req.id {
					found = &clone[i]
					break
				}
			}
			if found == nil {
				break
			}
			path = append(path, found.Position)
		}
		s.onPredict(req.id, path)
	}
}

// allocateID hands out the next stable body identifier. Callers hold s.mu.
func (s *LocalSource) allocateID() uint32 {
	id := s.nextID
	s.nextID++
	return id
}

// AddBody inserts a body and primes its acceleration.
func (s *LocalSource) AddBody(spec BodySpec) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBodyLocked(spec)
}

func (s *LocalSource) addBodyLocked(spec BodySpec) uint32 {
	fuel := spec.Fuel
	if fuel <= 0 {
		fuel = 100.0
	}
	id := s.allocateID()
	s.bodies = append(s.bodies, Body{
		ID:       id,
		Position: spec.Position,
		Velocity: spec.Velocity,
		Mass:     math.Max(spec.Mass, 0.01),
		Radius:   math.Max(spec.Radius, 0.5),
		Color:    spec.Color,
		Fixed:    spec.Fixed,
		Name:     spec.Name,
		Kind:     spec.Kind,
		Fuel:     fuel,
		MaxFuel:  fuel,
	})
	computeAccelerations(s.bodies, s.g, s.softening)
	return id
}

// CreateBody implements CommandSink.
func (s *LocalSource) CreateBody(spec BodySpec) {
	s.AddBody(spec)
}

// SetVelocity implements CommandSink.
func (s *LocalSource) SetVelocity(id uint32, v r3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bodies {
		if s.bodies[i].ID == id {
			s.bodies[i].Velocity = v
			return
		}
	}
}

// SetThrust implements CommandSink. Ignored for non-craft bodies.
func (s *LocalSource) SetThrust(id uint32, t r3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bodies {
		if s.bodies[i].ID == id && s.bodies[i].Kind == KindCraft {
			s.bodies[i].Thrust = t
			return
		}
	}
}

// RequestPrediction implements CommandSink. The request is served on the next
// step and the path delivered through the OnPrediction callback.
func (s *LocalSource) RequestPrediction(id uint32, steps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions = append(s.predictions, predictionRequest{id: id, steps: steps})
}

// SetPaused implements CommandSink.
func (s *LocalSource) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// SetSpeed implements CommandSink. The multiplier is clamped to [0.25, 8].
func (s *LocalSource) SetSpeed(mult float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speedMult = math.Min(math.Max(mult, 0.25), 8.0)
}
