// Package effects provides fixed-capacity pools for short-lived visual
// effects. Slots are never allocated in the per-frame hot path: spawning
// claims inactive slots in O(capacity) scans and requests beyond capacity are
// silently dropped. That is a visual-fidelity degradation, not an error.
package effects

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

// Per-spawn and physics constants for debris particles.
const (
	maxParticlesPerSpawn = 16
	particleMinSpeed     = 8.0
	particleMaxSpeed     = 40.0
	particleLife         = 1.6  // seconds
	particleDamping      = 0.92 // velocity retained per tick
	colorJitter          = 30   // per-channel spawn jitter
)

// Particle is one debris particle slot.
type Particle struct {
	Active   bool
	Position r3.Vec
	Velocity r3.Vec
	Life     float64
	MaxLife  float64
	Size     float64
	Color    sim.Color
}

// ParticlePool is a fixed-size slot array for debris particles.
type ParticlePool struct {
	slots []Particle
	rng   *rand.Rand
}

// NewParticlePool creates a pool with the given static capacity.
func NewParticlePool(capacity int, rng *rand.Rand) *ParticlePool {
	if capacity < 1 {
		capacity = 1
	}
	return &ParticlePool{
		slots: make([]Particle, capacity),
		rng:   rng,
	}
}

// Spawn activates up to count particles radiating outward from origin.
// count is clamped to the per-call ceiling; when the pool is full the
// remainder is dropped.
func (p *ParticlePool) Spawn(origin r3.Vec, count int, colorHint sim.Color) int {
	if count > maxParticlesPerSpawn {
		count = maxParticlesPerSpawn
	}
	spawned := 0
	for i := range p.slots {
		if spawned >= count {
			break
		}
		if p.slots[i].Active {
			continue
		}
		p.slots[i] = Particle{
			Active:   true,
			Position: origin,
			Velocity: r3.Scale(p.speed(), p.isotropicDir()),
			Life:     particleLife,
			MaxLife:  particleLife,
			Size:     1.0 + p.rng.Float64()*1.5,
			Color:    jitterColor(p.rng, colorHint),
		}
		spawned++
	}
	return spawned
}

// isotropicDir samples a uniformly distributed unit vector. Polar angle from
// arccos of a uniform value in [-1,1] avoids clustering at the poles.
func (p *ParticlePool) isotropicDir() r3.Vec {
	azimuth := p.rng.Float64() * 2 * math.Pi
	polar := math.Acos(p.rng.Float64()*2 - 1)
	sinP := math.Sin(polar)
	return r3.Vec{
		X: sinP * math.Cos(azimuth),
		Y: sinP * math.Sin(azimuth),
		Z: math.Cos(polar),
	}
}

func (p *ParticlePool) speed() float64 {
	return particleMinSpeed + p.rng.Float64()*(particleMaxSpeed-particleMinSpeed)
}

func jitterColor(rng *rand.Rand, c sim.Color) sim.Color {
	j := func(v uint8) uint8 {
		n := int(v) + rng.Intn(2*colorJitter+1) - colorJitter
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	return sim.Color{R: j(c.R), G: j(c.G), B: j(c.B), A: c.A}
}

// Tick advances all active particles: integrate position, damp velocity,
// decrement lifetime, shrink with remaining-life fraction, deactivate expired
// slots.
func (p *ParticlePool) Tick(dt float64) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.Active {
			continue
		}
		s.Life -= dt
		if s.Life <= 0 {
			s.Active = false
			continue
		}
		s.Position = r3.Add(s.Position, r3.Scale(dt, s.Velocity))
		s.Velocity = r3.Scale(particleDamping, s.Velocity)
	}
}

// Render calls fn for each active particle with its draw size already scaled
// by the remaining-life fraction.
func (p *ParticlePool) Render(fn func(pos r3.Vec, size float64, color sim.Color)) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.Active {
			continue
		}
		frac := s.Life / s.MaxLife
		fn(s.Position, s.Size*frac, s.Color)
	}
}

// ActiveCount returns the number of live slots.
func (p *ParticlePool) ActiveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}

// Capacity returns the static slot count.
func (p *ParticlePool) Capacity() int {
	return len(p.slots)
}
