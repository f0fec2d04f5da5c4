package effects

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

// Flash lifecycle constants: a flash grows from its base radius to
// base*flashGrowth while its alpha fades linearly to zero.
const (
	flashDuration = 0.6
	flashGrowth   = 3.0
)

// Flash is one impact-flash slot.
type Flash struct {
	Active   bool
	Position r3.Vec
	Age      float64
	Radius   float64
}

// FlashPool is a fixed-size slot array for impact flashes.
type FlashPool struct {
	slots []Flash
}

// NewFlashPool creates a pool with the given static capacity.
func NewFlashPool(capacity int) *FlashPool {
	if capacity < 1 {
		capacity = 1
	}
	return &FlashPool{slots: make([]Flash, capacity)}
}

// Spawn claims an inactive slot for a flash at position with the given base
// radius. A full pool drops the request.
func (p *FlashPool) Spawn(position r3.Vec, radius float64) bool {
	for i := range p.slots {
		if p.slots[i].Active {
			continue
		}
		p.slots[i] = Flash{
			Active:   true,
			Position: position,
			Radius:   radius,
		}
		return true
	}
	return false
}

// Tick ages all active flashes and expires them past flashDuration.
func (p *FlashPool) Tick(dt float64) {
	for i := range p.slots {
		if !p.slots[i].Active {
			continue
		}
		p.slots[i].Age += dt
		if p.slots[i].Age >= flashDuration {
			p.slots[i].Active = false
		}
	}
}

// Render calls fn for each active flash with the grown radius and faded
// color.
func (p *FlashPool) Render(fn func(pos r3.Vec, radius float64, color sim.Color)) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.Active {
			continue
		}
		frac := s.Age / flashDuration
		radius := s.Radius * (1 + frac*(flashGrowth-1))
		alpha := uint8(255 * (1 - frac))
		fn(s.Position, radius, sim.Color{R: 255, G: 240, B: 200, A: alpha})
	}
}

// ActiveCount returns the number of live slots.
func (p *FlashPool) ActiveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}
