package scene

import (
	"github.com/saagar210/OrbitForge/effects"
	"github.com/saagar210/OrbitForge/sim"
)

// trailMaxEpsilon guards the speed normalization against a numerically
// negligible maximum (all-stationary history).
const trailMaxEpsilon = 1e-9

// Trail color endpoints: slow samples render cool, fast samples hot.
var (
	trailCool = sim.Color{R: 60, G: 120, B: 255, A: 200}
	trailHot  = sim.Color{R: 255, G: 120, B: 40, A: 255}
)

// updateTrail rewrites the buffer from the body's trajectory history,
// color-coding each vertex by its stored speed normalized against the
// maximum speed in the visible segment.
func updateTrail(buf *effects.TrailBuffer, trail []sim.TrailPoint) {
	if buf == nil {
		return
	}
	buf.Reset()
	if len(trail) == 0 {
		return
	}

	// The visible segment is the newest capacity-many samples.
	start := 0
	if len(trail) > buf.Capacity() {
		start = len(trail) - buf.Capacity()
	}
	visible := trail[start:]

	maxSpeed := 0.0
	for i := range visible {
		if visible[i].Speed > maxSpeed {
			maxSpeed = visible[i].Speed
		}
	}
	if maxSpeed < trailMaxEpsilon {
		maxSpeed = 1
	}

	for i := range visible {
		p := &visible[i]
		buf.Push(effects.TrailVertex{
			X:     float32(p.Position.X),
			Y:     float32(p.Position.Y),
			Z:     float32(p.Position.Z),
			Color: lerpColor(trailCool, trailHot, p.Speed/maxSpeed),
		})
	}
}

func lerpColor(a, b sim.Color, t float64) sim.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return sim.Color{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}
