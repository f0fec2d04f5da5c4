// Package renderer draws the reconciled scene: bodies, trails, effect pools,
// and analytical overlays. All raylib calls in the engine live here and in
// the game loop; everything upstream works in float64 world space.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

// vec3 converts a world-space vector to raylib's float32 vector.
func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// col converts an engine color to a raylib color.
func col(c sim.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// fade returns the color with its alpha scaled by t in [0,1].
func fade(c rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	c.A = uint8(float32(c.A) * t)
	return c
}
