package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/effects"
	"github.com/saagar210/OrbitForge/sim"
)

// DrawParticles renders the active debris particles as small cubes.
// Must be called inside BeginMode3D.
func DrawParticles(pool *effects.ParticlePool) {
	pool.Render(func(pos r3.Vec, size float64, color sim.Color) {
		s := float32(size)
		rl.DrawCubeV(vec3(pos), rl.Vector3{X: s, Y: s, Z: s}, col(color))
	})
}

// DrawFlashes renders the active collision flashes as translucent spheres.
// Must be called inside BeginMode3D.
func DrawFlashes(pool *effects.FlashPool) {
	pool.Render(func(pos r3.Vec, radius float64, color sim.Color) {
		rl.DrawSphereEx(vec3(pos), float32(radius), 10, 10, col(color))
	})
}

// DrawIndicator draws the slingshot drag line from anchor to the current
// drag point. Must be called inside BeginMode3D.
func DrawIndicator(from, to r3.Vec) {
	c := rl.Color{R: 255, G: 255, B: 120, A: 230}
	rl.DrawLine3D(vec3(from), vec3(to), c)
	rl.DrawSphereWires(vec3(to), 1.2, 6, 6, c)
}
