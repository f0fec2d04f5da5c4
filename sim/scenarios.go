package sim

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// LoadSunEarth populates the simulation with a fixed sun and one planet on a
// circular orbit in the ecliptic (XZ) plane.
func (s *LocalSource) LoadSunEarth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()

	const sunMass = 50000.0
	const orbitRadius = 250.0
	v := math.Sqrt(s.g * sunMass / orbitRadius)

	s.addBodyLocked(BodySpec{
		Name:   "Sun",
		Mass:   sunMass,
		Radius: 20.0,
		Color:  Color{R: 255, G: 215, B: 0, A: 255},
		Fixed:  true,
		Kind:   KindStar,
	})
	s.addBodyLocked(BodySpec{
		Name:     "Earth",
		Position: r3.Vec{X: orbitRadius},
		Velocity: r3.Vec{Z: v},
		Mass:     1.0,
		Radius:   8.0,
		Color:    Color{R: 74, G: 144, B: 217, A: 255},
		Kind:     KindPlanet,
	})
}

var planetNames = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon",
	"Zeta", "Eta", "Theta", "Iota", "Kappa",
	"Lambda", "Mu", "Nu", "Xi", "Omicron",
	"Pi", "Rho", "Sigma", "Tau", "Upsilon",
}

// GenerateSystem procedurally populates a star plus planetCount planets on
// randomized near-circular orbits in the ecliptic (XZ) plane with small
// inclinations out of it.
func (s *LocalSource) GenerateSystem(rng *rand.Rand, starMass float64, planetCount int, minSpacing, maxRadius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()

	starRadius := math.Min(math.Max(math.Cbrt(starMass/1000.0), 8.0), 30.0)
	s.addBodyLocked(BodySpec{
		Name:   "Star",
		Mass:   starMass,
		Radius: starRadius,
		Color:  Color{R: 255, G: 220, B: 120, A: 255},
		Fixed:  true,
		Kind:   KindStar,
	})

	spacingStep := 0.0
	if planetCount > 1 {
		spacingStep = (maxRadius - minSpacing) / float64(planetCount-1)
	}

	orbitRadius := minSpacing
	for i := 0; i < planetCount; i++ {
		name := "Planet"
		if i < len(planetNames) {
			name = planetNames[i]
		}

		jitter := (rng.Float64()*0.3 - 0.15) * spacingStep
		r := math.Max(orbitRadius+jitter, minSpacing)

		// Log-scale mass in [0.1, 1000).
		mass := math.Pow(10, rng.Float64()*4-1)
		radius := math.Min(math.Max(math.Cbrt(mass)*3.0, 2.0), 18.0)

		v := math.Sqrt(s.g * starMass / r)
		angle := rng.Float64() * 2 * math.Pi
		inclination := rng.Float64()*0.3 - 0.15

		s.addBodyLocked(BodySpec{
			Name:     name,
			Position: r3.Vec{X: r * math.Cos(angle), Z: r * math.Sin(angle)},
			Velocity: r3.Vec{
				X: -v * math.Sin(angle) * math.Cos(inclination),
				Z: v * math.Cos(angle) * math.Cos(inclination),
				Y: v * math.Sin(inclination),
			},
			Mass:   mass,
			Radius: radius,
			Color: Color{
				R: uint8(100 + rng.Intn(156)),
				G: uint8(100 + rng.Intn(156)),
				B: uint8(100 + rng.Intn(156)),
				A: 255,
			},
			Kind: KindPlanet,
		})

		orbitRadius += spacingStep
	}
}

// AddCraft drops a spacecraft into the system at the given state vector.
func (s *LocalSource) AddCraft(name string, pos, vel r3.Vec) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBodyLocked(BodySpec{
		Name:     name,
		Position: pos,
		Velocity: vel,
		Mass:     0.1,
		Radius:   3.0,
		Color:    Color{R: 220, G: 220, B: 235, A: 255},
		Kind:     KindCraft,
	})
}

func (s *LocalSource) clearLocked() {
	s.bodies = nil
	s.tick = 0
	s.nextID = 0
}
