// Package mechanics derives orbital quantities from instantaneous state
// vectors. All functions are pure and side-effect-free: they own no scene
// state and are usable headless. Degenerate input (near-zero distances,
// near-zero angular momentum, parabolic energies) yields ok=false instead of
// NaN leaking into geometry.
package mechanics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

const (
	// distEpsilon is the negligible-distance threshold below which two
	// bodies are treated as coincident.
	distEpsilon = 1e-9

	// energyEpsilon bounds the parabolic edge case: specific orbital
	// energies closer to zero than this have no defined semi-major axis.
	energyEpsilon = 1e-12
)

// Elements is a classical orbital element set derived from one state vector.
type Elements struct {
	SemiMajorAxis float64
	Eccentricity  float64
	Inclination   float64 // radians
	Period        float64 // +Inf for open orbits
	Apoapsis      float64
	Periapsis     float64
	Energy        float64 // specific orbital energy
}

// OrbitalElements computes the element set for a body at relative position r
// (attractor at origin) moving with velocity v around an attractor of the
// given mass. Returns ok=false when r or mu is too small to be meaningful or
// when the orbit is parabolic within tolerance.
func OrbitalElements(r, v r3.Vec, attractorMass, g float64) (Elements, bool) {
	dist := r3.Norm(r)
	mu := g * attractorMass
	if dist < distEpsilon || mu < distEpsilon {
		return Elements{}, false
	}

	h := r3.Cross(r, v)
	hMag := r3.Norm(h)

	inclination := 0.0
	if hMag > distEpsilon {
		inclination = math.Acos(math.Abs(h.Z) / hMag)
	}

	speed2 := r3.Norm2(v)
	energy := 0.5*speed2 - mu/dist
	if math.Abs(energy) < energyEpsilon {
		return Elements{}, false
	}
	a := -mu / (2 * energy)

	// Eccentricity vector: (v x h)/mu - r_hat.
	eVec := r3.Sub(r3.Scale(1/mu, r3.Cross(v, h)), r3.Scale(1/dist, r))
	ecc := r3.Norm(eVec)

	period := math.Inf(1)
	if ecc < 1 {
		period = 2 * math.Pi * math.Sqrt(math.Abs(a*a*a)/mu)
	}

	return Elements{
		SemiMajorAxis: a,
		Eccentricity:  ecc,
		Inclination:   inclination,
		Period:        period,
		Apoapsis:      a * (1 + ecc),
		Periapsis:     math.Abs(a) * (1 - ecc),
		Energy:        energy,
	}, true
}

// DominantBody returns the index of the body exerting the strongest
// gravitational influence (G*m/d^2) on bodies[target]. This is an influence
// proxy, not a Hill-sphere test: in crowded scenes it can pick a locally
// intense attractor that a rigorous barycentric analysis would reject. Kept
// as-is for compatibility with the attractor selection the overlays were
// tuned against. Returns ok=false when every candidate is within the
// coincidence epsilon.
func DominantBody(bodies []sim.Body, target int, g float64) (int, bool) {
	best := -1
	bestInfluence := 0.0
	pos := bodies[target].Position

	for i := range bodies {
		if i == target {
			continue
		}
		d2 := r3.Norm2(r3.Sub(bodies[i].Position, pos))
		if d2 < distEpsilon*distEpsilon {
			continue
		}
		influence := g * bodies[i].Mass / d2
		if influence > bestInfluence {
			bestInfluence = influence
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// SelectPair picks the two highest-mass bodies as a primary/secondary pair,
// ties broken by first-encountered order. ok=false with fewer than two
// bodies.
func SelectPair(bodies []sim.Body) (primary, secondary int, ok bool) {
	if len(bodies) < 2 {
		return 0, 0, false
	}
	primary, secondary = -1, -1
	for i := range bodies {
		switch {
		case primary < 0 || bodies[i].Mass > bodies[primary].Mass:
			secondary = primary
			primary = i
		case secondary < 0 || bodies[i].Mass > bodies[secondary].Mass:
			secondary = i
		}
	}
	return primary, secondary, true
}

// Barycenter returns the mass-weighted mean position of the bodies.
// ok=false when total mass is negligible.
func Barycenter(bodies []sim.Body) (r3.Vec, bool) {
	var sum r3.Vec
	var total float64
	for i := range bodies {
		sum = r3.Add(sum, r3.Scale(bodies[i].Mass, bodies[i].Position))
		total += bodies[i].Mass
	}
	if total < distEpsilon {
		return r3.Vec{}, false
	}
	return r3.Scale(1/total, sum), true
}
