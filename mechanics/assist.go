package mechanics

import "math"

// Assist describes a gravity-assist flyby in the assisting body's rest frame.
type Assist struct {
	Eccentricity float64
	Deflection   float64 // radians
	ExitSpeed    float64 // equal to vInf: elastic in the rest frame
	DeltaV       float64 // inertial-frame speed change magnitude
	Periapsis    float64
}

// GravityAssist computes the hyperbolic flyby geometry for an approach with
// excess speed vInf and periapsis distance periapsis past a body of the given
// mass. ok=false for non-positive inputs. An eccentricity at or below 1 is
// numerically invalid for a hyperbolic pass; the deflection is clamped to pi
// rather than propagating NaN.
func GravityAssist(vInf, periapsis, bodyMass, g float64) (Assist, bool) {
	mu := g * bodyMass
	if vInf <= 0 || periapsis <= 0 || mu <= distEpsilon {
		return Assist{}, false
	}

	ecc := 1 + periapsis*vInf*vInf/mu

	deflection := math.Pi
	if ecc > 1 {
		deflection = 2 * math.Asin(1/ecc)
	}

	return Assist{
		Eccentricity: ecc,
		Deflection:   deflection,
		ExitSpeed:    vInf,
		DeltaV:       2 * vInf * math.Sin(deflection/2),
		Periapsis:    periapsis,
	}, true
}
