package mechanics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transfer describes a Hohmann transfer between two circular coplanar orbits.
type Transfer struct {
	DeltaV1      float64
	DeltaV2      float64
	TotalDeltaV  float64
	TransferTime float64
	Points       []r3.Vec // sampled half-ellipse from inner to outer orbit
}

// HohmannTransfer computes the two-impulse transfer between circular orbits
// of radius r1 and r2 around an attractor with gravitational parameter mu
// centered at center. numPoints controls only the sampling density of the
// returned polyline; the impulse magnitudes and transfer time are independent
// of it. ok=false for non-positive radii or mu.
func HohmannTransfer(r1, r2, mu float64, center r3.Vec, numPoints int) (Transfer, bool) {
	if r1 <= distEpsilon || r2 <= distEpsilon || mu <= distEpsilon {
		return Transfer{}, false
	}
	if numPoints < 2 {
		numPoints = 2
	}

	aTransfer := (r1 + r2) / 2

	// Vis-viva at both ends of the transfer ellipse.
	vCirc1 := math.Sqrt(mu / r1)
	vCirc2 := math.Sqrt(mu / r2)
	vTrans1 := math.Sqrt(mu * (2/r1 - 1/aTransfer))
	vTrans2 := math.Sqrt(mu * (2/r2 - 1/aTransfer))

	dv1 := math.Abs(vTrans1 - vCirc1)
	dv2 := math.Abs(vCirc2 - vTrans2)

	// Half the transfer ellipse period.
	transferTime := math.Pi * math.Sqrt(aTransfer*aTransfer*aTransfer/mu)

	ecc := (r2 - r1) / (r2 + r1)
	semiLatus := aTransfer * (1 - ecc*ecc)

	points := make([]r3.Vec, numPoints)
	for i := 0; i < numPoints; i++ {
		theta := math.Pi * float64(i) / float64(numPoints-1)
		r := semiLatus / (1 + ecc*math.Cos(theta))
		points[i] = r3.Add(center, r3.Vec{
			X: r * math.Cos(theta),
			Y: r * math.Sin(theta),
		})
	}

	return Transfer{
		DeltaV1:      dv1,
		DeltaV2:      dv2,
		TotalDeltaV:  dv1 + dv2,
		TransferTime: transferTime,
		Points:       points,
	}, true
}
