package mechanics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LagrangePoints holds the five libration point positions of a two-body pair.
type LagrangePoints struct {
	L1, L2, L3, L4, L5 r3.Vec
}

// ComputeLagrangePoints locates the five Lagrange points of the
// primary/secondary pair using the standard collinear approximations:
// L1/L2 at R(1∓(mu/3)^(1/3)) from the primary along the separation axis,
// L3 at R(1+5mu/12) on the far side, and L4/L5 as the equilateral-triangle
// points. Degenerate (coincident) pairs return all-zero points.
func ComputeLagrangePoints(primaryPos, secondaryPos r3.Vec, primaryMass, secondaryMass float64) LagrangePoints {
	sep := r3.Sub(secondaryPos, primaryPos)
	dist := r3.Norm(sep)
	if dist < distEpsilon {
		return LagrangePoints{}
	}
	u := r3.Scale(1/dist, sep)
	mu := secondaryMass / (primaryMass + secondaryMass)

	hill := math.Cbrt(mu / 3)

	pts := LagrangePoints{
		L1: r3.Add(primaryPos, r3.Scale(dist*(1-hill), u)),
		L2: r3.Add(primaryPos, r3.Scale(dist*(1+hill), u)),
		L3: r3.Sub(primaryPos, r3.Scale(dist*(1+5*mu/12), u)),
	}

	// Equilateral points need an in-plane perpendicular. Cross against the
	// principal axis the separation vector is least aligned with, so the
	// cross product is never near zero.
	perp := r3.Unit(r3.Cross(u, leastAlignedAxis(u)))
	half := r3.Scale(dist*0.5, u)
	height := r3.Scale(dist*math.Sqrt(3)/2, perp)

	pts.L4 = r3.Add(primaryPos, r3.Add(half, height))
	pts.L5 = r3.Add(primaryPos, r3.Sub(half, height))
	return pts
}

// leastAlignedAxis returns the principal axis with the smallest absolute
// component in u.
func leastAlignedAxis(u r3.Vec) r3.Vec {
	ax, ay, az := math.Abs(u.X), math.Abs(u.Y), math.Abs(u.Z)
	switch {
	case ax <= ay && ax <= az:
		return r3.Vec{X: 1}
	case ay <= az:
		return r3.Vec{Y: 1}
	default:
		return r3.Vec{Z: 1}
	}
}
