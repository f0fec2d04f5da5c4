// Package interact turns pointer input into selection events and simulation
// commands. The math lives on plain float64 types so the mode machine is
// testable without a window; the caller builds rays from its camera.
package interact

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a world-space picking ray. Dir must be unit length.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// Plane is a point-normal plane.
type Plane struct {
	Point  r3.Vec
	Normal r3.Vec
}

// HitSphere returns the distance along the ray to the nearest intersection
// with the sphere, if any intersection lies in front of the origin.
func (r Ray) HitSphere(center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(r.Origin, center)
	b := r3.Dot(oc, r.Dir)
	c := r3.Norm2(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq // origin inside the sphere
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// HitPlane returns the intersection point with the plane. Rays parallel to
// the plane, or intersecting behind the origin, miss.
func (r Ray) HitPlane(p Plane) (r3.Vec, bool) {
	denom := r3.Dot(r.Dir, p.Normal)
	if math.Abs(denom) < 1e-12 {
		return r3.Vec{}, false
	}
	t := r3.Dot(r3.Sub(p.Point, r.Origin), p.Normal) / denom
	if t < 0 {
		return r3.Vec{}, false
	}
	return r3.Add(r.Origin, r3.Scale(t, r.Dir)), true
}
