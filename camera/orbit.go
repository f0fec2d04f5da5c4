// Package camera provides the orbit camera for viewport control.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orbit positions the eye on a sphere around a target point. Yaw rotates
// around the world Y axis, pitch tilts toward the poles, distance zooms.
type Orbit struct {
	Target   r3.Vec
	Yaw      float64 // radians
	Pitch    float64 // radians, clamped shy of the poles
	Distance float64

	// Viewport for ray construction.
	ViewportW, ViewportH float64
	FovY                 float64 // radians

	// Zoom constraints.
	MinDistance, MaxDistance float64
}

// pitchLimit keeps the eye off the poles so the view basis never collapses.
const pitchLimit = math.Pi/2 - 0.01

// New creates a camera orbiting the origin from a distance suited to the
// reference scenario scale.
func New(viewportW, viewportH float64) *Orbit {
	return &Orbit{
		Yaw:         math.Pi / 4,
		Pitch:       math.Pi / 6,
		Distance:    600,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		FovY:        45 * math.Pi / 180,
		MinDistance: 20,
		MaxDistance: 5000,
	}
}

// Position returns the eye position in world space.
func (c *Orbit) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	return r3.Add(c.Target, r3.Vec{
		X: c.Distance * cp * math.Cos(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: c.Distance * cp * math.Sin(c.Yaw),
	})
}

// Rotate applies yaw/pitch deltas, clamping pitch shy of the poles.
func (c *Orbit) Rotate(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// ZoomBy scales the orbit distance, clamped to the configured range.
func (c *Orbit) ZoomBy(factor float64) {
	c.Distance *= factor
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Pan translates the target in the view plane.
func (c *Orbit) Pan(dx, dy float64) {
	right, up, _ := c.basis()
	c.Target = r3.Add(c.Target, r3.Add(r3.Scale(dx, right), r3.Scale(dy, up)))
}

// Resize updates the viewport dimensions.
func (c *Orbit) Resize(w, h float64) {
	c.ViewportW = w
	c.ViewportH = h
}

// basis returns the camera's right/up/forward unit vectors.
func (c *Orbit) basis() (right, up, forward r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position()))
	worldUp := r3.Vec{Y: 1}
	right = r3.Unit(r3.Cross(forward, worldUp))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// ScreenRay builds the world-space picking ray through the given screen
// pixel using the camera's perspective projection.
func (c *Orbit) ScreenRay(px, py float64) (origin, dir r3.Vec) {
	// Normalized device coordinates in [-1, 1], Y up.
	ndcX := 2*px/c.ViewportW - 1
	ndcY := 1 - 2*py/c.ViewportH

	halfH := math.Tan(c.FovY / 2)
	halfW := halfH * c.ViewportW / c.ViewportH

	right, up, forward := c.basis()
	dir = r3.Unit(r3.Add(forward,
		r3.Add(r3.Scale(ndcX*halfW, right), r3.Scale(ndcY*halfH, up))))
	return c.Position(), dir
}
