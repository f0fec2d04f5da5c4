package mechanics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

const tol = 1e-9

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestOrbitalElementsCircular(t *testing.T) {
	// Circular orbit: v = sqrt(mu/r), velocity perpendicular to radius.
	g := 100.0
	mass := 1000.0
	mu := g * mass
	r := 200.0
	v := math.Sqrt(mu / r)

	el, ok := OrbitalElements(r3.Vec{X: r}, r3.Vec{Y: v}, mass, g)
	if !ok {
		t.Fatal("expected elements for circular orbit")
	}
	if el.Eccentricity > 1e-9 {
		t.Errorf("expected eccentricity ~0, got %g", el.Eccentricity)
	}
	wantPeriod := 2 * math.Pi * math.Sqrt(r*r*r/mu)
	if !near(el.Period, wantPeriod, 1e-6*wantPeriod) {
		t.Errorf("period: want %g, got %g", wantPeriod, el.Period)
	}
	if !near(el.SemiMajorAxis, r, 1e-6) {
		t.Errorf("semi-major axis: want %g, got %g", r, el.SemiMajorAxis)
	}
	if !near(el.Apoapsis, r, 1e-6) || !near(el.Periapsis, r, 1e-6) {
		t.Errorf("apsides: want both %g, got %g / %g", r, el.Apoapsis, el.Periapsis)
	}
}

func TestOrbitalElementsEquatorialInclination(t *testing.T) {
	el, ok := OrbitalElements(r3.Vec{X: 100}, r3.Vec{Y: 10}, 1000, 100)
	if !ok {
		t.Fatal("expected elements")
	}
	if !near(el.Inclination, 0, 1e-9) {
		t.Errorf("equatorial orbit inclination: want 0, got %g", el.Inclination)
	}
}

func TestOrbitalElementsHyperbolic(t *testing.T) {
	// Escape-plus speed gives positive energy and an open orbit.
	g, mass := 100.0, 1000.0
	mu := g * mass
	r := 100.0
	v := math.Sqrt(2*mu/r) * 1.5

	el, ok := OrbitalElements(r3.Vec{X: r}, r3.Vec{Y: v}, mass, g)
	if !ok {
		t.Fatal("expected elements for hyperbolic orbit")
	}
	if el.Eccentricity <= 1 {
		t.Errorf("expected eccentricity > 1, got %g", el.Eccentricity)
	}
	if !math.IsInf(el.Period, 1) {
		t.Errorf("expected infinite period, got %g", el.Period)
	}
	if el.SemiMajorAxis >= 0 {
		t.Errorf("expected negative semi-major axis, got %g", el.SemiMajorAxis)
	}
}

func TestOrbitalElementsDegenerate(t *testing.T) {
	cases := []struct {
		name string
		r, v r3.Vec
		mass float64
	}{
		{"zero radius", r3.Vec{}, r3.Vec{Y: 5}, 1000},
		{"zero mass", r3.Vec{X: 100}, r3.Vec{Y: 5}, 0},
	}
	for _, tc := range cases {
		if _, ok := OrbitalElements(tc.r, tc.v, tc.mass, 100); ok {
			t.Errorf("%s: expected no elements", tc.name)
		}
	}
}

func TestOrbitalElementsParabolic(t *testing.T) {
	// Exactly the escape speed: energy within epsilon of zero.
	g, mass := 100.0, 1000.0
	mu := g * mass
	r := 100.0
	v := math.Sqrt(2 * mu / r)

	if _, ok := OrbitalElements(r3.Vec{X: r}, r3.Vec{Y: v}, mass, g); ok {
		t.Error("parabolic orbit should return no elements")
	}
}

func TestOrbitalElementsRadialPlunge(t *testing.T) {
	// Velocity parallel to radius: |h| ~ 0, inclination must fall back to 0.
	el, ok := OrbitalElements(r3.Vec{X: 100}, r3.Vec{X: -1}, 1000, 100)
	if !ok {
		t.Fatal("expected elements for radial plunge")
	}
	if el.Inclination != 0 {
		t.Errorf("degenerate angular momentum: want inclination 0, got %g", el.Inclination)
	}
}

func TestDominantBody(t *testing.T) {
	bodies := []sim.Body{
		{ID: 0, Position: r3.Vec{}, Mass: 1},
		{ID: 1, Position: r3.Vec{X: 100}, Mass: 50000}, // strong but far
		{ID: 2, Position: r3.Vec{X: 5}, Mass: 100},     // weak but close
	}
	// Influence: body1 = G*50000/10000 = 5G, body2 = G*100/25 = 4G.
	idx, ok := DominantBody(bodies, 0, 100)
	if !ok || idx != 1 {
		t.Errorf("want dominant index 1, got %d (ok=%v)", idx, ok)
	}

	// Move body2 closer so proximity wins.
	bodies[2].Position = r3.Vec{X: 2}
	idx, ok = DominantBody(bodies, 0, 100)
	if !ok || idx != 2 {
		t.Errorf("want dominant index 2, got %d (ok=%v)", idx, ok)
	}
}

func TestDominantBodyNearGiantPlanet(t *testing.T) {
	// A small body skimming a giant planet is dominated by the planet even
	// with a far heavier star in the system. Tail orientation and the
	// elements readout both rely on this.
	bodies := []sim.Body{
		{ID: 0, Position: r3.Vec{X: 400, Z: 12}, Mass: 0.01},
		{ID: 1, Mass: 50000, Fixed: true},
		{ID: 2, Position: r3.Vec{X: 400}, Mass: 800},
	}
	idx, ok := DominantBody(bodies, 0, 100)
	if !ok || idx != 2 {
		t.Errorf("want the nearby giant (index 2), got %d (ok=%v)", idx, ok)
	}
}

func TestDominantBodyCoincident(t *testing.T) {
	bodies := []sim.Body{
		{ID: 0, Mass: 1},
		{ID: 1, Mass: 100}, // same position
	}
	if _, ok := DominantBody(bodies, 0, 100); ok {
		t.Error("coincident candidates should yield no dominant body")
	}
}

func TestSelectPair(t *testing.T) {
	bodies := []sim.Body{
		{ID: 0, Mass: 5},
		{ID: 1, Mass: 100},
		{ID: 2, Mass: 100}, // tie: first-encountered wins secondary slot
		{ID: 3, Mass: 50},
	}
	p, s, ok := SelectPair(bodies)
	if !ok {
		t.Fatal("expected a pair")
	}
	if p != 1 || s != 2 {
		t.Errorf("want pair (1,2), got (%d,%d)", p, s)
	}

	if _, _, ok := SelectPair(bodies[:1]); ok {
		t.Error("single body should not form a pair")
	}
}

func TestBarycenter(t *testing.T) {
	bodies := []sim.Body{
		{Position: r3.Vec{X: 0}, Mass: 1},
		{Position: r3.Vec{X: 10}, Mass: 3},
	}
	c, ok := Barycenter(bodies)
	if !ok {
		t.Fatal("expected barycenter")
	}
	if !near(c.X, 7.5, tol) {
		t.Errorf("barycenter X: want 7.5, got %g", c.X)
	}

	if _, ok := Barycenter(nil); ok {
		t.Error("empty set should have no barycenter")
	}
}
