package mechanics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestHohmannTransfer(t *testing.T) {
	// Reference case: r1=100, r2=400, mu = 100*1000.
	tr, ok := HohmannTransfer(100, 400, 100*1000, r3.Vec{}, 64)
	if !ok {
		t.Fatal("expected transfer")
	}

	if tr.TotalDeltaV != tr.DeltaV1+tr.DeltaV2 {
		t.Errorf("total delta-v must be the exact sum: %g != %g+%g",
			tr.TotalDeltaV, tr.DeltaV1, tr.DeltaV2)
	}
	if tr.TransferTime <= 0 {
		t.Errorf("transfer time must be positive, got %g", tr.TransferTime)
	}
	if len(tr.Points) != 64 {
		t.Errorf("want 64 sampled points, got %d", len(tr.Points))
	}

	// Endpoints of the half ellipse lie on the two circular orbits.
	if !near(r3.Norm(tr.Points[0]), 100, 1e-6) {
		t.Errorf("first point radius: want 100, got %g", r3.Norm(tr.Points[0]))
	}
	last := tr.Points[len(tr.Points)-1]
	if !near(r3.Norm(last), 400, 1e-6) {
		t.Errorf("last point radius: want 400, got %g", r3.Norm(last))
	}
}

func TestHohmannPointCountIndependence(t *testing.T) {
	a, ok := HohmannTransfer(100, 400, 100*1000, r3.Vec{}, 32)
	if !ok {
		t.Fatal("expected transfer")
	}
	b, ok := HohmannTransfer(100, 400, 100*1000, r3.Vec{}, 64)
	if !ok {
		t.Fatal("expected transfer")
	}
	if a.DeltaV1 != b.DeltaV1 || a.DeltaV2 != b.DeltaV2 || a.TransferTime != b.TransferTime {
		t.Error("sampling density changed the physics quantities")
	}
	if len(b.Points) != 2*len(a.Points) {
		t.Errorf("doubling numPoints: want %d points, got %d", 2*len(a.Points), len(b.Points))
	}
}

func TestHohmannCenterOffset(t *testing.T) {
	center := r3.Vec{X: 50, Y: -20, Z: 5}
	tr, ok := HohmannTransfer(100, 400, 100*1000, center, 16)
	if !ok {
		t.Fatal("expected transfer")
	}
	if !near(r3.Norm(r3.Sub(tr.Points[0], center)), 100, 1e-6) {
		t.Error("polyline not centered on the given attractor position")
	}
}

func TestHohmannInvalidInputs(t *testing.T) {
	cases := []struct {
		name       string
		r1, r2, mu float64
	}{
		{"zero inner radius", 0, 400, 1000},
		{"zero outer radius", 100, 0, 1000},
		{"zero mu", 100, 400, 0},
	}
	for _, tc := range cases {
		if _, ok := HohmannTransfer(tc.r1, tc.r2, tc.mu, r3.Vec{}, 16); ok {
			t.Errorf("%s: expected no transfer", tc.name)
		}
	}
}

func TestGravityAssist(t *testing.T) {
	a, ok := GravityAssist(10, 50, 1000, 100)
	if !ok {
		t.Fatal("expected assist")
	}
	// e = 1 + rp*vInf^2/mu = 1 + 50*100/100000 = 1.05
	if !near(a.Eccentricity, 1.05, 1e-12) {
		t.Errorf("eccentricity: want 1.05, got %g", a.Eccentricity)
	}
	wantDefl := 2 * math.Asin(1/1.05)
	if !near(a.Deflection, wantDefl, 1e-12) {
		t.Errorf("deflection: want %g, got %g", wantDefl, a.Deflection)
	}
	if a.ExitSpeed != 10 {
		t.Errorf("exit speed must equal vInf, got %g", a.ExitSpeed)
	}
	wantDV := 2 * 10 * math.Sin(wantDefl/2)
	if !near(a.DeltaV, wantDV, 1e-12) {
		t.Errorf("delta-v: want %g, got %g", wantDV, a.DeltaV)
	}
}

func TestGravityAssistClamp(t *testing.T) {
	// Tiny vInf against a huge mu keeps e <= 1 numerically impossible here,
	// so force it with a negligible periapsis term: e barely above 1 still
	// works, but an exactly-1 eccentricity clamps to pi.
	a, ok := GravityAssist(1e-12, 1e-12, 1e12, 100)
	if !ok {
		t.Fatal("expected assist")
	}
	if !near(a.Deflection, math.Pi, 1e-6) {
		t.Errorf("near-unity eccentricity should clamp deflection to pi, got %g", a.Deflection)
	}
}

func TestGravityAssistInvalid(t *testing.T) {
	if _, ok := GravityAssist(0, 50, 1000, 100); ok {
		t.Error("zero excess speed: expected no assist")
	}
	if _, ok := GravityAssist(10, -1, 1000, 100); ok {
		t.Error("negative periapsis: expected no assist")
	}
}
