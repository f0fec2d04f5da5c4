package effects

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

func newTestPool(capacity int) *ParticlePool {
	return NewParticlePool(capacity, rand.New(rand.NewSource(1)))
}

func TestSpawnClampsPerCall(t *testing.T) {
	p := newTestPool(64)
	n := p.Spawn(r3.Vec{}, 100, sim.Color{R: 200, A: 255})
	if n != maxParticlesPerSpawn {
		t.Errorf("want %d spawned, got %d", maxParticlesPerSpawn, n)
	}
	if p.ActiveCount() != maxParticlesPerSpawn {
		t.Errorf("active count %d, want %d", p.ActiveCount(), maxParticlesPerSpawn)
	}
}

func TestSpawnNeverExceedsCapacity(t *testing.T) {
	p := newTestPool(10)
	p.Spawn(r3.Vec{}, 8, sim.Color{A: 255})
	n := p.Spawn(r3.Vec{}, 8, sim.Color{A: 255})
	if n != 2 {
		t.Errorf("only 2 free slots remained, spawned %d", n)
	}
	if p.ActiveCount() != 10 {
		t.Errorf("active count %d exceeds capacity 10", p.ActiveCount())
	}

	// Further spawns are no-ops, never errors.
	if n := p.Spawn(r3.Vec{}, 5, sim.Color{A: 255}); n != 0 {
		t.Errorf("full pool spawned %d particles", n)
	}
}

func TestParticlesExpire(t *testing.T) {
	p := newTestPool(32)
	p.Spawn(r3.Vec{}, 16, sim.Color{A: 255})

	// Advance past the fixed lifetime with no further spawns.
	for i := 0; i < 200; i++ {
		p.Tick(1.0 / 60.0)
	}
	if p.ActiveCount() != 0 {
		t.Errorf("all particles should have expired, %d still active", p.ActiveCount())
	}

	// Expired slots are immediately reusable.
	if n := p.Spawn(r3.Vec{}, 4, sim.Color{A: 255}); n != 4 {
		t.Errorf("expired slots not reusable: spawned %d of 4", n)
	}
}

func TestParticleDirectionsUnit(t *testing.T) {
	p := newTestPool(64)
	for i := 0; i < 1000; i++ {
		d := p.isotropicDir()
		if math.Abs(r3.Norm(d)-1) > 1e-9 {
			t.Fatalf("direction not unit length: %v", d)
		}
	}
}

func TestFlashLifecycle(t *testing.T) {
	p := NewFlashPool(4)
	for i := 0; i < 4; i++ {
		if !p.Spawn(r3.Vec{X: float64(i)}, 5) {
			t.Fatalf("spawn %d rejected with free slots", i)
		}
	}
	if p.Spawn(r3.Vec{}, 5) {
		t.Error("full flash pool should drop the spawn")
	}

	var grew, faded bool
	p.Tick(flashDuration / 2)
	p.Render(func(_ r3.Vec, radius float64, color sim.Color) {
		if radius > 5 {
			grew = true
		}
		if color.A < 255 {
			faded = true
		}
	})
	if !grew || !faded {
		t.Errorf("mid-life flash should grow and fade (grew=%v faded=%v)", grew, faded)
	}

	p.Tick(flashDuration)
	if p.ActiveCount() != 0 {
		t.Errorf("flashes should expire, %d active", p.ActiveCount())
	}
}

func TestTrailBufferWrap(t *testing.T) {
	pool := NewTrailPool(2, 8)
	buf, ok := pool.Claim()
	if !ok {
		t.Fatal("claim failed on fresh pool")
	}

	for i := 0; i < 5; i++ {
		buf.Push(TrailVertex{X: float32(i)})
	}
	if buf.Range() != 5 {
		t.Errorf("partial fill: range %d, want 5", buf.Range())
	}

	for i := 5; i < 12; i++ {
		buf.Push(TrailVertex{X: float32(i)})
	}
	if buf.Range() != 8 {
		t.Errorf("overfull: range %d, want capacity 8", buf.Range())
	}
	// Writing past capacity wraps to the start of the buffer region.
	if buf.At(0).X != 8 {
		t.Errorf("slot 0 should hold the 9th sample, got %g", buf.At(0).X)
	}
}

func TestTrailPoolBalance(t *testing.T) {
	pool := NewTrailPool(2, 16)
	a, _ := pool.Claim()
	b, _ := pool.Claim()
	if pool.Outstanding() != 2 {
		t.Errorf("outstanding %d, want 2", pool.Outstanding())
	}
	if _, ok := pool.Claim(); ok {
		t.Error("exhausted pool should refuse a claim")
	}
	pool.Release(a)
	pool.Release(b)
	if pool.Outstanding() != 0 {
		t.Errorf("outstanding %d after releases, want 0", pool.Outstanding())
	}
	if _, ok := pool.Claim(); !ok {
		t.Error("released buffer should be claimable again")
	}
}
