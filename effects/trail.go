package effects

import "github.com/saagar210/OrbitForge/sim"

// TrailVertex is one colored vertex of a trajectory trail.
type TrailVertex struct {
	X, Y, Z float32
	Color   sim.Color
}

// TrailBuffer is a fixed-capacity circular write target for one body's
// trajectory history. Writing more vertices than fit overwrites from the
// start of the buffer region; the draw range is clamped to
// min(written, capacity).
type TrailBuffer struct {
	verts   []TrailVertex
	written int
}

// Reset discards all written vertices.
func (t *TrailBuffer) Reset() {
	t.written = 0
}

// Push writes one vertex, wrapping past capacity.
func (t *TrailBuffer) Push(v TrailVertex) {
	t.verts[t.written%len(t.verts)] = v
	t.written++
}

// Range returns the number of drawable vertices.
func (t *TrailBuffer) Range() int {
	if t.written < len(t.verts) {
		return t.written
	}
	return len(t.verts)
}

// At returns the i-th drawable vertex.
func (t *TrailBuffer) At(i int) TrailVertex {
	return t.verts[i]
}

// Capacity returns the fixed vertex capacity.
func (t *TrailBuffer) Capacity() int {
	return len(t.verts)
}

// TrailPool hands out per-body trail buffers. Buffers are claimed when a
// representation is created and must be released when it is disposed;
// Outstanding tracks the balance so leak checks are cheap.
type TrailPool struct {
	free     []*TrailBuffer
	capacity int // vertices per buffer
	claimed  int
}

// NewTrailPool creates a pool of count buffers, each sized to vertsPerTrail
// (the external trajectory history cap).
func NewTrailPool(count, vertsPerTrail int) *TrailPool {
	if count < 1 {
		count = 1
	}
	if vertsPerTrail < 1 {
		vertsPerTrail = sim.MaxTrailPoints
	}
	p := &TrailPool{capacity: vertsPerTrail}
	for i := 0; i < count; i++ {
		p.free = append(p.free, &TrailBuffer{verts: make([]TrailVertex, vertsPerTrail)})
	}
	return p
}

// Claim takes a buffer from the pool. ok=false when exhausted; the caller
// renders the body without a trail in that case.
func (p *TrailPool) Claim() (*TrailBuffer, bool) {
	if len(p.free) == 0 {
		return nil, false
	}
	buf := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	buf.Reset()
	p.claimed++
	return buf, true
}

// Release returns a buffer to the pool.
func (p *TrailPool) Release(buf *TrailBuffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	p.free = append(p.free, buf)
	p.claimed--
}

// Outstanding returns the number of claimed, unreleased buffers.
func (p *TrailPool) Outstanding() int {
	return p.claimed
}
