package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/sim"
)

// BatchSlot is one per-instance transform of the batched representation.
type BatchSlot struct {
	Position r3.Vec
	Scale    float64
	Color    sim.Color
}

// Batch is the single fixed-capacity instanced representation for small
// bodies. Its active count is reset to exactly the number of qualifying
// bodies each frame; bodies beyond capacity are dropped from the batch and
// not rendered, a documented degradation rather than an error.
type Batch struct {
	slots []BatchSlot
	ids   []uint32 // reverse index: slot -> body identifier
	count int
}

func newBatch(capacity int) *Batch {
	if capacity < 1 {
		capacity = 1
	}
	return &Batch{
		slots: make([]BatchSlot, capacity),
		ids:   make([]uint32, capacity),
	}
}

// reset clears the active range for the next frame.
func (b *Batch) reset() {
	b.count = 0
}

// add claims the next slot for a body. Returns false when full.
func (b *Batch) add(body *sim.Body) bool {
	if b.count >= len(b.slots) {
		return false
	}
	b.slots[b.count] = BatchSlot{
		Position: body.Position,
		Scale:    body.Radius,
		Color:    body.Color,
	}
	b.ids[b.count] = body.ID
	b.count++
	return true
}

// Count returns the number of active slots this frame.
func (b *Batch) Count() int { return b.count }

// Capacity returns the fixed slot capacity.
func (b *Batch) Capacity() int { return len(b.slots) }

// Slot returns the i-th active slot.
func (b *Batch) Slot(i int) BatchSlot { return b.slots[i] }

// IDAt returns the body identifier occupying slot i.
func (b *Batch) IDAt(i int) uint32 { return b.ids[i] }
