package telemetry

import (
	"math"
	"testing"

	"github.com/saagar210/OrbitForge/scene"
)

func TestReconcileWindow_Accumulates(t *testing.T) {
	w := NewReconcileWindow()

	w.RecordSync(10, scene.Stats{Created: 3, PropertyUpdates: 2, Batched: 5}, 3)
	w.RecordSync(11, scene.Stats{Disposed: 1, PropertyUpdates: 4, Batched: 7, Skipped: 1}, 2)
	w.RecordStale()

	if got := w.Samples(); got != 2 {
		t.Fatalf("Samples() = %d, want 2", got)
	}

	ws, ok := w.Flush(1.5)
	if !ok {
		t.Fatal("Flush() returned ok=false for populated window")
	}

	if ws.WindowStartTick != 10 || ws.WindowEndTick != 11 {
		t.Errorf("window ticks = [%d, %d], want [10, 11]", ws.WindowStartTick, ws.WindowEndTick)
	}
	if ws.Created != 3 || ws.Disposed != 1 || ws.PropertyUpdates != 6 || ws.Skipped != 1 {
		t.Errorf("totals = %+v, want created 3, disposed 1, updates 6, skipped 1", ws)
	}
	if math.Abs(ws.TrackedMean-2.5) > 1e-12 {
		t.Errorf("TrackedMean = %v, want 2.5", ws.TrackedMean)
	}
	if math.Abs(ws.BatchedMean-6) > 1e-12 {
		t.Errorf("BatchedMean = %v, want 6", ws.BatchedMean)
	}
	if ws.BatchedMax != 7 {
		t.Errorf("BatchedMax = %d, want 7", ws.BatchedMax)
	}
	if ws.StaleFrames != 1 {
		t.Errorf("StaleFrames = %d, want 1", ws.StaleFrames)
	}
}

func TestReconcileWindow_FlushResets(t *testing.T) {
	w := NewReconcileWindow()
	w.RecordSync(5, scene.Stats{Created: 1}, 1)

	if _, ok := w.Flush(1); !ok {
		t.Fatal("first Flush() should report data")
	}
	if _, ok := w.Flush(1); ok {
		t.Error("second Flush() should report an empty window")
	}
	if w.Samples() != 0 {
		t.Errorf("Samples() after flush = %d, want 0", w.Samples())
	}
}

func TestReconcileWindow_EmptyFlush(t *testing.T) {
	w := NewReconcileWindow()
	w.RecordStale()

	if _, ok := w.Flush(1); ok {
		t.Error("Flush() of stale-only window should report no data")
	}
}
