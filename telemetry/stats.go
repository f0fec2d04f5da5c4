package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/saagar210/OrbitForge/scene"
)

// WindowStats summarizes reconciliation activity over a tick window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	WallSeconds     float64 `csv:"wall_sec"`

	// Totals over the window
	Created         int `csv:"created"`
	Disposed        int `csv:"disposed"`
	PropertyUpdates int `csv:"property_updates"`
	BatchDropped    int `csv:"batch_dropped"`
	Skipped         int `csv:"skipped"`

	// Distributions sampled once per reconcile
	TrackedMean   float64 `csv:"tracked_mean"`
	TrackedStdDev float64 `csv:"tracked_stddev"`
	BatchedMean   float64 `csv:"batched_mean"`
	BatchedMax    int     `csv:"batched_max"`

	// Frames where no fresh frame was available
	StaleFrames int `csv:"stale_frames"`
}

// ReconcileWindow accumulates per-sync reconciler stats into window summaries.
type ReconcileWindow struct {
	startTick uint64
	lastTick  uint64

	created  int
	disposed int
	updates  int
	dropped  int
	skipped  int

	tracked []float64
	batched []float64
	stale   int
}

// NewReconcileWindow creates an empty accumulator.
func NewReconcileWindow() *ReconcileWindow {
	return &ReconcileWindow{}
}

// RecordSync adds one reconcile pass to the window.
func (w *ReconcileWindow) RecordSync(tick uint64, s scene.Stats, trackedCount int) {
	if len(w.tracked) == 0 {
		w.startTick = tick
	}
	w.lastTick = tick

	w.created += s.Created
	w.disposed += s.Disposed
	w.updates += s.PropertyUpdates
	w.dropped += s.BatchDropped
	w.skipped += s.Skipped

	w.tracked = append(w.tracked, float64(trackedCount))
	w.batched = append(w.batched, float64(s.Batched))
}

// RecordStale notes a loop frame that found no fresh frame in the mailbox.
func (w *ReconcileWindow) RecordStale() {
	w.stale++
}

// Samples returns how many reconcile passes the window holds.
func (w *ReconcileWindow) Samples() int { return len(w.tracked) }

// Flush summarizes and resets the window. ok is false when the window is
// empty.
func (w *ReconcileWindow) Flush(wallSeconds float64) (WindowStats, bool) {
	if len(w.tracked) == 0 {
		w.stale = 0
		return WindowStats{}, false
	}

	ws := WindowStats{
		WindowStartTick: w.startTick,
		WindowEndTick:   w.lastTick,
		WallSeconds:     wallSeconds,
		Created:         w.created,
		Disposed:        w.disposed,
		PropertyUpdates: w.updates,
		BatchDropped:    w.dropped,
		Skipped:         w.skipped,
		TrackedMean:     stat.Mean(w.tracked, nil),
		TrackedStdDev:   stat.StdDev(w.tracked, nil),
		BatchedMean:     stat.Mean(w.batched, nil),
		StaleFrames:     w.stale,
	}
	for _, b := range w.batched {
		if int(b) > ws.BatchedMax {
			ws.BatchedMax = int(b)
		}
	}

	*w = ReconcileWindow{}
	return ws, true
}

// LogValue implements slog.LogValuer.
func (ws WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_end", ws.WindowEndTick),
		slog.Int("created", ws.Created),
		slog.Int("disposed", ws.Disposed),
		slog.Int("updates", ws.PropertyUpdates),
		slog.Int("batch_dropped", ws.BatchDropped),
		slog.Int("skipped", ws.Skipped),
		slog.Float64("tracked_mean", ws.TrackedMean),
		slog.Float64("batched_mean", ws.BatchedMean),
		slog.Int("stale_frames", ws.StaleFrames),
	)
}
