package sim

import "sync"

// Latest is a last-value-wins frame mailbox. The producer goroutine publishes
// every frame; the render loop takes at most one frame per tick. Frames
// arriving faster than render cadence are silently superseded, never queued
// or replayed.
type Latest struct {
	mu    sync.Mutex
	frame Frame
	fresh bool
}

// Publish stores the frame, replacing any unconsumed one.
func (l *Latest) Publish(f Frame) {
	l.mu.Lock()
	l.frame = f
	l.fresh = true
	l.mu.Unlock()
}

// Take returns the most recent frame if one arrived since the last Take.
func (l *Latest) Take() (Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.fresh {
		return Frame{}, false
	}
	l.fresh = false
	return l.frame, true
}

// Peek returns the stored frame without consuming it, for late joiners that
// need the current state regardless of freshness.
func (l *Latest) Peek() (Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.frame.Bodies == nil && l.frame.Tick == 0 {
		return Frame{}, false
	}
	return l.frame, true
}
