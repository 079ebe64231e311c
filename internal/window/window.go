package window

import (
	"math"
	"time"
)

// entry is a single timestamped value retained inside the horizon.
type entry struct {
	ts    time.Time
	value float64
}

// VolumeWindow maintains the sum of values whose timestamps fall within a
// trailing horizon, and answers arbitrary sub-window queries. The queue is
// FIFO when input arrives in non-decreasing time order; under out-of-order
// input eviction scans from the front and stops at the first in-range entry,
// so stale out-of-order entries may be retained until the front catches up.
type VolumeWindow struct {
	horizon time.Duration
	entries []entry
	now     func() time.Time
}

// New creates a VolumeWindow with the given retention horizon.
func New(horizon time.Duration) *VolumeWindow {
	return &VolumeWindow{
		horizon: horizon,
		entries: make([]entry, 0, 256),
		now:     time.Now,
	}
}

// SetClock overrides the window's notion of now. Used by tests and by
// callers replaying historical streams.
func (w *VolumeWindow) SetClock(now func() time.Time) {
	if now != nil {
		w.now = now
	}
}

// Record appends a timestamped value. Non-finite or negative values are
// coerced to 0 so the running sum can never go negative.
func (w *VolumeWindow) Record(ts time.Time, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		value = 0
	}
	w.evict()
	w.entries = append(w.entries, entry{ts: ts, value: value})
}

// Sum returns the sum of values with timestamp >= now - window. A full scan
// is acceptable here: the queue is horizon-bounded, not unbounded.
func (w *VolumeWindow) Sum(window time.Duration) float64 {
	cutoff := w.now().Add(-window)
	var sum float64
	for _, e := range w.entries {
		if !e.ts.Before(cutoff) {
			sum += e.value
		}
	}
	return sum
}

// Len returns the number of retained entries.
func (w *VolumeWindow) Len() int {
	return len(w.entries)
}

// Reset drops all retained entries.
func (w *VolumeWindow) Reset() {
	w.entries = w.entries[:0]
}

// evict drops entries older than the horizon from the front of the queue,
// stopping at the first entry still in range.
func (w *VolumeWindow) evict() {
	cutoff := w.now().Add(-w.horizon)
	i := 0
	for i < len(w.entries) && w.entries[i].ts.Before(cutoff) {
		i++
	}
	if i > 0 {
		w.entries = w.entries[i:]
	}
}
