// Package timing provides performance measurement utilities for Compadre.
package timing

import (
	"fmt"
	"time"
)

type phase struct {
	label string
	at    time.Duration
}

// Timer tracks execution time of operations
type Timer struct {
	start  time.Time
	phases []phase
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{
		start:  time.Now(),
		phases: make([]phase, 0, 4),
	}
}

// Mark records a checkpoint with a label
func (t *Timer) Mark(label string) time.Duration {
	elapsed := time.Since(t.start)
	t.phases = append(t.phases, phase{label: label, at: elapsed})
	return elapsed
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration recorded for a specific mark.
// If the same label was marked twice, the last one wins.
func (t *Timer) Get(label string) (time.Duration, bool) {
	for i := len(t.phases) - 1; i >= 0; i-- {
		if t.phases[i].label == label {
			return t.phases[i].at, true
		}
	}
	return 0, false
}

// Summary returns a formatted summary of all timings
func (t *Timer) Summary() string {
	total := t.Elapsed()
	summary := fmt.Sprintf("Total: %.3fms", float64(total.Microseconds())/1000.0)

	if len(t.phases) > 0 {
		summary += " ("
		for i, p := range t.phases {
			if i > 0 {
				summary += ", "
			}
			summary += fmt.Sprintf("%s: %.3fms", p.label, float64(p.at.Microseconds())/1000.0)
		}
		summary += ")"
	}

	return summary
}

// Reset resets the timer
func (t *Timer) Reset() {
	t.start = time.Now()
	t.phases = t.phases[:0]
}
