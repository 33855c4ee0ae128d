package utils

import "time"

// Timer measures one session. It starts when created; Stop freezes the
// elapsed time and later calls to Stop are ignored.
type Timer struct {
	start   time.Time
	elapsed time.Duration
	stopped bool
}

// NewTimer returns a running timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop freezes the measurement and returns it.
func (t *Timer) Stop() time.Duration {
	if !t.stopped {
		t.elapsed = time.Since(t.start)
		t.stopped = true
	}
	return t.elapsed
}

// GetDuration returns the frozen duration, or the time elapsed so far while
// the timer is still running.
func (t *Timer) GetDuration() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	return time.Since(t.start)
}
