package engine

import "time"

// DropInterval is the fixed time between gravity ticks.
const DropInterval = 1000 * time.Millisecond

// Scheduler accumulates elapsed frame time and signals when a gravity tick
// is due.
type Scheduler struct {
	interval    time.Duration
	accumulated time.Duration
}

// NewScheduler creates a scheduler firing every interval.
// A non-positive interval falls back to DropInterval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DropInterval
	}
	return &Scheduler{interval: interval}
}

// Advance adds elapsed time and reports whether a tick fires. A tick fires
// only once the accumulated time is strictly greater than the interval, and
// the accumulator then resets to zero rather than carrying the remainder:
// a long stall produces one drop, never a burst of catch-up drops.
func (s *Scheduler) Advance(elapsed time.Duration) bool {
	if elapsed > 0 {
		s.accumulated += elapsed
	}
	if s.accumulated > s.interval {
		s.accumulated = 0
		return true
	}
	return false
}

// Accumulated returns the time gathered since the last tick.
func (s *Scheduler) Accumulated() time.Duration {
	return s.accumulated
}

// Interval returns the configured tick interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Reset clears the accumulator.
func (s *Scheduler) Reset() {
	s.accumulated = 0
}
