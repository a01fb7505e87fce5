package engine

import "time"

// Clock accumulates the wall-clock time a game has been running. It knows
// nothing about turns; per-turn countdowns belong to the caller.
type Clock struct {
	start       time.Time
	running     bool
	accumulated time.Duration

	// now is the time source, time.Now if nil.
	now func() time.Time
}

// NewClock returns a stopped Clock which reads the time from now.
func NewClock(now func() time.Time) Clock {
	return Clock{now: now}
}

// SetTimeSource replaces the function the clock reads the time from.
func (clock *Clock) SetTimeSource(now func() time.Time) {
	clock.now = now
}

func (clock *Clock) time() time.Time {
	if clock.now == nil {
		return time.Now()
	}
	return clock.now()
}

// Start zeroes the accumulated time and starts counting from now.
func (clock *Clock) Start() {
	clock.accumulated = 0
	clock.start = clock.time()
	clock.running = true
}

// Pause folds the running span into the accumulated time and stops
// counting. It does nothing if the clock is not running.
func (clock *Clock) Pause() {
	if !clock.running {
		return
	}

	clock.accumulated += clock.time().Sub(clock.start)
	clock.running = false
}

// Resume continues counting from now without zeroing the accumulated time.
func (clock *Clock) Resume() {
	if clock.running {
		return
	}

	clock.start = clock.time()
	clock.running = true
}

// Running reports whether the clock is counting.
func (clock *Clock) Running() bool {
	return clock.running
}

// Elapsed returns the whole seconds counted so far.
func (clock *Clock) Elapsed() int {
	return int(clock.Duration() / time.Second)
}

// Duration returns the time counted so far.
func (clock *Clock) Duration() time.Duration {
	if !clock.running {
		return clock.accumulated
	}
	return clock.accumulated + clock.time().Sub(clock.start)
}
