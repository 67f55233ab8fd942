// Package internal provides internal utilities for the harness package.
package internal

import "time"

// Clock is the time source used by polling and pacing.
// This abstraction allows for deterministic testing of time-dependent code.
type Clock interface {
	// Now returns the current time. Implementations must return
	// monotonically increasing time values.
	Now() time.Time

	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// MonotonicClock is a Clock implementation backed by the runtime timers.
type MonotonicClock struct{}

// Now returns the current system time with monotonic clock reading.
func (MonotonicClock) Now() time.Time {
	return time.Now()
}

// After waits for d on a real timer.
func (MonotonicClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// MockClock is a Clock implementation for testing that allows manual control
// of time progression. It is not safe for concurrent use.
type MockClock struct {
	current time.Time
	sleeps  []time.Duration
}

// NewMockClock creates a new MockClock initialized to the given time.
// If t is zero, it initializes to a reasonable default start time.
func NewMockClock(t time.Time) *MockClock {
	if t.IsZero() {
		// Start at a reasonable time to avoid edge cases with zero time
		t = time.Unix(1000000000, 0) // 2001-09-09
	}
	return &MockClock{current: t}
}

// Now returns the mock clock's current time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// After advances the clock by d and returns an already-fired channel,
// so waiting code never blocks in tests.
func (m *MockClock) After(d time.Duration) <-chan time.Time {
	m.Advance(d)
	m.sleeps = append(m.sleeps, d)
	ch := make(chan time.Time, 1)
	ch <- m.current
	return ch
}

// Sleeps returns every duration passed to After, in call order.
func (m *MockClock) Sleeps() []time.Duration {
	return m.sleeps
}

// Advance moves the clock forward by the given duration.
// Panics if d is negative to maintain monotonicity.
func (m *MockClock) Advance(d time.Duration) {
	if d < 0 {
		panic("MockClock.Advance: duration must be non-negative")
	}
	m.current = m.current.Add(d)
}
