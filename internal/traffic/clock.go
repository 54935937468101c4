package traffic

import "sync/atomic"

// Clock is the simulation's discrete hour counter.
//
// Every Advance call ticks the clock by exactly one hour, regardless of how
// many deposits arrive in that call. All deposit and synthetic records are
// stamped with the hour returned by Tick, so record ordering follows clock
// ordering with no wall-clock involvement.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// However, the Simulation's single-writer design means only one goroutine
// typically calls Tick.
type Clock struct {
	hour atomic.Int64
}

// NewClock creates a new clock starting at hour 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific hour.
// Used by tests that need to observe behavior deep into a run.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.hour.Store(start)
	return c
}

// Tick advances the clock by one hour and returns the new hour.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Tick() int64 {
	return c.hour.Add(1)
}

// Hour returns the current hour without advancing the clock.
func (c *Clock) Hour() int64 {
	return c.hour.Load()
}
