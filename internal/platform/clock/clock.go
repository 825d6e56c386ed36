package clock

import (
	"sync"
	"time"
)

// Clock supplies ledger time as unix seconds. Readings are monotonically
// non-decreasing across calls; all cycle and voting windows compare a
// reading against stored timestamps, never schedule.
type Clock interface {
	Now() int64
}

type systemClock struct {
	mu   sync.Mutex
	last int64
}

// NewSystem returns a wall clock that never moves backwards, even if the
// host clock is stepped.
func NewSystem() Clock {
	return &systemClock{}
}

func (c *systemClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().Unix()
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// Fake is a manually advanced clock for tests.
type Fake struct {
	mu  sync.Mutex
	now int64
}

func NewFake(start int64) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d seconds.
func (f *Fake) Advance(d int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += d
}

// Set jumps to t; ignored if t would move the clock backwards.
func (f *Fake) Set(t int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t > f.now {
		f.now = t
	}
}
