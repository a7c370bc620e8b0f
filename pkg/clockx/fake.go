package clockx

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a deterministic Clock for tests. Time stands still until
// Advance moves it; due callbacks run synchronously inside Advance, on
// the caller's goroutine, in deadline order.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

// NewFake returns a FakeClock pinned at start.
func NewFake(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	c.mu.Lock()
	ft := &fakeTimer{deadline: c.now.Add(d), seq: c.seq, fn: f}
	c.seq++
	c.timers = append(c.timers, ft)
	c.mu.Unlock()

	// Zero or negative delays fire immediately, like time.AfterFunc
	// would (just synchronously here).
	if d <= 0 {
		c.fireDue()
	}

	return &Timer{stopFunc: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if ft.fired || ft.stopped {
			return false
		}
		ft.stopped = true
		return true
	}}
}

// Advance moves the clock forward and fires every timer whose deadline
// has been reached, in order. Callbacks may schedule further timers;
// those fire too if their deadline falls within the advanced window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()

	c.fireDue()
}

// PendingTimers reports how many timers are scheduled and not yet fired
// or stopped. Tests assert on this to pin down "exactly one queued
// debounce cycle" invariants.
func (c *FakeClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, ft := range c.timers {
		if !ft.fired && !ft.stopped {
			n++
		}
	}
	return n
}

func (c *FakeClock) fireDue() {
	for {
		c.mu.Lock()

		var due []*fakeTimer
		for _, ft := range c.timers {
			if !ft.fired && !ft.stopped && !ft.deadline.After(c.now) {
				due = append(due, ft)
			}
		}
		if len(due) == 0 {
			c.mu.Unlock()
			return
		}

		sort.Slice(due, func(i, j int) bool {
			if due[i].deadline.Equal(due[j].deadline) {
				return due[i].seq < due[j].seq
			}
			return due[i].deadline.Before(due[j].deadline)
		})
		for _, ft := range due {
			ft.fired = true
		}
		c.mu.Unlock()

		// Run callbacks outside the lock; they may call back into the
		// clock. Loop again in case they scheduled already-due timers.
		for _, ft := range due {
			ft.fn()
		}
	}
}
