// Package clockx abstracts time for components built around timers, so
// the autosave debounce can be driven deterministically in tests.
// Production code injects Real(); tests inject NewFake() and call
// Advance to fire timers without sleeping.
package clockx

import "time"

// Clock is the subset of the time package the service schedules against.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f in its own
	// goroutine. The returned Timer cancels the pending call via Stop.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a scheduled callback. Stop reports whether the call was
// prevented (false when it already fired or was already stopped).
type Timer struct {
	stopFunc func() bool
}

func (t *Timer) Stop() bool { return t.stopFunc() }

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
