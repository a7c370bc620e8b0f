package clockx_test

import (
	"testing"
	"time"

	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockAdvanceFiresDueTimers(t *testing.T) {
	c := clockx.NewFake(epoch)

	var fired []string
	c.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	c.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })

	c.Advance(500 * time.Millisecond)
	require.Empty(t, fired)

	c.Advance(600 * time.Millisecond)
	require.Equal(t, []string{"a"}, fired)

	c.Advance(time.Second)
	require.Equal(t, []string{"a", "b"}, fired)
	require.Zero(t, c.PendingTimers())
}

func TestFakeClockStop(t *testing.T) {
	c := clockx.NewFake(epoch)

	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop(), "second stop reports already stopped")

	c.Advance(2 * time.Second)
	require.False(t, fired)
}

func TestFakeClockCallbackSchedulesWithinWindow(t *testing.T) {
	c := clockx.NewFake(epoch)

	var fired []string
	c.AfterFunc(time.Second, func() {
		fired = append(fired, "outer")
		c.AfterFunc(time.Second, func() { fired = append(fired, "inner") })
	})

	// One advance covers both deadlines; the chained timer fires too.
	c.Advance(3 * time.Second)
	require.Equal(t, []string{"outer", "inner"}, fired)
}

func TestFakeClockZeroDelayFiresImmediately(t *testing.T) {
	c := clockx.NewFake(epoch)

	fired := false
	c.AfterFunc(0, func() { fired = true })
	require.True(t, fired)
}

func TestFakeClockNowAdvances(t *testing.T) {
	c := clockx.NewFake(epoch)
	require.Equal(t, epoch, c.Now())

	c.Advance(90 * time.Second)
	require.Equal(t, epoch.Add(90*time.Second), c.Now())
}
