package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sketchdeck/internal/timer"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestNewStates(t *testing.T) {
	idle := timer.New(0)
	assert.Equal(t, timer.Idle, idle.State())
	assert.False(t, idle.Resume(epoch))
	assert.Zero(t, idle.DisplaySeconds())

	c := timer.New(30 * time.Second)
	assert.Equal(t, timer.Paused, c.State())
	assert.Equal(t, 30*time.Second, c.Remaining())
	assert.Equal(t, 30, c.DisplaySeconds())
	assert.Equal(t, "paused", c.State().String())
}

func TestPauseFreezesRemaining(t *testing.T) {
	c := timer.New(10 * time.Second)
	require.True(t, c.Resume(at(0)))
	assert.False(t, c.Resume(at(0)))

	c.Tick(at(100))
	c.Tick(at(1250))
	require.True(t, c.Pause(at(1500)))
	assert.Equal(t, 8500*time.Millisecond, c.Remaining())
	assert.Equal(t, 9, c.DisplaySeconds())

	assert.False(t, c.Tick(at(5000)))
	assert.Equal(t, 8500*time.Millisecond, c.Remaining(), "paused time does not count")

	require.True(t, c.Resume(at(5000)))
	c.Tick(at(6000))
	assert.Equal(t, 7500*time.Millisecond, c.Remaining())
}

func TestTickExpiresExactlyOnce(t *testing.T) {
	c := timer.New(time.Second)
	require.True(t, c.Resume(at(0)))

	expired := 0
	for ms := 100; ms <= 3000; ms += 100 {
		if c.Tick(at(ms)) {
			expired++
		}
	}

	assert.Equal(t, 1, expired)
	assert.Equal(t, timer.Paused, c.State())
	assert.Equal(t, time.Second, c.Remaining())
}

func TestTickClampsAtZero(t *testing.T) {
	c := timer.New(time.Second)
	require.True(t, c.Resume(at(0)))
	require.True(t, c.Pause(at(4000)))
	assert.Zero(t, c.Remaining())
	assert.Zero(t, c.DisplaySeconds())
}

func TestRemainingIsDurationMinusRunningTime(t *testing.T) {
	c := timer.New(5 * time.Second)
	running := time.Duration(0)
	now := at(0)

	for i := 0; i < 5; i++ {
		require.True(t, c.Resume(now))
		now = now.Add(300 * time.Millisecond)
		running += 300 * time.Millisecond
		c.Tick(now)
		require.True(t, c.Pause(now))
		now = now.Add(2 * time.Second)
	}

	assert.Equal(t, 5*time.Second-running, c.Remaining())
}

func TestResetKeepsState(t *testing.T) {
	c := timer.New(4 * time.Second)
	require.True(t, c.Resume(at(0)))
	c.Tick(at(3000))

	c.Reset(at(3000))
	assert.Equal(t, timer.Running, c.State())
	assert.Equal(t, 4*time.Second, c.Remaining())

	c.Tick(at(3500))
	assert.Equal(t, 3500*time.Millisecond, c.Remaining())
}

func TestSetDuration(t *testing.T) {
	c := timer.New(4 * time.Second)
	require.True(t, c.Resume(at(0)))

	c.SetDuration(90 * time.Second)
	assert.Equal(t, timer.Paused, c.State())
	assert.Equal(t, 90, c.DisplaySeconds())
	assert.InDelta(t, 1.0, c.Fraction(), 1e-9)

	c.SetDuration(0)
	assert.Equal(t, timer.Idle, c.State())
	assert.Zero(t, c.Fraction())
}

func TestDisplaySecondsRoundsUp(t *testing.T) {
	c := timer.New(2 * time.Second)
	require.True(t, c.Resume(at(0)))
	c.Tick(at(1))
	assert.Equal(t, 2, c.DisplaySeconds())
	c.Tick(at(1000))
	assert.Equal(t, 1, c.DisplaySeconds())
	c.Tick(at(1999))
	assert.Equal(t, 1, c.DisplaySeconds())
}
