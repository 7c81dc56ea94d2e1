// Package timer implements the per-image countdown and the fixed-interval
// gate that drives it from the render loop.
package timer

import "time"

// State is the countdown state.
type State int

const (
	// Idle means no duration is configured.
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Countdown tracks the remaining time for the image on display. Time is
// always passed in by the caller.
type Countdown struct {
	duration  time.Duration
	remaining time.Duration
	state     State
	lastTick  time.Time
}

// New returns a countdown for duration. A non-positive duration yields an idle
// countdown; otherwise it starts paused with the full duration remaining.
func New(duration time.Duration) *Countdown {
	c := &Countdown{}
	c.SetDuration(duration)
	return c
}

// State returns the current state.
func (c *Countdown) State() State { return c.state }

// Duration returns the configured duration.
func (c *Countdown) Duration() time.Duration { return c.duration }

// Remaining returns the time left, never negative.
func (c *Countdown) Remaining() time.Duration { return c.remaining }

// Running reports whether the countdown is running.
func (c *Countdown) Running() bool { return c.state == Running }

// Resume starts the countdown from the frozen remaining time. It reports
// whether the state changed.
func (c *Countdown) Resume(now time.Time) bool {
	if c.state != Paused {
		return false
	}
	c.state = Running
	c.lastTick = now
	return true
}

// Pause freezes the remaining time. It reports whether the state changed.
func (c *Countdown) Pause(now time.Time) bool {
	if c.state != Running {
		return false
	}
	c.consume(now)
	c.state = Paused
	return true
}

// Tick subtracts the time elapsed since the previous tick. It returns true
// exactly once when the countdown reaches zero; the countdown is then reset to
// its full duration and paused.
func (c *Countdown) Tick(now time.Time) bool {
	if c.state != Running {
		return false
	}
	c.consume(now)
	if c.remaining > 0 {
		return false
	}
	c.remaining = c.duration
	c.state = Paused
	return true
}

// Reset restores the full duration without changing the state.
func (c *Countdown) Reset(now time.Time) {
	c.remaining = c.duration
	c.lastTick = now
}

// SetDuration replaces the duration and leaves the countdown paused with the
// full duration remaining, or idle when duration is not positive.
func (c *Countdown) SetDuration(duration time.Duration) {
	if duration <= 0 {
		c.duration = 0
		c.remaining = 0
		c.state = Idle
		return
	}
	c.duration = duration
	c.remaining = duration
	c.state = Paused
}

// DisplaySeconds returns the remaining time in whole seconds, rounded up.
func (c *Countdown) DisplaySeconds() int {
	if c.remaining <= 0 {
		return 0
	}
	return int((c.remaining + time.Second - 1) / time.Second)
}

// Fraction returns remaining/duration in [0, 1].
func (c *Countdown) Fraction() float64 {
	if c.duration <= 0 {
		return 0
	}
	return float64(c.remaining) / float64(c.duration)
}

func (c *Countdown) consume(now time.Time) {
	elapsed := now.Sub(c.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	c.remaining -= elapsed
	if c.remaining < 0 {
		c.remaining = 0
	}
	c.lastTick = now
}
