package timer

import "time"

// DefaultInterval is the tick resolution of the slideshow countdown.
const DefaultInterval = 100 * time.Millisecond

// Ticker gates work to a fixed interval. It is polled from a frame loop
// rather than driving its own goroutine.
type Ticker struct {
	interval time.Duration
	next     time.Time
	armed    bool
}

// NewTicker returns a disarmed ticker. Non-positive intervals use
// DefaultInterval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{interval: interval}
}

// Interval returns the tick interval.
func (t *Ticker) Interval() time.Duration { return t.interval }

// Armed reports whether the ticker is armed.
func (t *Ticker) Armed() bool { return t.armed }

// Arm (re)starts the ticker so the first tick is due one interval after now.
func (t *Ticker) Arm(now time.Time) {
	t.next = now.Add(t.interval)
	t.armed = true
}

// Disarm stops the ticker.
func (t *Ticker) Disarm() {
	t.armed = false
}

// Due reports whether a tick is due at now and schedules the following one.
// Missed ticks are collapsed into one.
func (t *Ticker) Due(now time.Time) bool {
	if !t.armed || now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
