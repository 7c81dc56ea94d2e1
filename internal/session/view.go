package session

import (
	"strconv"
	"time"

	"github.com/iburimskiy/sketchdeck/internal/timer"
)

// View is a read-only snapshot of the session for rendering.
type View struct {
	Image          string
	Empty          bool
	TimerEnabled   bool
	State          timer.State
	Remaining      time.Duration
	DisplaySeconds int
	Fraction       float64
	AwaitingLoad   bool
	Completed      int
	Limit          int
	CanGoBack      bool
	LimitPending   bool
	Tracking       bool
	Done           bool
}

// Counter renders the position label, e.g. "4 / 10" or "4".
func (v View) Counter() string {
	position := strconv.Itoa(v.Completed + 1)
	if v.Limit > 0 {
		return position + " / " + strconv.Itoa(v.Limit)
	}
	return position
}

// Paused reports whether the pause control should offer to resume.
func (v View) Paused() bool {
	return v.TimerEnabled && v.State != timer.Running
}

// CanAdvance reports whether Next and Skip are usable.
func (v View) CanAdvance() bool {
	return !v.Empty && !v.Done && !v.LimitPending
}

// Snapshot captures the current state.
func (s *Session) Snapshot() View {
	v := View{
		Image:          s.selector.Current(),
		Empty:          s.selector.Empty(),
		TimerEnabled:   s.countdown.State() != timer.Idle,
		State:          s.countdown.State(),
		Remaining:      s.countdown.Remaining(),
		DisplaySeconds: s.countdown.DisplaySeconds(),
		Fraction:       s.countdown.Fraction(),
		AwaitingLoad:   s.awaitingLoad,
		Completed:      s.selector.Completed(),
		Limit:          s.guard.Limit(),
		CanGoBack:      s.selector.CanGoBack() && !s.done && !s.guard.Pending(),
		LimitPending:   s.guard.Pending(),
		Done:           s.done,
	}
	if s.tracker != nil {
		v.Tracking = s.tracker.Active()
	}
	return v
}
