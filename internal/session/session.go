// Package session drives one practice session: image selection, the
// per-image countdown, the completion limit and time tracking. Every method is
// meant to be called from the single UI event loop.
package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iburimskiy/sketchdeck/internal/audio"
	"github.com/iburimskiy/sketchdeck/internal/selector"
	"github.com/iburimskiy/sketchdeck/internal/settings"
	"github.com/iburimskiy/sketchdeck/internal/timer"
)

const (
	// DefaultDescription names tracked time entries.
	DefaultDescription = "Figure drawing"
	// CycleNotice is shown when every image of the session has been drawn.
	CycleNotice = "Cycle complete, starting over."
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Notifier shows short informational messages.
type Notifier interface {
	Notify(message string)
}

// Prompter asks the user whether to stop once the limit is reached. The
// answer is delivered later through Session.ResolveLimit.
type Prompter interface {
	PromptLimit(completed, limit int)
}

// Config describes a session.
type Config struct {
	Images []string
	// Categories are recorded in the session history.
	Categories   []string
	Limit        int
	Timer        time.Duration
	HistorySize  int
	TickInterval time.Duration
	Description  string
}

// Deps are the collaborators of a session. Nil members fall back to silent
// implementations.
type Deps struct {
	Player   audio.Player
	Tracker  Tracker
	Notifier Notifier
	Prompter Prompter
	Clock    Clock
	Rand     *rand.Rand
	Logger   *zap.Logger
}

// Session is a single pass from category selection back to it.
type Session struct {
	id          string
	cfg         Config
	selector    *selector.Selector
	countdown   *timer.Countdown
	ticker      *timer.Ticker
	guard       *LimitGuard
	tracker     *AsyncTracker
	player      audio.Player
	notifier    Notifier
	prompter    Prompter
	clock       Clock
	logger      *zap.Logger
	description string

	started      bool
	done         bool
	awaitingLoad bool
	shown        int
	startedAt    time.Time
	endedAt      time.Time
}

// New builds a session. Nothing is drawn until Start.
func New(cfg Config, deps Deps) *Session {
	s := &Session{
		id:          uuid.NewString(),
		cfg:         cfg,
		selector:    selector.New(cfg.Images, selector.Options{HistorySize: cfg.HistorySize, Rand: deps.Rand}),
		countdown:   timer.New(cfg.Timer),
		ticker:      timer.NewTicker(cfg.TickInterval),
		guard:       NewLimitGuard(cfg.Limit),
		player:      deps.Player,
		notifier:    deps.Notifier,
		prompter:    deps.Prompter,
		clock:       deps.Clock,
		logger:      deps.Logger,
		description: cfg.Description,
	}
	if s.player == nil {
		s.player = audio.Nop{}
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.clock == nil {
		s.clock = ClockFunc(time.Now)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.Named("session").With(zap.String("session_id", s.id))
	if s.description == "" {
		s.description = DefaultDescription
	}
	if deps.Tracker != nil {
		s.tracker = NewAsyncTracker(deps.Tracker, s.logger)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start draws the first image. It does not count toward the limit.
func (s *Session) Start() {
	if s.started || s.done {
		return
	}
	s.started = true
	s.startedAt = s.clock.Now()
	s.logger.Info("session started",
		zap.Int("images", s.selector.Len()),
		zap.Int("limit", s.cfg.Limit),
		zap.Duration("timer", s.cfg.Timer))

	if s.countdown.State() == timer.Idle {
		s.beginTracking()
	}
	s.advance(false)
}

// Next advances to a new image and counts it as completed.
func (s *Session) Next() {
	if !s.interactive() {
		return
	}
	s.advance(true)
	s.checkLimit()
}

// Skip advances to a new image without counting it.
func (s *Session) Skip() {
	if !s.interactive() {
		return
	}
	s.advance(false)
}

// Back returns to the previous image. The countdown keeps its remaining time.
func (s *Session) Back() {
	if !s.interactive() {
		return
	}
	if _, moved := s.selector.Back(); !moved {
		return
	}
	s.waitForLoad()
}

// TogglePause pauses a running countdown or resumes a paused one. It has no
// effect without a timer.
func (s *Session) TogglePause() {
	if !s.interactive() {
		return
	}
	now := s.clock.Now()
	switch s.countdown.State() {
	case timer.Running:
		s.countdown.Pause(now)
		s.ticker.Disarm()
		s.endTracking()
		s.logger.Debug("paused", zap.Duration("remaining", s.countdown.Remaining()))
	case timer.Paused:
		s.awaitingLoad = false
		s.resume(now)
	}
}

// ImageLoaded reports that image finished loading. When it is the current
// image the countdown resumes.
func (s *Session) ImageLoaded(image string) {
	if s.done || !s.awaitingLoad || image != s.selector.Current() {
		return
	}
	s.awaitingLoad = false
	if s.guard.Pending() {
		return
	}
	s.resume(s.clock.Now())
}

// Update runs the periodic tick. It is cheap to call every frame.
func (s *Session) Update() {
	if s.done || !s.started || s.guard.Pending() {
		return
	}
	now := s.clock.Now()
	if !s.ticker.Due(now) {
		return
	}
	if !s.countdown.Tick(now) {
		return
	}
	s.ticker.Disarm()
	s.logger.Debug("timer expired", zap.String("image", s.selector.Current()))
	s.advance(true)
	s.player.Play(audio.CueNext)
	s.checkLimit()
}

// ResolveLimit answers the limit prompt. Stopping ends the session.
func (s *Session) ResolveLimit(stop bool) {
	if !s.guard.Pending() {
		return
	}
	if stop {
		s.guard.Stop()
		s.logger.Info("limit reached, stopping", zap.Int("completed", s.selector.Completed()))
		s.Close()
		return
	}
	s.guard.Continue()
	s.logger.Info("limit reached, continuing", zap.Int("completed", s.selector.Completed()))
	if !s.awaitingLoad && s.countdown.State() == timer.Paused {
		s.resume(s.clock.Now())
	}
}

// Close ends the session and queues the stop of time tracking. It returns
// without waiting for the tracker and is idempotent.
func (s *Session) Close() {
	if s.done {
		return
	}
	now := s.clock.Now()
	s.done = true
	s.endedAt = now
	s.countdown.Pause(now)
	s.ticker.Disarm()
	if s.tracker != nil {
		s.tracker.Shutdown()
	}
	s.logger.Info("session closed",
		zap.Int("completed", s.selector.Completed()),
		zap.Int("shown", s.shown),
		zap.Duration("elapsed", s.endedAt.Sub(s.startedAt)))
}

// Wait blocks until the tracking calls issued before Close have finished or
// ctx is done. Close itself never waits on the network.
func (s *Session) Wait(ctx context.Context) error {
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Wait(ctx)
}

// Done reports whether the session has ended.
func (s *Session) Done() bool { return s.done }

// Record summarises the session for the history log.
func (s *Session) Record() settings.SessionRecord {
	ended := s.endedAt
	if !s.done {
		ended = s.clock.Now()
	}
	return settings.SessionRecord{
		ID:           s.id,
		StartedAt:    s.startedAt,
		EndedAt:      ended,
		Completed:    s.selector.Completed(),
		Shown:        s.shown,
		Limit:        s.cfg.Limit,
		TimerSeconds: int(s.cfg.Timer / time.Second),
		Categories:   append([]string(nil), s.cfg.Categories...),
	}
}

func (s *Session) interactive() bool {
	return s.started && !s.done && !s.guard.Pending()
}

func (s *Session) advance(completed bool) {
	result, err := s.selector.Next(completed)
	if err != nil {
		if errors.Is(err, selector.ErrEmptySession) {
			s.logger.Warn("no images in session")
			return
		}
		s.logger.Error("select image", zap.Error(err))
		return
	}
	s.shown++
	if result.CycleReset {
		s.logger.Info("cycle complete", zap.Int("images", s.selector.Len()))
		s.notifier.Notify(CycleNotice)
	}
	s.countdown.Reset(s.clock.Now())
	s.waitForLoad()
}

// waitForLoad freezes the countdown until ImageLoaded. Tracking keeps running.
func (s *Session) waitForLoad() {
	s.countdown.Pause(s.clock.Now())
	s.ticker.Disarm()
	s.awaitingLoad = true
}

func (s *Session) resume(now time.Time) {
	if !s.countdown.Resume(now) {
		return
	}
	s.ticker.Arm(now)
	s.beginTracking()
}

func (s *Session) checkLimit() {
	if !s.guard.Check(s.selector.Completed()) {
		return
	}
	now := s.clock.Now()
	s.countdown.Pause(now)
	s.ticker.Disarm()
	s.player.Play(audio.CueLimitReached)
	s.logger.Info("limit reached", zap.Int("limit", s.guard.Limit()))
	if s.prompter == nil {
		s.ResolveLimit(false)
		return
	}
	s.prompter.PromptLimit(s.selector.Completed(), s.guard.Limit())
}

func (s *Session) beginTracking() {
	if s.tracker != nil {
		s.tracker.Begin(s.description)
	}
}

func (s *Session) endTracking() {
	if s.tracker != nil {
		s.tracker.End()
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}
