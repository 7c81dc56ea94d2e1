package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	trackerQueueSize   = 16
	trackerCallTimeout = 15 * time.Second
)

// Tracker records practice time in an external service. Calls may block on
// the network.
type Tracker interface {
	Start(ctx context.Context, description string) (string, error)
	Stop(ctx context.Context, handle string) error
}

// AsyncTracker runs Tracker calls on a background worker in submission order.
// Begin and End never block the caller; failures are logged and dropped.
type AsyncTracker struct {
	tracker Tracker
	logger  *zap.Logger
	ops     chan func(ctx context.Context)
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.Mutex
	closed bool
	active bool

	// handle is only touched by the worker.
	handle string
}

// NewAsyncTracker starts the worker goroutine.
func NewAsyncTracker(tracker Tracker, logger *zap.Logger) *AsyncTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &AsyncTracker{
		tracker: tracker,
		logger:  logger.Named("tracker"),
		ops:     make(chan func(ctx context.Context), trackerQueueSize),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	go a.run()
	return a
}

func (a *AsyncTracker) run() {
	defer close(a.done)
	for op := range a.ops {
		ctx, cancel := context.WithTimeout(a.ctx, trackerCallTimeout)
		op(ctx)
		cancel()
	}
}

// Active reports whether an entry has been requested and not yet ended.
func (a *AsyncTracker) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Begin requests a new running entry unless one is already active.
func (a *AsyncTracker) Begin(description string) {
	a.mu.Lock()
	if a.active {
		a.mu.Unlock()
		return
	}
	a.active = true
	a.mu.Unlock()

	a.submit(func(ctx context.Context) {
		handle, err := a.tracker.Start(ctx, description)
		if err != nil {
			a.logger.Warn("start tracking failed", zap.Error(err))
			return
		}
		a.handle = handle
		a.logger.Debug("tracking started", zap.String("handle", handle))
	})
}

// End stops the active entry, if any.
func (a *AsyncTracker) End() {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return
	}
	a.active = false
	a.mu.Unlock()

	a.submit(func(ctx context.Context) {
		if a.handle == "" {
			return
		}
		handle := a.handle
		a.handle = ""
		if err := a.tracker.Stop(ctx, handle); err != nil {
			a.logger.Warn("stop tracking failed", zap.String("handle", handle), zap.Error(err))
			return
		}
		a.logger.Debug("tracking stopped", zap.String("handle", handle))
	})
}

func (a *AsyncTracker) submit(op func(ctx context.Context)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	select {
	case a.ops <- op:
	default:
		a.logger.Warn("tracking queue full, dropping request")
	}
}

// Shutdown ends the active entry and stops accepting requests. Queued calls
// keep running on the worker, each bounded by its own timeout.
func (a *AsyncTracker) Shutdown() {
	a.End()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	close(a.ops)
}

// Wait blocks until the worker has finished the queued calls after Shutdown.
// When ctx is done first, outstanding calls are cancelled.
func (a *AsyncTracker) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		a.cancel()
		return nil
	case <-ctx.Done():
		a.cancel()
		<-a.done
		return ctx.Err()
	}
}

// Close is Shutdown followed by Wait.
func (a *AsyncTracker) Close(ctx context.Context) error {
	a.Shutdown()
	return a.Wait(ctx)
}
