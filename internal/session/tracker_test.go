package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sketchdeck/internal/session"
)

type blockingTracker struct {
	fakeTracker
	release chan struct{}
}

func (b *blockingTracker) Start(ctx context.Context, description string) (string, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return b.fakeTracker.Start(ctx, description)
}

func TestAsyncTrackerOrdersCalls(t *testing.T) {
	f := &fakeTracker{}
	a := session.NewAsyncTracker(f, nil)

	a.Begin("one")
	a.Begin("ignored while active")
	a.End()
	a.End()
	a.Begin("two")
	require.NoError(t, a.Close(context.Background()))

	assert.Equal(t, []string{
		"start one entry-1",
		"stop entry-1",
		"start two entry-2",
		"stop entry-2",
	}, f.Calls())
	assert.False(t, a.Active())

	a.Begin("after close")
	assert.Len(t, f.Calls(), 4)
}

func TestAsyncTrackerDoesNotBlockCaller(t *testing.T) {
	b := &blockingTracker{release: make(chan struct{})}
	a := session.NewAsyncTracker(b, nil)

	done := make(chan struct{})
	go func() {
		a.Begin("slow")
		a.End()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Begin blocked on the tracker")
	}

	close(b.release)
	require.NoError(t, a.Close(context.Background()))
	assert.Equal(t, []string{"start slow entry-1", "stop entry-1"}, b.Calls())
}

func TestAsyncTrackerCloseTimeout(t *testing.T) {
	b := &blockingTracker{release: make(chan struct{})}
	a := session.NewAsyncTracker(b, nil)
	a.Begin("stuck")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := a.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, b.Calls())
}

func TestAsyncTrackerShutdownReturnsBeforeQueueDrains(t *testing.T) {
	b := &blockingTracker{release: make(chan struct{})}
	a := session.NewAsyncTracker(b, nil)
	a.Begin("slow")

	start := time.Now()
	a.Shutdown()
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, a.Active())

	close(b.release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.Wait(ctx))
	assert.Equal(t, []string{"start slow entry-1", "stop entry-1"}, b.Calls())
	require.NoError(t, a.Wait(context.Background()))
}
