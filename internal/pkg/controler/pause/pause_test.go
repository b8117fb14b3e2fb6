package pause

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPauseResume(t *testing.T) {
	chans := Subscribe()
	defer Unsubscribe(chans)

	assert.False(t, IsPaused())
	require.NoError(t, WaitResume(context.Background()))

	Pause("api")
	Pause("ignored")
	assert.True(t, IsPaused())
	assert.Equal(t, "api", GetMessage())
	assert.Equal(t, "api", <-chans.PauseCh)

	released := make(chan error, 1)
	go func() {
		released <- WaitResume(context.Background())
	}()

	select {
	case <-released:
		t.Fatal("WaitResume returned while paused")
	case <-time.After(20 * time.Millisecond):
	}

	Resume()
	Resume()
	assert.NoError(t, <-released)
	assert.False(t, IsPaused())
	assert.Equal(t, "", GetMessage())
}

func TestSubscribeWhilePaused(t *testing.T) {
	Pause()
	defer Resume()

	chans := Subscribe()
	defer Unsubscribe(chans)

	assert.Equal(t, "Paused", <-chans.PauseCh)
}

func TestResumeDropsUnconsumedSignal(t *testing.T) {
	chans := Subscribe()
	defer Unsubscribe(chans)

	Pause()
	Resume()

	select {
	case msg := <-chans.PauseCh:
		t.Fatalf("unexpected pause signal %q", msg)
	default:
	}
}

func TestWaitResumeCanceled(t *testing.T) {
	Pause()
	defer Resume()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, WaitResume(ctx), context.DeadlineExceeded)
}
