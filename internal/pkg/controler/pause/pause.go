// Package pause suspends the scroll simulation of the preview.
// Subscribers receive the pause message on PauseCh, then call WaitResume.
package pause

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/internetarchive/Vitrine/internal/pkg/stats"
)

type ControlChans struct {
	PauseCh chan string
}

type pauseManager struct {
	mu          sync.Mutex
	subscribers map[*ControlChans]struct{}
	isPaused    atomic.Bool
	message     string
	resumed     chan struct{} // closed by Resume
}

var manager = &pauseManager{
	subscribers: make(map[*ControlChans]struct{}),
}

// Subscribe returns the channels of a new subscriber.
// A subscriber joining while paused receives the pause message immediately.
func Subscribe() *ControlChans {
	chans := &ControlChans{
		PauseCh: make(chan string, 1),
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.subscribers[chans] = struct{}{}

	if manager.isPaused.Load() {
		chans.PauseCh <- manager.message
	}

	return chans
}

// Unsubscribe removes the subscriber
func Unsubscribe(chans *ControlChans) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	delete(manager.subscribers, chans)
}

// Pause notifies every subscriber, a no-op when already paused
func Pause(message ...string) {
	msg := "Paused"
	if len(message) > 0 {
		msg = message[0]
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.isPaused.Load() {
		return
	}

	manager.isPaused.Store(true)
	manager.message = msg
	manager.resumed = make(chan struct{})

	for chans := range manager.subscribers {
		select {
		case chans.PauseCh <- msg:
		default:
		}
	}

	stats.PausedSet()
}

// Resume releases every subscriber blocked in WaitResume
func Resume() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !manager.isPaused.Load() {
		return
	}

	manager.isPaused.Store(false)
	manager.message = ""
	close(manager.resumed)

	// Drop pause signals nobody consumed
	for chans := range manager.subscribers {
		select {
		case <-chans.PauseCh:
		default:
		}
	}

	stats.PausedReset()
}

// WaitResume blocks until Resume is called or ctx is done. It returns immediately when not paused.
func WaitResume(ctx context.Context) error {
	manager.mu.Lock()
	if !manager.isPaused.Load() {
		manager.mu.Unlock()
		return nil
	}
	resumed := manager.resumed
	manager.mu.Unlock()

	select {
	case <-resumed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func IsPaused() bool {
	return manager.isPaused.Load()
}

func GetMessage() string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.message
}
