// Package signals distributes the events emitted by a gallery to its subscribers.
// Every gallery owns its own Hub; publishing never blocks the publisher.
package signals

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/internetarchive/Vitrine/pkg/models"
)

// DefaultBuffer is the channel capacity of a subscription when none is given
const DefaultBuffer = 256

// Subscription receives the events published after it was created
type Subscription struct {
	C <-chan models.Event

	ch      chan models.Event
	dropped atomic.Uint64
}

// Dropped returns the number of events this subscriber missed because its buffer was full
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscription]struct{}),
	}
}

// Subscribe returns a new subscription. A closed hub returns a subscription whose channel is already closed.
// On top of buffer, one slot is kept for the terminal event so that a slow subscriber never misses it.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	ch := make(chan models.Event, buffer+1)
	sub := &Subscription{C: ch, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return sub
	}

	h.subscribers[sub] = struct{}{}

	return sub
}

// Unsubscribe removes the subscriber and closes its channel
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[sub]; !ok {
		return
	}

	delete(h.subscribers, sub)
	close(sub.ch)
}

// Publish sends event to every subscriber, dropping it for subscribers whose buffer is full.
// Terminal events may use the reserved slot, other events may not.
func (h *Hub) Publish(event models.Event) {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	// Exclusive so that the reserved slot check and the send can't interleave between publishers
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers {
		if !event.Kind.IsTerminal() && len(sub.ch) >= cap(sub.ch)-1 {
			sub.dropped.Add(1)
			continue
		}

		select {
		case sub.ch <- event:
		default:
			sub.dropped.Add(1)
		}
	}
}

// Close unsubscribes everyone, later publications are discarded
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for sub := range h.subscribers {
		delete(h.subscribers, sub)
		close(sub.ch)
	}
}

// Len returns the number of active subscribers
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
