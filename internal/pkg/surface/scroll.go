package surface

import (
	"context"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/controler/pause"
	"github.com/internetarchive/Vitrine/pkg/models"
)

func (h *Headless) Subscribe() <-chan models.ScrollSample {
	ch := make(chan models.ScrollSample, sampleBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.subscribers[ch] = ch
	return ch
}

func (h *Headless) Unsubscribe(samples <-chan models.ScrollSample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subscribers[samples]
	if !ok {
		return
	}

	delete(h.subscribers, samples)
	close(ch)
}

// Subscribers returns the number of active scroll subscriptions
func (h *Headless) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// ScrollTo moves the viewport to offset, clamped to the content, and pushes the new sample to every subscriber.
// It returns the effective offset.
func (h *Headless) ScrollTo(offset float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.offset = max(0, min(offset, h.contentLength()-h.height))
	sample := models.ScrollSample{Offset: h.offset, Viewport: h.height}

	for _, ch := range h.subscribers {
		select {
		case ch <- sample:
		default:
			// Full: drop the oldest sample, the newest one matters most
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- sample:
			default:
			}
		}
	}

	return h.offset
}

// ScrollBy moves the viewport by delta
func (h *Headless) ScrollBy(delta float64) float64 {
	return h.ScrollTo(h.Offset() + delta)
}

// AutoScroll scrolls by step every interval until ctx is done. It holds still while paused.
func (h *Headless) AutoScroll(ctx context.Context, step float64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	controlChans := pause.Subscribe()
	defer pause.Unsubscribe(controlChans)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-controlChans.PauseCh:
			h.logger.Info("scroll paused", "message", msg)
			if err := pause.WaitResume(ctx); err != nil {
				return
			}
			h.logger.Info("scroll resumed")
		case <-ticker.C:
			h.ScrollBy(step)
		}
	}
}
