package materializer

import "github.com/internetarchive/Vitrine/pkg/models"

// Near reports whether the trailing edge of sample is within the proximity threshold of the end of the content
func (m *Materializer) Near(sample models.ScrollSample) bool {
	return m.surface.ContentLength()-sample.Edge() < m.config.ProximityThreshold
}

// Notify handles one scroll sample pushed by the host and returns the number of shells rendered because of it
func (m *Materializer) Notify(sample models.ScrollSample) int {
	if !m.Near(sample) {
		return 0
	}
	return m.MaterializeNextBatch()
}

// Watch consumes the samples of source until every descriptor is materialized or the gallery is closed,
// then unsubscribes from source.
func (m *Materializer) Watch(source ScrollSource) error {
	if source == nil {
		return ErrNoScrollSource
	}

	if m.State() == StateAllMaterialized {
		return nil
	}

	samples := source.Subscribe()
	started := m.schedule(func() {
		defer source.Unsubscribe(samples)
		m.watch(samples)
	})
	if !started {
		source.Unsubscribe(samples)
		return ErrClosed
	}

	return nil
}

func (m *Materializer) watch(samples <-chan models.ScrollSample) {
	m.logger.Debug("watching scroll samples")

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.terminal:
			m.logger.Debug("all materialized, no longer watching scroll samples")
			return
		case sample, ok := <-samples:
			if !ok {
				return
			}
			m.Notify(sample)
		}
	}
}
