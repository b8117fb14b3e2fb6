package materializer

import (
	"github.com/internetarchive/Vitrine/internal/pkg/loader"
	"github.com/internetarchive/Vitrine/internal/pkg/signals"
	"github.com/internetarchive/Vitrine/pkg/models"
)

func (m *Materializer) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Rendered returns the number of shells materialized so far
func (m *Materializer) Rendered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextIndex
}

// Total returns the length of the descriptor sequence
func (m *Materializer) Total() int {
	return len(m.descriptors)
}

// Shells returns the rendered shells in descriptor order
func (m *Materializer) Shells() []*models.Shell {
	m.mu.Lock()
	defer m.mu.Unlock()

	shells := make([]*models.Shell, len(m.shells))
	copy(shells, m.shells)
	return shells
}

// Loader returns the loader resolving the shells of the gallery
func (m *Materializer) Loader() *loader.Loader {
	return m.loader
}

// Events subscribes to the signals of the gallery
func (m *Materializer) Events(buffer int) *signals.Subscription {
	return m.hub.Subscribe(buffer)
}

// Unsubscribe drops a subscription returned by Events
func (m *Materializer) Unsubscribe(sub *signals.Subscription) {
	m.hub.Unsubscribe(sub)
}

// Done is closed once every descriptor is materialized
func (m *Materializer) Done() <-chan struct{} {
	return m.terminal
}
