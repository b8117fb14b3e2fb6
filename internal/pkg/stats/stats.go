// Package stats keeps the process-wide rendering and loading counters of Vitrine
// and exports them to the live view, the status endpoint and Prometheus.
package stats

import (
	"sync"
	"time"

	"github.com/paulbellamy/ratecounter"
)

type stats struct {
	ShellsMaterialized *counter
	BatchesRendered    *counter
	AssetsLoaded       *counter
	AssetsExhausted    *counter
	LoadAttempts       *counter
	ActiveLoads        *gauge
	QueuedLoads        *gauge
	Paused             *gauge
	AssetsServed       *counter
	AssetsPerSecond    *ratecounter.RateCounter
	MeanLoadTime       *mean
}

var (
	globalStats *stats
	doOnce      sync.Once
	statsMu     sync.RWMutex
)

// Init initializes the global stats, it can only be called once
func Init() error {
	var done = false

	doOnce.Do(func() {
		statsMu.Lock()
		defer statsMu.Unlock()

		globalStats = &stats{
			ShellsMaterialized: &counter{},
			BatchesRendered:    &counter{},
			AssetsLoaded:       &counter{},
			AssetsExhausted:    &counter{},
			LoadAttempts:       &counter{},
			ActiveLoads:        &gauge{},
			QueuedLoads:        &gauge{},
			Paused:             &gauge{},
			AssetsServed:       &counter{},
			AssetsPerSecond:    ratecounter.NewRateCounter(time.Second),
			MeanLoadTime:       &mean{},
		}
		done = true
	})

	if !done {
		return ErrStatsAlreadyInitialized
	}

	return nil
}

// Reset sets every counter back to zero
func Reset() {
	s := get()
	if s == nil {
		return
	}

	s.ShellsMaterialized.reset()
	s.BatchesRendered.reset()
	s.AssetsLoaded.reset()
	s.AssetsExhausted.reset()
	s.LoadAttempts.reset()
	s.ActiveLoads.reset()
	s.QueuedLoads.reset()
	s.Paused.reset()
	s.AssetsServed.reset()
	s.MeanLoadTime.reset()
}

func get() *stats {
	statsMu.RLock()
	defer statsMu.RUnlock()
	return globalStats
}

// GetMap returns a map of the current stats.
// This is used by the live view and the status endpoint.
func GetMap() map[string]any {
	s := get()
	if s == nil {
		return map[string]any{}
	}

	return map[string]any{
		"Shells materialized": s.ShellsMaterialized.get(),
		"Batches rendered":    s.BatchesRendered.get(),
		"Assets loaded":       s.AssetsLoaded.get(),
		"Assets exhausted":    s.AssetsExhausted.get(),
		"Load attempts":       s.LoadAttempts.get(),
		"Active loads":        s.ActiveLoads.get(),
		"Queued loads":        s.QueuedLoads.get(),
		"Paused":              s.Paused.get() == 1,
		"Assets served":       s.AssetsServed.get(),
		"Assets/s":            s.AssetsPerSecond.Rate(),
		"Mean load time":      s.MeanLoadTime.get().String(),
	}
}
