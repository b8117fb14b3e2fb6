package stats

import "time"

////////////////////////////
//   ShellsMaterialized   //
////////////////////////////

// ShellsMaterializedAdd adds n freshly mounted shells.
func ShellsMaterializedAdd(n int) {
	s := get()
	if s == nil || n <= 0 {
		return
	}
	s.ShellsMaterialized.incr(uint64(n))
	withProm(func(p *prometheusStats) { p.shellsMaterialized.WithLabelValues(labels()...).Add(float64(n)) })
}

// ShellsMaterializedGet returns the number of mounted shells.
func ShellsMaterializedGet() uint64 {
	if s := get(); s != nil {
		return s.ShellsMaterialized.get()
	}
	return 0
}

////////////////////////////
//    BatchesRendered     //
////////////////////////////

// BatchesRenderedIncr increments the BatchesRendered counter by 1.
func BatchesRenderedIncr() {
	s := get()
	if s == nil {
		return
	}
	s.BatchesRendered.incr(1)
	withProm(func(p *prometheusStats) { p.batchesRendered.WithLabelValues(labels()...).Inc() })
}

// BatchesRenderedGet returns the current value of the BatchesRendered counter.
func BatchesRenderedGet() uint64 {
	if s := get(); s != nil {
		return s.BatchesRendered.get()
	}
	return 0
}

////////////////////////////
//  Assets loaded/failed  //
////////////////////////////

// AssetLoaded records a shell that reached the loaded state after d.
func AssetLoaded(d time.Duration) {
	s := get()
	if s == nil {
		return
	}
	s.AssetsLoaded.incr(1)
	s.AssetsPerSecond.Incr(1)
	s.MeanLoadTime.add(d)
	withProm(func(p *prometheusStats) {
		p.assetsLoaded.WithLabelValues(labels()...).Inc()
		p.loadTime.WithLabelValues(labels()...).Observe(float64(d))
	})
}

// AssetExhausted records a shell that fell back to the placeholder.
func AssetExhausted() {
	s := get()
	if s == nil {
		return
	}
	s.AssetsExhausted.incr(1)
	s.AssetsPerSecond.Incr(1)
	withProm(func(p *prometheusStats) { p.assetsExhausted.WithLabelValues(labels()...).Inc() })
}

// AssetsLoadedGet returns the number of loaded assets.
func AssetsLoadedGet() uint64 {
	if s := get(); s != nil {
		return s.AssetsLoaded.get()
	}
	return 0
}

// AssetsExhaustedGet returns the number of exhausted assets.
func AssetsExhaustedGet() uint64 {
	if s := get(); s != nil {
		return s.AssetsExhausted.get()
	}
	return 0
}

////////////////////////////
//      LoadAttempts      //
////////////////////////////

// LoadAttemptsIncr increments the LoadAttempts counter by 1.
func LoadAttemptsIncr() {
	s := get()
	if s == nil {
		return
	}
	s.LoadAttempts.incr(1)
	withProm(func(p *prometheusStats) { p.loadAttempts.WithLabelValues(labels()...).Inc() })
}

////////////////////////////
//  Active/Queued loads   //
////////////////////////////

// ActiveLoadsIncr increments the ActiveLoads gauge by 1.
func ActiveLoadsIncr() {
	s := get()
	if s == nil {
		return
	}
	s.ActiveLoads.incr(1)
	withProm(func(p *prometheusStats) { p.activeLoads.WithLabelValues(labels()...).Inc() })
}

// ActiveLoadsDecr decrements the ActiveLoads gauge by 1.
func ActiveLoadsDecr() {
	s := get()
	if s == nil {
		return
	}
	s.ActiveLoads.decr(1)
	withProm(func(p *prometheusStats) { p.activeLoads.WithLabelValues(labels()...).Dec() })
}

// ActiveLoadsGet returns the current value of the ActiveLoads gauge.
func ActiveLoadsGet() int64 {
	if s := get(); s != nil {
		return s.ActiveLoads.get()
	}
	return 0
}

// QueuedLoadsIncr increments the QueuedLoads gauge by 1.
func QueuedLoadsIncr() {
	s := get()
	if s == nil {
		return
	}
	s.QueuedLoads.incr(1)
	withProm(func(p *prometheusStats) { p.queuedLoads.WithLabelValues(labels()...).Inc() })
}

// QueuedLoadsDecr decrements the QueuedLoads gauge by n.
func QueuedLoadsDecr(n int) {
	s := get()
	if s == nil || n <= 0 {
		return
	}
	s.QueuedLoads.decr(int64(n))
	withProm(func(p *prometheusStats) { p.queuedLoads.WithLabelValues(labels()...).Sub(float64(n)) })
}

// QueuedLoadsGet returns the current value of the QueuedLoads gauge.
func QueuedLoadsGet() int64 {
	if s := get(); s != nil {
		return s.QueuedLoads.get()
	}
	return 0
}

////////////////////////////
//         Paused         //
////////////////////////////

// PausedSet marks the scroll simulation as paused.
func PausedSet() {
	s := get()
	if s == nil {
		return
	}
	s.Paused.set(1)
	withProm(func(p *prometheusStats) { p.paused.WithLabelValues(labels()...).Set(1) })
}

// PausedReset marks the scroll simulation as running.
func PausedReset() {
	s := get()
	if s == nil {
		return
	}
	s.Paused.set(0)
	withProm(func(p *prometheusStats) { p.paused.WithLabelValues(labels()...).Set(0) })
}

// PausedGet reports whether the scroll simulation is paused.
func PausedGet() bool {
	if s := get(); s != nil {
		return s.Paused.get() == 1
	}
	return false
}

////////////////////////////
//      Assets served     //
////////////////////////////

// AssetsServedIncr counts one file served by the asset server.
func AssetsServedIncr() {
	s := get()
	if s == nil {
		return
	}
	s.AssetsServed.incr(1)
	withProm(func(p *prometheusStats) { p.assetsServed.WithLabelValues(labels()...).Inc() })
}

// AssetsServedGet returns the number of files served by the asset server.
func AssetsServedGet() uint64 {
	if s := get(); s != nil {
		return s.AssetsServed.get()
	}
	return 0
}
