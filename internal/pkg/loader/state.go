package loader

// Active returns the number of shells currently holding a slot
func (l *Loader) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Queued returns the number of shells waiting for a slot
func (l *Loader) Queued() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// MaxConcurrent returns the effective slot count
func (l *Loader) MaxConcurrent() int {
	return l.config.MaxConcurrentLoads
}

// Config returns the effective configuration of the loader
func (l *Loader) Config() Config {
	return l.config
}

// Stopped reports whether Stop has been called
func (l *Loader) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}
