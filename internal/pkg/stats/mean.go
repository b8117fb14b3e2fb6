package stats

import (
	"sync/atomic"
	"time"
)

// mean keeps the running mean of observed durations
type mean struct {
	count atomic.Uint64
	sum   atomic.Int64
}

func (m *mean) add(d time.Duration) {
	m.count.Add(1)
	m.sum.Add(int64(d))
}

func (m *mean) get() time.Duration {
	count := m.count.Load()
	if count == 0 {
		return 0
	}

	return time.Duration(m.sum.Load() / int64(count))
}

func (m *mean) reset() {
	m.count.Store(0)
	m.sum.Store(0)
}
