package stats

import "sync/atomic"

// counter only goes up
type counter struct {
	count atomic.Uint64
}

func (c *counter) incr(step uint64) {
	c.count.Add(step)
}

func (c *counter) get() uint64 {
	return c.count.Load()
}

func (c *counter) reset() {
	c.count.Store(0)
}

// gauge goes up and down, it never reports a negative value
type gauge struct {
	value atomic.Int64
}

func (g *gauge) incr(step int64) {
	g.value.Add(step)
}

func (g *gauge) decr(step int64) {
	g.value.Add(-step)
}

func (g *gauge) set(value int64) {
	g.value.Store(value)
}

func (g *gauge) get() int64 {
	if v := g.value.Load(); v > 0 {
		return v
	}
	return 0
}

func (g *gauge) reset() {
	g.value.Store(0)
}
