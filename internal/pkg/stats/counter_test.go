package stats

import (
	"testing"
)

func TestCounter(t *testing.T) {
	c := &counter{}

	c.incr(1)
	c.incr(5)
	if c.get() != 6 {
		t.Errorf("expected count to be 6, got %d", c.get())
	}

	c.reset()
	if c.get() != 0 {
		t.Errorf("expected count to be 0 after reset, got %d", c.get())
	}
}

func TestGauge_IncrDecr(t *testing.T) {
	g := &gauge{}

	g.incr(10)
	g.decr(3)
	if g.get() != 7 {
		t.Errorf("expected value to be 7, got %d", g.get())
	}

	g.decr(7)
	if g.get() != 0 {
		t.Errorf("expected value to be 0, got %d", g.get())
	}
}

func TestGauge_NeverNegative(t *testing.T) {
	g := &gauge{}

	g.decr(2)
	if g.get() != 0 {
		t.Errorf("expected a negative gauge to report 0, got %d", g.get())
	}

	g.set(4)
	if g.get() != 4 {
		t.Errorf("expected value to be 4, got %d", g.get())
	}
}
