package ui

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/materializer"
	"github.com/internetarchive/Vitrine/internal/pkg/surface"
	"github.com/stretchr/testify/assert"
)

type fakeGallery struct{}

func (fakeGallery) Rendered() int             { return 40 }
func (fakeGallery) Total() int                { return 100 }
func (fakeGallery) State() materializer.State { return materializer.StateIdle }

type fakeNodes struct{}

func (fakeNodes) Status() surface.NodeStatus {
	return surface.NodeStatus{Mounted: 40, Blank: 3, Painted: 37, Bytes: 2048}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTable(t *testing.T) {
	table := New("demo", fakeGallery{}, fakeNodes{}).Table().String()

	assert.Contains(t, table, "demo")
	assert.Contains(t, table, "40/100")
	assert.Contains(t, table, "idle")
	assert.Contains(t, table, "2.0 kB")
}

func TestStartStop(t *testing.T) {
	out := &syncBuffer{}
	live := New("demo", fakeGallery{}, nil)
	live.Out = out
	live.Interval = 5 * time.Millisecond

	live.Start(context.Background())
	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("40/100"))
	}, 5*time.Second, 5*time.Millisecond)

	live.Stop()
	live.Stop()
}
