package surface

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/controler/pause"
	"github.com/internetarchive/Vitrine/internal/pkg/loader"
	"github.com/internetarchive/Vitrine/internal/pkg/materializer"
	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ materializer.Surface      = (*Headless)(nil)
	_ materializer.ScrollSource = (*Headless)(nil)
)

func mountN(h *Headless, n int) []models.MountHandle {
	handles := make([]models.MountHandle, n)
	for i := range handles {
		shell := models.NewShell(models.Descriptor{ID: fmt.Sprintf("item-%d", i)}, i)
		handles[i] = h.Mount(shell)
	}
	return handles
}

func TestGridLayout(t *testing.T) {
	h := NewHeadless(1000, 600)
	h.SetItemSize(300, 200)

	assert.Equal(t, 3, h.Columns())
	assert.Equal(t, 0.0, h.ContentLength())

	mountN(h, 7)
	assert.Equal(t, 600.0, h.ContentLength())
	assert.Equal(t, 600.0, h.ViewportLength())

	// Items wider than the viewport still get one column
	h.SetItemSize(2000, 0)
	assert.Equal(t, 1, h.Columns())
	assert.Equal(t, 1400.0, h.ContentLength())
}

func TestPaintAndStatus(t *testing.T) {
	h := NewHeadless(100, 100)
	handles := mountN(h, 3)

	h.Paint(handles[0], &models.Asset{Locator: "a.jpg", Size: 1024})
	h.Paint(handles[1], models.NewPlaceholder("placeholder.png"))
	h.Paint("not a node", &models.Asset{})

	status := h.Status()
	assert.Equal(t, NodeStatus{Mounted: 3, Blank: 1, Painted: 1, Placeholder: 1, Bytes: 1024}, status)
	assert.Equal(t, 1, h.PaintCount("item-0"))
	assert.Equal(t, 0, h.PaintCount("item-2"))
	assert.Equal(t, []string{"item-0", "item-1", "item-2"}, h.Mounted())
}

func TestShowEmpty(t *testing.T) {
	h := NewHeadless(100, 100)
	assert.False(t, h.Empty())

	_, err := materializer.New(h, nil, materializer.DefaultConfig())
	assert.ErrorIs(t, err, materializer.ErrNoDescriptors)
	assert.True(t, h.Empty())
}

func TestScroll(t *testing.T) {
	h := NewHeadless(100, 100)
	h.SetItemSize(100, 50)
	mountN(h, 10) // content 500

	samples := h.Subscribe()
	assert.Equal(t, 1, h.Subscribers())

	assert.Equal(t, 150.0, h.ScrollTo(150))
	assert.Equal(t, models.ScrollSample{Offset: 150, Viewport: 100}, <-samples)
	assert.Equal(t, []string{"item-3", "item-4"}, h.Visible())

	// Clamped to content - viewport
	assert.Equal(t, 400.0, h.ScrollBy(1000))
	assert.Equal(t, 500.0, (<-samples).Edge())

	assert.Equal(t, 0.0, h.ScrollTo(-10))
	<-samples

	h.Unsubscribe(samples)
	h.Unsubscribe(samples)
	_, ok := <-samples
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers())
}

func TestScrollDropsOldestSample(t *testing.T) {
	h := NewHeadless(100, 10)
	h.SetItemSize(100, 10)
	mountN(h, 100)

	samples := h.Subscribe()
	defer h.Unsubscribe(samples)

	for i := range sampleBuffer + 5 {
		h.ScrollTo(float64(i))
	}

	var last models.ScrollSample
	for range sampleBuffer {
		last = <-samples
	}
	assert.Equal(t, float64(sampleBuffer+4), last.Offset)
}

func TestAutoScrollDrivesMaterializer(t *testing.T) {
	h := NewHeadless(400, 300)

	descriptors := make([]models.Descriptor, 200)
	for i := range descriptors {
		descriptors[i] = models.Descriptor{ID: fmt.Sprintf("item-%d", i), Locator: fmt.Sprintf("%d.jpg", i)}
	}

	config := materializer.DefaultConfig()
	config.InitialBatchSize = 20
	config.BatchSize = 20
	config.ProximityThreshold = 200
	config.ItemWidth, config.ItemHeight = 100, 100

	fetcher := loader.FetcherFunc(func(ctx context.Context, locator string) (*models.Asset, error) {
		return &models.Asset{Locator: locator, Size: 10}, nil
	})

	m, err := materializer.New(h, descriptors, config, materializer.WithFetcher(fetcher))
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Watch(h))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.AutoScroll(ctx, 100, time.Millisecond)
	}()

	select {
	case <-m.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("gallery never fully materialized")
	}
	cancel()
	<-done

	assert.Equal(t, 200, m.Rendered())
	assert.Len(t, h.Mounted(), 200)
	assert.Eventually(t, func() bool {
		return h.Subscribers() == 0
	}, 5*time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		return h.Status().Painted == 200
	}, 5*time.Second, 5*time.Millisecond)
}

func TestAutoScrollPause(t *testing.T) {
	h := NewHeadless(100, 10)
	h.SetItemSize(100, 10)
	mountN(h, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	pause.Pause("test")
	go func() {
		defer close(done)
		h.AutoScroll(ctx, 10, time.Millisecond)
	}()

	assert.Never(t, func() bool {
		return h.Offset() > 0
	}, 50*time.Millisecond, 5*time.Millisecond)

	pause.Resume()
	assert.Eventually(t, func() bool {
		return h.Offset() > 0
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
