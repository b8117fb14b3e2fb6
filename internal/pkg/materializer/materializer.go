// Package materializer reveals a descriptor sequence batch by batch on a mounting surface.
//
// Every rendered shell stays mounted for the lifetime of the gallery and is handed to
// a per-gallery loader.Loader, so rendering never waits for assets. The next batch is
// rendered when the host reports a scroll position close enough to the end of the content.
package materializer

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/internetarchive/Vitrine/internal/pkg/loader"
	"github.com/internetarchive/Vitrine/internal/pkg/log"
	"github.com/internetarchive/Vitrine/internal/pkg/signals"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

// Surface is the host container shells are appended to. It also paints resolved assets into mounted nodes.
type Surface interface {
	models.Painter
	// Mount appends a node for shell at the end of the surface and returns its handle
	Mount(shell *models.Shell) models.MountHandle
	// ShowEmpty displays the explicit empty state of a gallery without descriptors
	ShowEmpty()
	// ContentLength returns the scrollable length of everything mounted so far
	ContentLength() float64
	// ViewportLength returns the visible length of the surface
	ViewportLength() float64
	SetItemSize(width, height float64)
}

// ScrollSource pushes scroll samples of the host surface
type ScrollSource interface {
	Subscribe() <-chan models.ScrollSample
	Unsubscribe(<-chan models.ScrollSample)
}

// Materializer owns the materialization cursor and the load queue of one gallery
type Materializer struct {
	ID string

	config      Config
	surface     Surface
	descriptors []models.Descriptor
	fetcher     loader.Fetcher
	clock       clockwork.Clock
	loader      *loader.Loader
	hub         *signals.Hub
	logger      *log.FieldedLogger

	mu        sync.Mutex
	nextIndex int
	inFlight  bool
	state     State
	shells    []*models.Shell
	closed    bool

	terminal     chan struct{}
	terminalOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Materializer)

// WithFetcher sets the fetcher used by the loader of the gallery.
// The default reads locators as paths of the local filesystem.
func WithFetcher(fetcher loader.Fetcher) Option {
	return func(m *Materializer) {
		m.fetcher = fetcher
	}
}

// WithClock sets the clock used by the loader between retries
func WithClock(clock clockwork.Clock) Option {
	return func(m *Materializer) {
		m.clock = clock
	}
}

// New creates a gallery on surface and synchronously renders its first batch.
// An empty descriptor sequence makes the surface show its empty state and returns ErrNoDescriptors.
func New(surface Surface, descriptors []models.Descriptor, config Config, opts ...Option) (*Materializer, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}

	if len(descriptors) == 0 {
		surface.ShowEmpty()
		return nil, ErrNoDescriptors
	}

	config = config.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	m := &Materializer{
		ID:          uuid.New().String(),
		config:      config,
		surface:     surface,
		descriptors: descriptors,
		hub:         signals.NewHub(),
		state:       StateIdle,
		shells:      make([]*models.Shell, 0, len(descriptors)),
		terminal:    make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.fetcher == nil {
		m.fetcher = loader.NewFSFetcher(afero.NewOsFs(), "")
	}

	loaderOpts := []loader.Option{loader.WithHub(m.hub)}
	if m.clock != nil {
		loaderOpts = append(loaderOpts, loader.WithClock(m.clock))
	}
	m.loader = loader.New(m.fetcher, config.Loader, loaderOpts...)

	m.logger = log.NewFieldedLogger(&log.Fields{
		"component":  "materializer",
		"gallery_id": m.ID,
	})

	if config.ItemWidth > 0 || config.ItemHeight > 0 {
		surface.SetItemSize(config.ItemWidth, config.ItemHeight)
	}

	m.logger.Info("gallery created", "descriptors", len(descriptors), "initial_batch_size", config.InitialBatchSize, "batch_size", config.BatchSize)

	m.materialize(config.InitialBatchSize, false)

	return m, nil
}

// MaterializeNextBatch renders the next batch of shells and returns how many were rendered.
// It is a no-op returning 0 while another batch is rendering or once every descriptor is rendered.
func (m *Materializer) MaterializeNextBatch() int {
	return m.materialize(m.config.BatchSize, false)
}

func (m *Materializer) materialize(size int, continuation bool) int {
	total := len(m.descriptors)

	m.mu.Lock()
	if m.closed || m.inFlight || m.nextIndex >= total {
		m.mu.Unlock()
		return 0
	}
	m.inFlight = true
	m.state = StateMaterializingBatch
	start := m.nextIndex
	end := min(start+size, total)
	m.mu.Unlock()

	shells := make([]*models.Shell, 0, end-start)
	for i := start; i < end; i++ {
		shell := models.NewShell(m.descriptors[i], i)
		shell.Attach(m.surface, m.surface.Mount(shell))
		shells = append(shells, shell)
	}

	m.mu.Lock()
	m.shells = append(m.shells, shells...)
	m.mu.Unlock()

	stats.ShellsMaterializedAdd(len(shells))
	stats.BatchesRenderedIncr()

	// Published before any shell of the batch is submitted, so it precedes their asset-resolved events
	m.logger.Debug("batch rendered", "from", start, "to", end, "total", total, "continuation", continuation)
	m.hub.Publish(models.Event{
		Kind:     models.EventBatchRendered,
		Rendered: end,
		Total:    total,
	})

	// Submitted before inFlight is cleared so that the load queue follows descriptor order
	for _, shell := range shells {
		m.loader.Submit(shell)
	}

	m.mu.Lock()
	m.nextIndex = end
	m.inFlight = false
	done := m.nextIndex >= total
	if done {
		m.state = StateAllMaterialized
	} else {
		m.state = StateIdle
	}
	m.mu.Unlock()

	if done {
		m.terminalOnce.Do(func() { close(m.terminal) })
		m.logger.Info("all descriptors materialized", "total", total)
		m.hub.Publish(models.Event{
			Kind:     models.EventAllMaterialized,
			Rendered: end,
			Total:    total,
		})
		return len(shells)
	}

	// A viewport that is still not filled gets one deferred continuation, never a chain of them
	if !continuation && m.surface.ContentLength() < m.surface.ViewportLength() {
		m.schedule(func() {
			m.materialize(m.config.BatchSize, true)
		})
	}

	return len(shells)
}

// schedule runs f in a goroutine tracked by Close
func (m *Materializer) schedule(f func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		f()
	}()

	return true
}

// Close stops the gallery: no more batches, no more resolves. Loads in flight are abandoned best-effort.
func (m *Materializer) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.loader.Stop()
	m.wg.Wait()
	m.hub.Close()

	m.logger.Info("gallery closed", "rendered", m.Rendered(), "total", len(m.descriptors))
}
