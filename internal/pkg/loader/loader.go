// Package loader resolves the asset behind each rendered shell.
// A Loader bounds the number of shells resolving at the same time, keeps the
// others in a FIFO queue, retries failed probes and falls back to a placeholder
// once the retries are exhausted.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/log"
	"github.com/internetarchive/Vitrine/internal/pkg/signals"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/jonboulle/clockwork"
)

// Fetcher probes and retrieves an asset. Success or failure of Fetch is the only existence signal.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (*models.Asset, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, locator string) (*models.Asset, error)

func (f FetcherFunc) Fetch(ctx context.Context, locator string) (*models.Asset, error) {
	return f(ctx, locator)
}

type Config struct {
	MaxConcurrentLoads int           // MaxConcurrentLoads bounds the number of shells holding a slot, 0 means the default
	RetryLimit         int           // RetryLimit is the number of retries after the first failed probe
	RetryDelay         time.Duration // RetryDelay is the wait between two probes of the same shell, 0 is legal
	Placeholder        string        // Placeholder is the locator of the asset shown by exhausted shells
}

// DefaultConfig returns the default loader configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrentLoads: 3,
		RetryLimit:         2,
		RetryDelay:         time.Second,
	}
}

type task struct {
	shell *models.Shell
	done  chan models.Outcome
}

// Loader holds the load queue of one gallery
type Loader struct {
	config      Config
	fetcher     Fetcher
	clock       clockwork.Clock
	hub         *signals.Hub
	placeholder *models.Asset
	logger      *log.FieldedLogger

	mu      sync.Mutex
	queue   []*task
	tracked map[*models.Shell]struct{} // queued or active shells
	active  int
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Loader)

// WithClock replaces the clock used to wait between retries
func WithClock(clock clockwork.Clock) Option {
	return func(l *Loader) {
		l.clock = clock
	}
}

// WithHub publishes an asset-resolved event on hub for every shell reaching a terminal state
func WithHub(hub *signals.Hub) Option {
	return func(l *Loader) {
		l.hub = hub
	}
}

// New creates a loader using fetcher to probe assets
func New(fetcher Fetcher, config Config, opts ...Option) *Loader {
	if config.MaxConcurrentLoads <= 0 {
		config.MaxConcurrentLoads = DefaultConfig().MaxConcurrentLoads
	}
	if config.RetryLimit < 0 {
		config.RetryLimit = 0
	}
	if config.RetryDelay < 0 {
		config.RetryDelay = 0
	}

	ctx, cancel := context.WithCancel(context.Background())

	l := &Loader{
		config:      config,
		fetcher:     fetcher,
		clock:       clockwork.NewRealClock(),
		placeholder: models.NewPlaceholder(config.Placeholder),
		tracked:     make(map[*models.Shell]struct{}),
		ctx:         ctx,
		cancel:      cancel,
		logger: log.NewFieldedLogger(&log.Fields{
			"component": "loader",
		}),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Submit hands shell over to the loader and returns the channel receiving its outcome.
// The shell either takes a free slot, in which case it is counted as active before
// Submit returns, or waits at the end of the queue.
func (l *Loader) Submit(shell *models.Shell) <-chan models.Outcome {
	done := make(chan models.Outcome, 1)

	if shell == nil {
		done <- models.Outcome{Err: ErrNilShell}
		return done
	}

	// No locator: straight to the placeholder, nothing to probe
	if shell.GetLocator() == "" {
		if shell.Exhaust(l.placeholder) {
			l.logger.Debug("no locator, showing placeholder", "shell_id", shell.GetID())
			stats.AssetExhausted()
			l.publish(shell.GetID(), false)
		}
		done <- terminalOutcome(shell)
		return done
	}

	if shell.GetState().IsTerminal() {
		done <- terminalOutcome(shell)
		return done
	}

	l.mu.Lock()

	if l.stopped {
		l.mu.Unlock()
		done <- models.Outcome{ShellID: shell.GetID(), Err: ErrLoaderStopped}
		return done
	}

	if _, ok := l.tracked[shell]; ok {
		l.mu.Unlock()
		done <- models.Outcome{ShellID: shell.GetID(), Err: ErrAlreadyQueued}
		return done
	}

	l.tracked[shell] = struct{}{}
	t := &task{shell: shell, done: done}

	if l.active >= l.config.MaxConcurrentLoads {
		l.queue = append(l.queue, t)
		l.mu.Unlock()

		stats.QueuedLoadsIncr()
		return done
	}

	l.active++
	l.wg.Add(1)
	l.mu.Unlock()

	stats.ActiveLoadsIncr()
	go l.run(t)

	return done
}

// Resolve submits shell and waits for its outcome or for ctx to be done
func (l *Loader) Resolve(ctx context.Context, shell *models.Shell) models.Outcome {
	select {
	case outcome := <-l.Submit(shell):
		return outcome
	case <-ctx.Done():
		var id string
		if shell != nil {
			id = shell.GetID()
		}
		return models.Outcome{ShellID: id, Err: ctx.Err()}
	}
}

// Stop refuses new shells, drops the queued ones and waits for the active ones.
// Active probes are cancelled on a best-effort basis.
func (l *Loader) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	queued := l.queue
	l.queue = nil
	for _, t := range queued {
		delete(l.tracked, t.shell)
	}
	l.mu.Unlock()

	l.cancel()
	stats.QueuedLoadsDecr(len(queued))

	for _, t := range queued {
		t.done <- models.Outcome{ShellID: t.shell.GetID(), Attempts: t.shell.GetAttempts(), Err: ErrLoaderStopped}
	}

	l.wg.Wait()
	l.logger.Debug("stopped", "dropped", len(queued))
}

func (l *Loader) run(t *task) {
	defer l.wg.Done()

	outcome := l.resolve(t.shell)
	l.release(t.shell)
	t.done <- outcome
}

// release frees the slot of shell, or hands it over to the head of the queue
func (l *Loader) release(shell *models.Shell) {
	l.mu.Lock()
	delete(l.tracked, shell)

	var next *task
	if !l.stopped && len(l.queue) > 0 {
		next = l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.wg.Add(1)
	} else {
		l.active--
	}
	l.mu.Unlock()

	if next == nil {
		stats.ActiveLoadsDecr()
		return
	}

	stats.QueuedLoadsDecr(1)
	go l.run(next)
}

// resolve runs the probe/retry sequence of one shell while it holds a slot
func (l *Loader) resolve(shell *models.Shell) models.Outcome {
	logger := l.logger.With("shell_id", shell.GetID(), "locator", shell.GetLocator())

	var (
		lastErr   error
		startTime = l.clock.Now()
	)

	for {
		attempt, ok := shell.BeginAttempt(l.config.RetryLimit)
		if !ok {
			break
		}
		stats.LoadAttemptsIncr()

		asset, err := l.fetcher.Fetch(l.ctx, shell.GetLocator())
		if err == nil && asset == nil {
			err = ErrAssetNotFound
		}

		if err == nil {
			if shell.Resolve(asset) {
				stats.AssetLoaded(l.clock.Since(startTime))
				logger.Debug("asset loaded", "attempt", attempt, "content_type", asset.ContentType, "size", asset.Size)
				l.publish(shell.GetID(), true)
			}
			return terminalOutcome(shell)
		}

		lastErr = err

		if l.ctx.Err() != nil {
			lastErr = fmt.Errorf("%w: %w", ErrLoaderStopped, err)
			break
		}

		if attempt >= l.config.RetryLimit {
			break
		}

		logger.Warn("retrying asset", "err", err.Error(), "attempt", attempt, "sleep_time", l.config.RetryDelay)

		if err := l.wait(); err != nil {
			lastErr = fmt.Errorf("%w: %w", ErrLoaderStopped, err)
			break
		}
	}

	if shell.Exhaust(l.placeholder) {
		stats.AssetExhausted()
		logger.Error("retries exhausted, showing placeholder", "err", fmt.Sprint(lastErr), "attempts", shell.GetAttempts())
		l.publish(shell.GetID(), false)
	}

	outcome := terminalOutcome(shell)
	if lastErr != nil {
		outcome.Err = fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
	} else if !outcome.Success {
		outcome.Err = ErrRetriesExhausted
	}

	return outcome
}

// wait blocks for the retry delay. The slot stays held by the caller.
func (l *Loader) wait() error {
	select {
	case <-l.clock.After(l.config.RetryDelay):
		return nil
	case <-l.ctx.Done():
		return l.ctx.Err()
	}
}

func (l *Loader) publish(shellID string, success bool) {
	if l.hub == nil {
		return
	}

	l.hub.Publish(models.Event{
		Kind:    models.EventAssetResolved,
		ShellID: shellID,
		Success: success,
	})
}

func terminalOutcome(shell *models.Shell) models.Outcome {
	return models.Outcome{
		ShellID:  shell.GetID(),
		Success:  shell.GetState() == models.LoadLoaded,
		Attempts: shell.GetAttempts(),
	}
}
