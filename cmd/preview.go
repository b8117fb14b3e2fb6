package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/api"
	"github.com/internetarchive/Vitrine/internal/pkg/config"
	"github.com/internetarchive/Vitrine/internal/pkg/log"
	"github.com/internetarchive/Vitrine/internal/pkg/materializer"
	"github.com/internetarchive/Vitrine/internal/pkg/signals"
	"github.com/internetarchive/Vitrine/internal/pkg/source"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
	"github.com/internetarchive/Vitrine/internal/pkg/surface"
	"github.com/internetarchive/Vitrine/internal/pkg/ui"
	"github.com/internetarchive/Vitrine/pkg/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func previewCmd() *cobra.Command {
	previewCmd := &cobra.Command{
		Use:   "preview [FILE|DIR]",
		Short: "Render a gallery on a headless surface while simulating a scrolling viewer",
		Long: `Render a gallery from a YAML/JSON descriptor file, or from a directory of images,
on a headless surface. The viewport scrolls on its own and the gallery grows
as it gets close to the end of the rendered content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return preview(ctx, config.Get(), args[0])
		},
	}

	// Gallery flags
	previewCmd.Flags().Int("initial-batch-size", 40, "Number of items rendered when the gallery opens.")
	previewCmd.Flags().Int("batch-size", 40, "Number of items rendered by every following batch.")
	previewCmd.Flags().Float64("proximity-threshold", 400, "Distance to the end of the content that triggers the next batch.")
	previewCmd.Flags().Float64("item-width", 200, "Width of one item.")
	previewCmd.Flags().Float64("item-height", 200, "Height of one item.")

	// Loading flags
	previewCmd.Flags().Int("max-concurrent-loads", 3, "Maximum number of assets loading at the same time.")
	previewCmd.Flags().Int("retry-limit", 2, "Number of retries after a failed asset probe.")
	previewCmd.Flags().Duration("retry-delay", time.Second, "Delay between two probes of the same asset.")
	previewCmd.Flags().String("placeholder-asset", "", "Locator of the asset displayed when an asset can't be loaded.")
	previewCmd.Flags().String("asset-base-url", "", "Base URL to fetch assets from, assets are read from disk when empty.")
	previewCmd.Flags().String("asset-root", "", "Directory to read assets from, defaults to the directory of the descriptors.")
	previewCmd.Flags().Duration("http-timeout", 30*time.Second, "Timeout of one asset request.")
	previewCmd.Flags().String("user-agent", "Vitrine", "User agent to use when requesting assets.")

	// Viewport simulation flags
	previewCmd.Flags().Float64("viewport-width", 1200, "Width of the simulated viewport.")
	previewCmd.Flags().Float64("viewport-height", 800, "Height of the simulated viewport.")
	previewCmd.Flags().Float64("scroll-step", 200, "Distance scrolled at every tick.")
	previewCmd.Flags().Duration("scroll-interval", 250*time.Millisecond, "Interval between two scroll ticks.")
	previewCmd.Flags().Bool("live-stats", false, "Display a live table of the gallery progress, disables stdout logging.")

	return previewCmd
}

func preview(ctx context.Context, c *config.Config, input string) error {
	logger := log.NewFieldedLogger(&log.Fields{
		"component": "cmd.preview",
	})

	fs := afero.NewOsFs()

	src, err := source.Open(fs, input)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", input, err)
	}

	descriptors, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("unable to load descriptors: %w", err)
	}
	logger.Info("descriptors loaded", "source", src.Name(), "count", len(descriptors))

	assetRoot := input
	if _, ok := src.(*source.File); ok {
		assetRoot = filepath.Dir(input)
	}

	fetcher, err := newFetcher(c, assetRoot)
	if err != nil {
		return err
	}

	headless := surface.NewHeadless(c.ViewportWidth, c.ViewportHeight)

	gallery, err := materializer.New(headless, descriptors, galleryConfig(c), materializer.WithFetcher(fetcher))
	if err != nil {
		return err
	}
	defer gallery.Close()

	api.RegisterGallery(gallery.ID, gallery)
	defer api.UnregisterGallery(gallery.ID)

	// Every shell publishes at most one asset event and every batch renders at least one shell,
	// so this buffer never drops anything
	events := gallery.Events(2*gallery.Total() + 1)
	defer gallery.Unsubscribe(events)

	if err := gallery.Watch(headless); err != nil {
		return err
	}

	if c.LiveStats {
		name := c.Job
		if name == "" {
			name = src.Name()
		}
		live := ui.New(name, gallery, headless)
		live.Start(ctx)
		defer live.Stop()
	}

	scrollCtx, stopScrolling := context.WithCancel(ctx)
	defer stopScrolling()
	go headless.AutoScroll(scrollCtx, c.ScrollStep, c.ScrollInterval)

	if err := waitForGallery(ctx, gallery, events, logger.With("gallery_id", gallery.ID)); err != nil {
		logger.Warn("preview interrupted", "rendered", gallery.Rendered(), "total", gallery.Total())
		return nil
	}

	status := headless.Status()
	logger.Info("preview finished",
		"rendered", gallery.Rendered(),
		"loaded", stats.AssetsLoadedGet(),
		"placeholders", status.Placeholder,
	)

	return nil
}

// waitForGallery logs the events of gallery and returns once every descriptor is materialized
// and every shell reached a terminal state. events must be subscribed before it is called.
func waitForGallery(ctx context.Context, gallery *materializer.Materializer, events *signals.Subscription, logger *log.FieldedLogger) error {
	// Shells resolved before the subscription are only visible on the gallery itself
	settled := make(map[string]struct{}, gallery.Total())
	for _, shell := range gallery.Shells() {
		if shell.GetState().IsTerminal() {
			settled[shell.GetID()] = struct{}{}
		}
	}
	allMaterialized := gallery.State() == materializer.StateAllMaterialized

	for !allMaterialized || len(settled) < gallery.Total() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events.C:
			if !ok {
				return materializer.ErrClosed
			}

			logEvent(logger, event)

			switch event.Kind {
			case models.EventAssetResolved:
				settled[event.ShellID] = struct{}{}
			case models.EventAllMaterialized:
				allMaterialized = true
			}
		}
	}

	return nil
}

func logEvent(logger *log.FieldedLogger, event models.Event) {
	switch event.Kind {
	case models.EventBatchRendered:
		logger.Info("batch rendered", "rendered", event.Rendered, "total", event.Total)
	case models.EventAssetResolved:
		logger.Debug("asset resolved", "shell_id", event.ShellID, "success", event.Success)
	case models.EventAllMaterialized:
		logger.Info("all items rendered", "total", event.Total)
	}
}
