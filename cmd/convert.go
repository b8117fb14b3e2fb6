package cmd

import (
	"github.com/internetarchive/Vitrine/internal/pkg/config"
	"github.com/internetarchive/Vitrine/internal/pkg/loader"
	"github.com/internetarchive/Vitrine/internal/pkg/materializer"
	"github.com/spf13/afero"
)

// galleryConfig converts the global configuration to the configuration of one gallery
func galleryConfig(c *config.Config) materializer.Config {
	return materializer.Config{
		InitialBatchSize:   c.InitialBatchSize,
		BatchSize:          c.BatchSize,
		ProximityThreshold: c.ProximityThreshold,
		ItemWidth:          c.ItemWidth,
		ItemHeight:         c.ItemHeight,
		Loader: loader.Config{
			MaxConcurrentLoads: c.MaxConcurrentLoads,
			RetryLimit:         c.RetryLimit,
			RetryDelay:         c.RetryDelay,
			Placeholder:        c.PlaceholderAsset,
		},
	}
}

// newFetcher returns an HTTP fetcher when an asset base URL is configured,
// otherwise a fetcher reading assets under the asset root, or under fallbackRoot when it's empty
func newFetcher(c *config.Config, fallbackRoot string) (loader.Fetcher, error) {
	if c.AssetBaseURL != "" {
		return loader.NewHTTPFetcher(c.AssetBaseURL, c.UserAgent, c.HTTPTimeout)
	}

	root := c.AssetRoot
	if root == "" {
		root = fallbackRoot
	}

	return loader.NewFSFetcher(afero.NewOsFs(), root), nil
}
