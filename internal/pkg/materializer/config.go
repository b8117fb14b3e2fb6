package materializer

import "github.com/internetarchive/Vitrine/internal/pkg/loader"

// Config holds the options of one gallery. Zero or negative batch sizes and
// proximity threshold are replaced by the defaults, as is a zero Loader.
type Config struct {
	InitialBatchSize   int     // InitialBatchSize is the number of shells rendered by New
	BatchSize          int     // BatchSize is the number of shells rendered by every following batch
	ProximityThreshold float64 // ProximityThreshold is the distance to the end of the content that triggers a batch
	ItemWidth          float64 // ItemWidth is a layout hint forwarded to the surface
	ItemHeight         float64 // ItemHeight is a layout hint forwarded to the surface

	Loader loader.Config
}

func DefaultConfig() Config {
	return Config{
		InitialBatchSize:   40,
		BatchSize:          40,
		ProximityThreshold: 400,
		Loader:             loader.DefaultConfig(),
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()

	if c.InitialBatchSize <= 0 {
		c.InitialBatchSize = defaults.InitialBatchSize
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	// At the bottom of the content the distance left is 0, a threshold of 0 would never trigger
	if c.ProximityThreshold <= 0 {
		c.ProximityThreshold = defaults.ProximityThreshold
	}
	if c.Loader == (loader.Config{}) {
		c.Loader = defaults.Loader
	}

	return c
}
