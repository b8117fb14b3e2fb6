package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for our program, parsed from various sources
// The `mapstructure` tags are used to map the fields to the viper configuration
type Config struct {
	// Gallery
	InitialBatchSize   int     `mapstructure:"initial-batch-size"`
	BatchSize          int     `mapstructure:"batch-size"`
	ProximityThreshold float64 `mapstructure:"proximity-threshold"`
	ItemWidth          float64 `mapstructure:"item-width"`
	ItemHeight         float64 `mapstructure:"item-height"`

	// Asset loading
	MaxConcurrentLoads int           `mapstructure:"max-concurrent-loads"`
	RetryLimit         int           `mapstructure:"retry-limit"`
	RetryDelay         time.Duration `mapstructure:"retry-delay"`
	PlaceholderAsset   string        `mapstructure:"placeholder-asset"`
	AssetBaseURL       string        `mapstructure:"asset-base-url"`
	AssetRoot          string        `mapstructure:"asset-root"`
	HTTPTimeout        time.Duration `mapstructure:"http-timeout"`
	UserAgent          string        `mapstructure:"user-agent"`

	// Viewport simulation (preview)
	ViewportWidth  float64       `mapstructure:"viewport-width"`
	ViewportHeight float64       `mapstructure:"viewport-height"`
	ScrollStep     float64       `mapstructure:"scroll-step"`
	ScrollInterval time.Duration `mapstructure:"scroll-interval"`
	LiveStats      bool          `mapstructure:"live-stats"`

	// Asset server
	ServeAddress string `mapstructure:"serve-address"`
	ImagesDir    string `mapstructure:"images-dir"`

	// Logging
	NoStdoutLogging  bool   `mapstructure:"no-stdout-log"`
	NoStderrLogging  bool   `mapstructure:"no-stderr-log"`
	NoColorLogging   bool   `mapstructure:"no-color-log"`
	JSON             bool   `mapstructure:"json"`
	StdoutLogLevel   string `mapstructure:"log-level"`
	LogFileLevel     string `mapstructure:"log-file-level"`
	LogFileOutputDir string `mapstructure:"log-file-output-dir"`
	LogFilePrefix    string `mapstructure:"log-file-prefix"`
	LogFileRotation  string `mapstructure:"log-file-rotation"`

	// API
	API     bool `mapstructure:"api"`
	APIPort int  `mapstructure:"api-port"`

	// Prometheus and metrics
	Prometheus       bool   `mapstructure:"prometheus"`
	PrometheusPrefix string `mapstructure:"prometheus-prefix"`

	Job string // Special field holding the gallery session name, used as a metrics label
}

var (
	config *Config
	once   sync.Once
)

// InitConfig initializes the configuration
// Flags -> Env -> Config file
// Latest has precedence over the rest
func InitConfig() error {
	var err error
	once.Do(func() {
		config = &Config{}

		setDefaults()

		// Check if a config file is provided via flag
		if configFile := viper.GetString("config"); configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				viper.AddConfigPath(home)
			}
			viper.SetConfigType("yaml")
			viper.SetConfigName("vitrine-config")
		}

		viper.SetEnvPrefix("VITRINE")
		replacer := strings.NewReplacer("-", "_", ".", "_")
		viper.SetEnvKeyReplacer(replacer)
		viper.AutomaticEnv()

		if readErr := viper.ReadInConfig(); readErr == nil {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		} else if viper.GetString("config") != "" {
			err = fmt.Errorf("unable to read config file: %w", readErr)
			return
		}

		// This function is used to bring logic to the flags when needed (e.g. live-stats)
		handleFlagsEdgeCases()

		// Unmarshal the config into the Config struct
		err = viper.Unmarshal(config)
		if err != nil {
			return
		}

		err = config.validate()
	})
	return err
}

// BindFlags binds the flags to the viper configuration
// This is needed because viper doesn't support same flag name accross multiple commands
// Details here: https://github.com/spf13/viper/issues/375#issuecomment-794668149
func BindFlags(flagSet *pflag.FlagSet) {
	flagSet.VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}

// Get returns the config struct
func Get() *Config {
	return config
}

func setDefaults() {
	viper.SetDefault("initial-batch-size", 40)
	viper.SetDefault("batch-size", 40)
	viper.SetDefault("proximity-threshold", 400.0)
	viper.SetDefault("item-width", 200.0)
	viper.SetDefault("item-height", 200.0)
	viper.SetDefault("max-concurrent-loads", 3)
	viper.SetDefault("retry-limit", 2)
	viper.SetDefault("retry-delay", time.Second)
	viper.SetDefault("http-timeout", 30*time.Second)
	viper.SetDefault("viewport-width", 1200.0)
	viper.SetDefault("viewport-height", 800.0)
	viper.SetDefault("scroll-step", 200.0)
	viper.SetDefault("scroll-interval", 250*time.Millisecond)
	viper.SetDefault("serve-address", "127.0.0.1:8000")
	viper.SetDefault("images-dir", "images_scraped")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-file-level", "info")
	viper.SetDefault("log-file-prefix", "vitrine")
	viper.SetDefault("api-port", 9443)
	viper.SetDefault("prometheus-prefix", "vitrine_")
}

func (c *Config) validate() error {
	if c.InitialBatchSize < 0 || c.BatchSize < 0 {
		return fmt.Errorf("%w: batch sizes must not be negative", ErrInvalidConfig)
	}

	if c.MaxConcurrentLoads < 0 || c.RetryLimit < 0 || c.RetryDelay < 0 {
		return fmt.Errorf("%w: loader options must not be negative", ErrInvalidConfig)
	}

	if c.ProximityThreshold < 0 {
		return fmt.Errorf("%w: proximity threshold must not be negative", ErrInvalidConfig)
	}

	return nil
}

func handleFlagsEdgeCases() {
	if viper.GetBool("live-stats") {
		// The live table owns the terminal
		viper.Set("no-stdout-log", true)
	}

	if viper.GetBool("prometheus") {
		viper.Set("api", true)
	}
}
