package cmd

import (
	"fmt"
	"time"

	"github.com/internetarchive/Vitrine/internal/pkg/api"
	"github.com/internetarchive/Vitrine/internal/pkg/config"
	"github.com/internetarchive/Vitrine/internal/pkg/log"
	"github.com/internetarchive/Vitrine/internal/pkg/stats"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Progressive gallery renderer",
	Long: `Vitrine renders very large image galleries batch by batch as the viewer
scrolls, and loads the image behind every item with bounded concurrency,
retries and a placeholder fallback.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config here, after cobra has parsed command line flags
		config.BindFlags(cmd.Flags())
		if err := config.InitConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		if err := log.Start(); err != nil {
			return fmt.Errorf("error starting logger: %w", err)
		}

		if err := stats.Init(); err != nil {
			return fmt.Errorf("error initializing stats: %w", err)
		}

		if config.Get().Prometheus {
			if err := stats.InitPrometheus(config.Get().PrometheusPrefix, config.Get().Job); err != nil {
				return fmt.Errorf("error initializing prometheus: %w", err)
			}
		}

		if config.Get().API {
			if err := api.Start(); err != nil {
				return fmt.Errorf("error starting API: %w", err)
			}
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if config.Get() != nil && config.Get().API {
			if err := api.Stop(5 * time.Second); err != nil {
				log.Error("error stopping API", "err", err.Error())
			}
		}
		log.Stop()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Run the root command
func Run() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Define flags and configuration settings
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/vitrine-config.yaml)")
	rootCmd.PersistentFlags().String("job", "", "Name of the gallery session, used as a metrics label.")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "info", "stdout log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json", false, "Output logs in JSON.")
	rootCmd.PersistentFlags().Bool("no-stdout-log", false, "Disable stdout logging.")
	rootCmd.PersistentFlags().Bool("no-stderr-log", false, "Disable stderr logging.")
	rootCmd.PersistentFlags().Bool("no-color-log", false, "Disable colors in stdout/stderr logs.")
	rootCmd.PersistentFlags().String("log-file-output-dir", "", "Directory to write log files to, no log file when empty.")
	rootCmd.PersistentFlags().String("log-file-level", "info", "log file log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file-prefix", "vitrine", "Prefix of the log files.")
	rootCmd.PersistentFlags().String("log-file-rotation", "", "Log file rotation period (e.g. 1h, 24h), no rotation when empty.")

	// API flags
	rootCmd.PersistentFlags().Bool("api", false, "Serve the status API.")
	rootCmd.PersistentFlags().Int("api-port", 9443, "Port to listen on for the API.")
	rootCmd.PersistentFlags().Bool("prometheus", false, "Export metrics in Prometheus format, using this setting imply --api.")
	rootCmd.PersistentFlags().String("prometheus-prefix", "vitrine_", "String used as a prefix for the exported Prometheus metrics.")

	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd.Execute()
}
