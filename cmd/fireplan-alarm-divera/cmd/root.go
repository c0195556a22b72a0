package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/config"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/service/bridge"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/version"
)

var (
	// configPath stores the path to the settings YAML file.
	configPath string
	// logLevel selects the minimum level emitted by the global logger.
	logLevel string

	// rootCmd represents the base command for running the alarm bridge.
	rootCmd = &cobra.Command{
		Use:   "fireplan-alarm-divera [listen-address]",
		Short: "Bridge DIVERA 24/7 alarm webhooks to Fireplan.",
		Long: `Starts the alarm bridge that accepts DIVERA 24/7 webhook calls and
submits the alarms to Fireplan.

The bridge listens on the address from the settings file, extracts the alarm
fields with the configured expressions, resolves pager identifiers from the
identifier catalogue and posts one Fireplan record per resolved identifier.
Listen address can be provided as argument to override the settings
(e.g., :8443, 0.0.0.0:8443).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			level, known := logger.ParseLogLevel(logLevel)
			if !known {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on settings.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &bridge.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
			}

			return bridge.Run(ctx, options)
		},
	}
)

// Execute runs the fireplan-alarm-divera CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error, fatal)")
}
