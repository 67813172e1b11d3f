// Command legoworship-tui browses the song catalog and builds the site in
// a terminal user interface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kipyin/lego-songbook/internal/config"
	"github.com/kipyin/lego-songbook/internal/logging"
	"github.com/kipyin/lego-songbook/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath, envFile, logFile string

	cmd := &cobra.Command{
		Use:          "legoworship-tui",
		Short:        "Browse the song catalog and build the site",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := settings.ApplyEnv(envFile); err != nil {
				return err
			}

			// Log lines on stderr would corrupt the alternate screen.
			logger := zap.NewNop()
			if logFile != "" {
				logger, err = logging.New(logging.Options{
					Level:       settings.LogLevel,
					OutputPaths: []string{logFile},
				})
				if err != nil {
					return err
				}
			}
			defer func() { _ = logger.Sync() }()

			return tui.Run(settings, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "legoworship.toml", "Configuration file path")
	cmd.Flags().StringVar(&envFile, "env", ".env", "Environment file with LEGOWORSHIP_* variables")
	cmd.Flags().StringVar(&logFile, "log", "", "Write logs to this file")

	return cmd
}
