// Package cmd provides Cobra CLI commands for hybridview.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hybridview/hybridview/internal/config"
	"github.com/hybridview/hybridview/internal/logging"
)

var (
	cfgManager *config.Manager
	cfg        *config.Config
	log        zerolog.Logger

	rootCmd = &cobra.Command{
		Use:   "hybridview",
		Short: "Hybrid content-rendering coordinator for tabbed browsing",
		Long: `Hybridview decides, per navigation, whether a browsing tab renders through
the embedded sandboxed proxy channel or through an OS-native overlay window,
and manages the lifecycle of native windows bound to tab identifiers.

The subcommands expose the decision pipeline for inspection: classify a URL
against the curated native-site list, or print the proxy-rewritten URL the
embedded surface would load.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			cfgManager, err = config.NewManager()
			if err != nil {
				return fmt.Errorf("initialize config: %w", err)
			}
			if err := cfgManager.Load(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = cfgManager.Get()

			log = logging.New(logging.Config{
				Level:      logging.ParseLevel(cfg.Logging.Level),
				Format:     cfg.Logging.Format,
				TimeFormat: logging.DefaultConfig().TimeFormat,
			})
			cmd.SetContext(logging.WithContext(cmd.Context(), log))
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
