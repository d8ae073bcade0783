package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hybridview/hybridview/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print the effective configuration after defaults, file, and environment.`,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("config dir:       %s\n", configDir)
	fmt.Printf("always_embedded:  %t\n", cfg.Hybrid.AlwaysEmbedded)
	fmt.Printf("proxy_port:       %d\n", cfg.Hybrid.ProxyPort)
	fmt.Printf("toolbar_height:   %d\n", cfg.Hybrid.ToolbarHeight)
	fmt.Printf("logging:          %s/%s\n", cfg.Logging.Level, cfg.Logging.Format)

	if len(cfg.Hybrid.NativeSites) == 0 {
		fmt.Println("native_sites:     (built-in list only)")
		return nil
	}
	fmt.Println("native_sites:")
	for _, s := range cfg.Hybrid.NativeSites {
		fmt.Printf("  - %s%s", s.Domain, s.PathPrefix)
		if s.Reason != "" {
			fmt.Printf(" (%s)", s.Reason)
		}
		fmt.Println()
	}
	return nil
}
