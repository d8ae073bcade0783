package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hybridview/hybridview/internal/hybrid"
)

var proxyURLCmd = &cobra.Command{
	Use:   "proxy-url <url>",
	Short: "Print the proxy-rewritten URL for a target",
	Long: `Print the URL the embedded surface would load for the given target,
rewritten through the local proxy on the configured port.`,
	Args: cobra.ExactArgs(1),
	RunE: runProxyURL,
}

func init() {
	rootCmd.AddCommand(proxyURLCmd)
}

func runProxyURL(_ *cobra.Command, args []string) error {
	fmt.Println(hybrid.BuildProxyURL(args[0], cfg.Hybrid.ProxyPort))
	return nil
}
