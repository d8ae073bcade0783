package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build-time variables (set via ldflags from main).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// SetBuildInfo records build metadata passed in from main.
func SetBuildInfo(v, c, d string) {
	version, commit, buildDate = v, c, d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("hybridview %s (%s, built %s, %s)\n", version, commit, buildDate, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
