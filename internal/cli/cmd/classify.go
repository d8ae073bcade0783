package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hybridview/hybridview/internal/config"
	"github.com/hybridview/hybridview/internal/hybrid"
	"github.com/hybridview/hybridview/internal/logging"
)

var classifyForceMode string

var classifyCmd = &cobra.Command{
	Use:   "classify <url>",
	Short: "Show the rendering mode a URL would get",
	Long: `Run a URL through the mode decision pipeline and print the effective
rendering mode, honoring the always_embedded override and the curated
native-site list from configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyForceMode, "force", "", "force a mode (native|proxy) as a caller would")
}

func runClassify(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx := logging.WithComponent(cmd.Context(), "cli")
	logger := logging.FromContext(ctx)

	forced := hybrid.ModeAuto
	switch classifyForceMode {
	case "":
	case "native":
		forced = hybrid.ModeNative
	case "proxy":
		forced = hybrid.ModeProxy
	default:
		return fmt.Errorf("invalid --force value %q (want native or proxy)", classifyForceMode)
	}

	classifier := hybrid.NewSiteClassifier(extraSiteRules(cfg)...)
	policy := hybrid.NewPolicy(cfg.Hybrid.AlwaysEmbedded, classifier)

	mode := policy.Decide(url, forced)
	logger.Debug().Str("url", url).Str("mode", string(mode)).Msg("classified url")
	fmt.Printf("mode: %s\n", mode)

	if rule, ok := classifier.Match(url); ok {
		fmt.Printf("native-required: %s", rule.Domain)
		if rule.PathPrefix != "" {
			fmt.Printf("%s*", rule.PathPrefix)
		}
		fmt.Printf(" (%s)\n", rule.Reason)
	}
	if cfg.Hybrid.AlwaysEmbedded {
		fmt.Println("note: always_embedded override is active")
	}
	return nil
}

// extraSiteRules converts configured native-site entries into classifier rules.
func extraSiteRules(c *config.Config) []hybrid.SiteRule {
	rules := make([]hybrid.SiteRule, 0, len(c.Hybrid.NativeSites))
	for _, s := range c.Hybrid.NativeSites {
		rules = append(rules, hybrid.SiteRule{
			Domain:     s.Domain,
			PathPrefix: s.PathPrefix,
			Reason:     s.Reason,
		})
	}
	return rules
}
