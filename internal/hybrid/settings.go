package hybrid

import "github.com/hybridview/hybridview/internal/config"

// ApplyConfig pushes the runtime-tunable settings from a freshly loaded
// configuration into the coordinator. Register it with
// config.Manager.OnConfigChange:
//
//	manager.OnConfigChange(func(c *config.Config) { coordinator.ApplyConfig(c) })
//
// A live edit of always_embedded or toolbar_height then takes effect on the
// next navigation. Changed native_sites rules need a new coordinator; the
// classifier rule set is fixed at construction.
func (c *Coordinator) ApplyConfig(cfg *config.Config) {
	c.SetAlwaysEmbedded(cfg.Hybrid.AlwaysEmbedded)
	c.SetToolbarHeight(cfg.Hybrid.ToolbarHeight)

	c.log.Debug().
		Bool("always_embedded", cfg.Hybrid.AlwaysEmbedded).
		Int("toolbar_height", cfg.Hybrid.ToolbarHeight).
		Msg("applied reloaded config")
}
