package config

// Default values for the hybrid rendering coordinator.
const (
	// DefaultProxyPort matches the port the bundled rewriting proxy binds by default.
	DefaultProxyPort = 9876
	// DefaultToolbarHeight is the pixel height of the host window chrome
	// (tab strip + toolbar) that overlay windows must sit below.
	DefaultToolbarHeight = 180
)

// setDefaults applies default values to viper before reading the config file.
func (m *Manager) setDefaults() {
	m.viper.SetDefault("hybrid.always_embedded", false)
	m.viper.SetDefault("hybrid.proxy_port", DefaultProxyPort)
	m.viper.SetDefault("hybrid.toolbar_height", DefaultToolbarHeight)
	m.viper.SetDefault("hybrid.native_sites", []NativeSiteRule{})

	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.format", "console")
}
