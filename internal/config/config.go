// Package config provides configuration management for hybridview with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete configuration for hybridview.
type Config struct {
	Hybrid  HybridConfig  `mapstructure:"hybrid" yaml:"hybrid"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// HybridConfig holds the rendering-coordinator configuration.
type HybridConfig struct {
	// AlwaysEmbedded forces Proxy mode for every URL, regardless of the
	// curated site list or a caller-requested mode.
	AlwaysEmbedded bool `mapstructure:"always_embedded" yaml:"always_embedded"`
	// ProxyPort is the port the local rewriting proxy listens on.
	ProxyPort int `mapstructure:"proxy_port" yaml:"proxy_port"`
	// ToolbarHeight is the vertical offset, in pixels, reserved for the host
	// window chrome when deriving overlay window bounds.
	ToolbarHeight int `mapstructure:"toolbar_height" yaml:"toolbar_height"`
	// NativeSites are extra classifier rules merged with the built-in list.
	NativeSites []NativeSiteRule `mapstructure:"native_sites" yaml:"native_sites"`
}

// NativeSiteRule declares a site that needs an OS-native overlay window.
type NativeSiteRule struct {
	Domain     string `mapstructure:"domain" yaml:"domain"`
	PathPrefix string `mapstructure:"path_prefix" yaml:"path_prefix"`
	Reason     string `mapstructure:"reason" yaml:"reason"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Supports yaml, json, toml automatically
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("HYBRIDVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"hybrid.always_embedded": "HYBRID_ALWAYS_EMBEDDED",
		"hybrid.proxy_port":      "HYBRID_PROXY_PORT",
		"hybrid.toolbar_height":  "HYBRID_TOOLBAR_HEIGHT",
		"logging.level":          "LOGGING_LEVEL",
		"logging.format":         "LOGGING_FORMAT",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, "HYBRIDVIEW_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and environment apply.
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// validate rejects configurations that would break the subsystem at runtime.
// Applied on every load and reload, so a live file edit cannot install values
// the initial load would have refused.
func validate(config *Config) error {
	if config.Hybrid.ProxyPort <= 0 || config.Hybrid.ProxyPort > 65535 {
		return fmt.Errorf("invalid hybrid.proxy_port: %d", config.Hybrid.ProxyPort)
	}
	if config.Hybrid.ToolbarHeight < 0 {
		return fmt.Errorf("invalid hybrid.toolbar_height: %d", config.Hybrid.ToolbarHeight)
	}
	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil // Already watching
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload re-reads and re-unmarshals the configuration.
func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to re-read config file: %w", err)
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// GetConfigDir returns the directory where the config file lives.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, "hybridview"), nil
}
