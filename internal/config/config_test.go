package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir, which needs Go 1.24; the build toolchain is
// older, so switch directories by hand and restore on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	// Run from an empty directory so a developer's local config.yaml cannot
	// leak into the test.
	chdir(t, t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)
	return m
}

func TestLoadDefaults(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.False(t, cfg.Hybrid.AlwaysEmbedded)
	assert.Equal(t, DefaultProxyPort, cfg.Hybrid.ProxyPort)
	assert.Equal(t, DefaultToolbarHeight, cfg.Hybrid.ToolbarHeight)
	assert.Empty(t, cfg.Hybrid.NativeSites)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	content := []byte(`hybrid:
  always_embedded: true
  proxy_port: 8123
  toolbar_height: 120
  native_sites:
    - domain: intranet.example.com
      path_prefix: /video
      reason: internal streaming portal
logging:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.True(t, cfg.Hybrid.AlwaysEmbedded)
	assert.Equal(t, 8123, cfg.Hybrid.ProxyPort)
	assert.Equal(t, 120, cfg.Hybrid.ToolbarHeight)
	require.Len(t, cfg.Hybrid.NativeSites, 1)
	assert.Equal(t, NativeSiteRule{
		Domain:     "intranet.example.com",
		PathPrefix: "/video",
		Reason:     "internal streaming portal",
	}, cfg.Hybrid.NativeSites[0])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HYBRIDVIEW_HYBRID_ALWAYS_EMBEDDED", "true")
	t.Setenv("HYBRIDVIEW_HYBRID_PROXY_PORT", "7000")
	t.Setenv("HYBRIDVIEW_LOGGING_LEVEL", "warn")

	m := newTestManager(t)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.True(t, cfg.Hybrid.AlwaysEmbedded)
	assert.Equal(t, 7000, cfg.Hybrid.ProxyPort)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Unset values keep their defaults.
	assert.Equal(t, DefaultToolbarHeight, cfg.Hybrid.ToolbarHeight)
}

func TestLoadRejectsInvalidProxyPort(t *testing.T) {
	t.Setenv("HYBRIDVIEW_HYBRID_PROXY_PORT", "70000")

	m := newTestManager(t)
	err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy_port")
}

func TestLoadRejectsNegativeToolbarHeight(t *testing.T) {
	t.Setenv("HYBRIDVIEW_HYBRID_TOOLBAR_HEIGHT", "-1")

	m := newTestManager(t)
	err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toolbar_height")
}

func TestReloadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hybrid:\n  proxy_port: 8123\n"), 0o644))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	// A live edit to an out-of-range port must not replace the running config.
	require.NoError(t, os.WriteFile(path, []byte("hybrid:\n  proxy_port: 70000\n"), 0o644))
	err = m.reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy_port")
	assert.Equal(t, 8123, m.Get().Hybrid.ProxyPort)
}

func TestWatchReloadsAndNotifies(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hybrid:\n  toolbar_height: 180\n"), 0o644))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	updated := make(chan *Config, 8)
	m.OnConfigChange(func(c *Config) {
		select {
		case updated <- c:
		default:
		}
	})
	require.NoError(t, m.Watch())
	// Watching twice is a no-op, not a second watcher.
	require.NoError(t, m.Watch())

	require.NoError(t, os.WriteFile(path, []byte("hybrid:\n  toolbar_height: 120\n"), 0o644))

	// The watcher can fire more than once per write; wait for the callback
	// that carries the new value.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-updated:
			if c.Hybrid.ToolbarHeight == 120 {
				assert.Equal(t, 120, m.Get().Hybrid.ToolbarHeight)
				return
			}
		case <-deadline:
			t.Fatal("config change callback never delivered the new value")
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Load())

	cfg := m.Get()
	cfg.Hybrid.ProxyPort = 1

	assert.Equal(t, DefaultProxyPort, m.Get().Hybrid.ProxyPort)
}
