package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Target.Host)
	assert.Equal(t, time.Second, cfg.Target.Timeout)
	assert.Equal(t, time.Second, cfg.Target.Interval)
	assert.Equal(t, 0, cfg.Target.Count)
	assert.False(t, cfg.Target.VerifyChecksum)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echoping.yaml")
	content := `
target:
  host: example.com
  timeout: 250ms
  interval: 2s
  count: 5
  verify_checksum: true
logging:
  level: debug
  format: json
metrics:
  enabled: true
  addr: 127.0.0.1:9100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Target.Host)
	assert.Equal(t, 250*time.Millisecond, cfg.Target.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Target.Interval)
	assert.Equal(t, 5, cfg.Target.Count)
	assert.True(t, cfg.Target.VerifyChecksum)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ECHOPING_TARGET_HOST", "10.1.2.3")
	t.Setenv("ECHOPING_TARGET_TIMEOUT", "3s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3", cfg.Target.Host)
	assert.Equal(t, 3*time.Second, cfg.Target.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Target:  TargetConfig{Timeout: time.Second, Interval: time.Second},
			Logging: LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
			Metrics: MetricsConfig{Enabled: true, Addr: ":9427", Path: "/metrics"},
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "negative timeout", modify: func(c *Config) { c.Target.Timeout = -time.Second }, errMsg: "timeout must not be negative"},
		{name: "negative interval", modify: func(c *Config) { c.Target.Interval = -1 }, errMsg: "interval must not be negative"},
		{name: "negative count", modify: func(c *Config) { c.Target.Count = -1 }, errMsg: "count must not be negative"},
		{name: "bad level", modify: func(c *Config) { c.Logging.Level = "loud" }, errMsg: "invalid log level"},
		{name: "bad format", modify: func(c *Config) { c.Logging.Format = "xml" }, errMsg: "invalid log format"},
		{name: "no output", modify: func(c *Config) { c.Logging.Output = "" }, errMsg: "output must be set"},
		{name: "metrics without addr", modify: func(c *Config) { c.Metrics.Addr = "" }, errMsg: "addr must be set"},
		{name: "metrics bad path", modify: func(c *Config) { c.Metrics.Path = "metrics" }, errMsg: "path must start with /"},
		{name: "metrics disabled", modify: func(c *Config) { c.Metrics = MetricsConfig{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
