package config

import (
	"strings"

	"github.com/pkg/errors"
)

func (c *Config) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.Wrap(err, "logging")
	}
	if err := c.Metrics.Validate(); err != nil {
		return errors.Wrap(err, "metrics")
	}
	return nil
}

func (t *TargetConfig) Validate() error {
	if t.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %v", t.Timeout)
	}
	if t.Interval < 0 {
		return errors.Errorf("interval must not be negative, got %v", t.Interval)
	}
	if t.Count < 0 {
		return errors.Errorf("count must not be negative, got %d", t.Count)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return errors.Errorf("invalid log level %q", l.Level)
	}
	if l.Format != "json" && l.Format != "text" {
		return errors.Errorf("invalid log format %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("output must be set")
	}
	return nil
}

func (m *MetricsConfig) Validate() error {
	if !m.Enabled {
		return nil
	}
	if m.Addr == "" {
		return errors.New("addr must be set when metrics are enabled")
	}
	if !strings.HasPrefix(m.Path, "/") {
		return errors.Errorf("path must start with /, got %q", m.Path)
	}
	return nil
}
