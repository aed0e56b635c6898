// Package config loads the engine configuration from a TOML file.
package config

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// AssetRoot is the directory indexed and watched by the asset manager.
	AssetRoot string `toml:"asset_root"`
	// Workers is the size of the job system's worker pool.
	Workers int `toml:"workers"`
	// QueueSize caps each of the job system's priority queues.
	QueueSize int `toml:"queue_size"`
	// HTTPTimeoutSeconds bounds remote fetches. The loaders themselves
	// implement no timeouts.
	HTTPTimeoutSeconds int `toml:"http_timeout_seconds"`
	// LogLevel: debug, info, warn, error or fatal.
	LogLevel string `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		AssetRoot:          "assets",
		Workers:            4,
		QueueSize:          64,
		HTTPTimeoutSeconds: 30,
		LogLevel:           "debug",
	}
}

// Load reads the TOML file at path. A missing file yields the defaults;
// fields absent from the file keep their default values too.
func Load(path string) (*Config, error) {
	cfg := Default()

	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(buf, cfg); err != nil {
		return nil, err
	}

	defaults := Default()
	if cfg.AssetRoot == "" {
		cfg.AssetRoot = defaults.AssetRoot
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = defaults.HTTPTimeoutSeconds
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	return cfg, nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
