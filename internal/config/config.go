// Package config loads the civmap YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all civmap configuration
type Config struct {
	Map      MapConfig      `yaml:"map"`
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Log      LogConfig      `yaml:"log"`
}

// MapConfig selects the map file and seed
type MapConfig struct {
	Dir        string `yaml:"dir"`
	Resource   string `yaml:"resource"`
	Seed       int    `yaml:"seed"`
	Synthesize bool   `yaml:"synthesize"` // generate a map when the resource is missing
}

// DatabaseConfig holds the SQLite location. Empty disables storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// APIConfig holds HTTP API settings
type APIConfig struct {
	Port int `yaml:"port"` // 0 disables the API
	// TrustProxy keys rate limits on X-Forwarded-For. Enable only behind a
	// proxy that sets the header.
	TrustProxy bool `yaml:"trust_proxy"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Map.Synthesize = true
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	if cfg.Map.Seed < 0 {
		return nil, fmt.Errorf("map seed must be non-negative, got %d", cfg.Map.Seed)
	}
	return &cfg, nil
}

// Set defaults if not provided
func (cfg *Config) applyDefaults() {
	if cfg.Map.Dir == "" {
		cfg.Map.Dir = "data"
	}
	if cfg.Map.Resource == "" {
		cfg.Map.Resource = "MAP.PIC"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}
