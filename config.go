package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the host settings. Gameplay tuning lives in tuning.go.
type Config struct {
	Addr          string        `yaml:"addr"`
	ClientDir     string        `yaml:"client_dir"`
	DBPath        string        `yaml:"db_path"`
	LogLevel      string        `yaml:"log_level"`
	TickRate      int           `yaml:"tick_rate"`
	BroadcastRate int           `yaml:"broadcast_rate"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
	MaxSessions   int           `yaml:"max_sessions"`
	Seed          int64         `yaml:"seed"`
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		ClientDir:     "../client",
		DBPath:        "arena.db",
		LogLevel:      "info",
		TickRate:      60,
		BroadcastRate: 30,
		MaxFrameDelta: DefaultMaxFrameDelta,
		MaxSessions:   100,
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the host cannot run with
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.TickRate <= 0 || c.TickRate > 1000 {
		return fmt.Errorf("tick_rate %d out of range (1..1000)", c.TickRate)
	}
	if c.BroadcastRate <= 0 {
		return fmt.Errorf("broadcast_rate %d must be positive", c.BroadcastRate)
	}
	if c.MaxFrameDelta <= 0 {
		return fmt.Errorf("max_frame_delta %s must be positive", c.MaxFrameDelta)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max_sessions %d must not be negative", c.MaxSessions)
	}
	return nil
}

// SessionOptions returns the per-session settings
func (c Config) SessionOptions() SessionOptions {
	return SessionOptions{
		TickRate:      c.TickRate,
		BroadcastRate: c.BroadcastRate,
		MaxFrameDelta: c.MaxFrameDelta,
		Seed:          c.Seed,
	}
}
