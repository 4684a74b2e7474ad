// Package config loads server startup configuration, following the
// teacher's fallback-chain pattern (main.go's tryLoadConfig): try an
// explicit path, then a couple of conventional locations, skipping each
// miss without logging or failing, and falling back to an in-process
// default.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DefaultLogPath is the well-known append-only log path (spec §6).
const DefaultLogPath = "/tmp/rls_log.txt"

// DefaultDeadline is the bounded-latency executor's deadline (spec §4.5,
// RUSTW_TIMEOUT).
const DefaultDeadline = 500 * time.Millisecond

// Config holds every value the core's ambient stack needs at startup.
type Config struct {
	LogPath         string        `yaml:"log_path"`
	LogLevel        string        `yaml:"log_level"`
	RequestDeadline time.Duration `yaml:"request_deadline"`
	BuildCommand    string        `yaml:"build_command"`
	BuildArgs       []string      `yaml:"build_args"`
	WatchExtensions []string      `yaml:"watch_extensions"`
	WatchInterval   time.Duration `yaml:"watch_interval"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		LogPath:         DefaultLogPath,
		LogLevel:        "information",
		RequestDeadline: DefaultDeadline,
		BuildCommand:    "",
		BuildArgs:       nil,
		WatchExtensions: []string{".src"},
		WatchInterval:   30 * time.Second,
	}
}

// rawConfig mirrors Config but allows request_deadline/watch_interval to
// be given as either a duration string ("500ms") or a bare number of
// milliseconds, coerced via spf13/cast rather than bespoke parsing code.
type rawConfig struct {
	LogPath         string   `yaml:"log_path"`
	LogLevel        string   `yaml:"log_level"`
	RequestDeadline any      `yaml:"request_deadline"`
	BuildCommand    string   `yaml:"build_command"`
	BuildArgs       []string `yaml:"build_args"`
	WatchExtensions []string `yaml:"watch_extensions"`
	WatchInterval   any      `yaml:"watch_interval"`
}

// Load tries path, then each of the fallback paths in order, returning the
// first one that parses. If none do, it returns Default() and a nil error
// — a missing config file is not fatal (matching the teacher's "Using
// minimal default configuration" notice).
func Load(path string, fallbacks ...string) (Config, error) {
	candidates := append([]string{path}, fallbacks...)

	for _, p := range candidates {
		if p == "" {
			continue
		}
		cfg, err := loadFile(p)
		if err == nil {
			return cfg, nil
		}
	}
	return Default(), nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg := Default()
	if raw.LogPath != "" {
		cfg.LogPath = raw.LogPath
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.BuildCommand != "" {
		cfg.BuildCommand = raw.BuildCommand
	}
	if raw.BuildArgs != nil {
		cfg.BuildArgs = raw.BuildArgs
	}
	if raw.WatchExtensions != nil {
		cfg.WatchExtensions = raw.WatchExtensions
	}
	if raw.RequestDeadline != nil {
		if d, err := coerceDuration(raw.RequestDeadline); err == nil {
			cfg.RequestDeadline = d
		}
	}
	if raw.WatchInterval != nil {
		if d, err := coerceDuration(raw.WatchInterval); err == nil {
			cfg.WatchInterval = d
		}
	}
	return cfg, nil
}

// coerceDuration accepts either a Go duration string ("500ms") or a bare
// number, interpreted as milliseconds, via spf13/cast.
func coerceDuration(v any) (time.Duration, error) {
	if s, err := cast.ToStringE(v); err == nil {
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
	}
	ms, err := cast.ToInt64E(v)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
