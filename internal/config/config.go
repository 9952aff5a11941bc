package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/planner/internal/core/deadline"
	"github.com/example/planner/internal/core/schedule"
	"github.com/example/planner/internal/fsutil"
)

// Backend constants
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Corrupt-data policies
const (
	OnCorruptEmpty = "empty" // start the project empty and warn
	OnCorruptAbort = "abort" // refuse to open the project
)

// HomeEnv overrides the planner home directory (default ~/.planner).
const HomeEnv = "PLANNER_HOME"

// Config represents the planner configuration file.
type Config struct {
	DataDir            string `yaml:"data_dir"`
	Backend            string `yaml:"backend"`         // "json" or "sqlite"
	DuplicateNames     string `yaml:"duplicate_names"` // "allow" or "reject"
	OnCorrupt          string `yaml:"on_corrupt"`      // "empty" or "abort"
	DeadlineWindowDays int    `yaml:"deadline_window_days"`
	LogLevel           string `yaml:"log_level"` // debug, info, warn, error
}

// Default returns the configuration used when no file exists.
func Default(home string) *Config {
	return &Config{
		DataDir:            home,
		Backend:            BackendJSON,
		DuplicateNames:     string(schedule.DuplicatesAllow),
		OnCorrupt:          OnCorruptEmpty,
		DeadlineWindowDays: deadline.DefaultWindowDays,
		LogLevel:           "warn",
	}
}

// Home returns the planner home directory.
// Resolution order: $PLANNER_HOME, then ~/.planner.
func Home() (string, error) {
	if h := os.Getenv(HomeEnv); h != "" {
		return h, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".planner"), nil
}

// Path returns the config file path inside a planner home directory.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// LoadConfig reads config.yaml from the home directory.
// A missing file yields the defaults; fields absent from the file keep their defaults.
func LoadConfig(home string) (*Config, error) {
	cfg := Default(home)

	data, err := os.ReadFile(Path(home))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", Path(home), err)
	}

	return cfg, nil
}

// SaveConfig writes config.yaml to the home directory.
func SaveConfig(home string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fsutil.WriteFileAtomic(Path(home), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks enumerated fields and ranges.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (expected %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	if _, err := schedule.ParseDuplicatePolicy(c.DuplicateNames); err != nil {
		return err
	}
	switch c.OnCorrupt {
	case OnCorruptEmpty, OnCorruptAbort:
	default:
		return fmt.Errorf("unknown on_corrupt policy %q (expected %s or %s)", c.OnCorrupt, OnCorruptEmpty, OnCorruptAbort)
	}
	if c.DeadlineWindowDays < 0 {
		return fmt.Errorf("deadline_window_days cannot be negative (got %d)", c.DeadlineWindowDays)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a level name to a slog level. Empty means warn.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log_level %q", s)
}
