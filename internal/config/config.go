// Package config loads pinboard's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pinboard/internal/geometry"
	"pinboard/internal/history"
)

const dirName = ".pinboard"

// Config represents the application configuration.
type Config struct {
	Store     StoreConfig     `toml:"store"`
	Placement PlacementConfig `toml:"placement"`
	History   HistoryConfig   `toml:"history"`
	Gesture   GestureConfig   `toml:"gesture"`
	Export    ExportConfig    `toml:"export"`
	App       AppConfig       `toml:"app"`
}

type StoreConfig struct {
	Path string `toml:"path"` // SQLite database file
}

// PlacementConfig tunes the free-spot search for new cards.
type PlacementConfig struct {
	Step        float64 `toml:"step"`         // Diagonal step in cells
	MaxAttempts int     `toml:"max_attempts"` // Steps before giving up
}

type HistoryConfig struct {
	Limit int `toml:"limit"` // Undo entries kept
}

type GestureConfig struct {
	LongPress string `toml:"long_press"` // Press-and-hold delay (e.g., "450ms")
}

type ExportConfig struct {
	Directory string `toml:"directory"` // Where exports are written; empty means the working directory
}

type AppConfig struct {
	Debug   bool   `toml:"debug"`
	LogFile string `toml:"log_file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	base := baseDir()
	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(base, "pinboard.db"),
		},
		Placement: PlacementConfig{
			Step:        geometry.DefaultStep,
			MaxAttempts: geometry.DefaultMaxAttempts,
		},
		History: HistoryConfig{
			Limit: history.DefaultLimit,
		},
		Gesture: GestureConfig{
			LongPress: "450ms",
		},
		App: AppConfig{
			LogFile: filepath.Join(base, "pinboard.log"),
		},
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// DefaultPath returns ~/.pinboard/config.toml.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.toml")
}

// Load reads the configuration at path. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Export.Directory = expandHome(cfg.Export.Directory)
	cfg.App.LogFile = expandHome(cfg.App.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return errors.New("store path cannot be empty")
	}
	if c.Placement.Step <= 0 {
		return fmt.Errorf("placement step must be positive: %v", c.Placement.Step)
	}
	if c.Placement.MaxAttempts < 1 {
		return fmt.Errorf("placement max_attempts must be at least 1: %d", c.Placement.MaxAttempts)
	}
	if c.History.Limit < 1 {
		return fmt.Errorf("history limit must be at least 1: %d", c.History.Limit)
	}
	d, err := time.ParseDuration(c.Gesture.LongPress)
	if err != nil {
		return fmt.Errorf("invalid long press %q: %w", c.Gesture.LongPress, err)
	}
	if d <= 0 {
		return fmt.Errorf("long press must be positive: %s", d)
	}
	return nil
}

// LongPress returns the long-press delay. Call Validate first.
func (c *Config) LongPress() time.Duration {
	d, _ := time.ParseDuration(c.Gesture.LongPress)
	return d
}

func (c *Config) Placer() geometry.Placer {
	return geometry.Placer{Step: c.Placement.Step, MaxAttempts: c.Placement.MaxAttempts}
}

// GetSavePath returns where an export named filename is written.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.Export.Directory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return filepath.Join(c.Export.Directory, filename), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
