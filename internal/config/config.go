// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultTheme    = "nord"
	DefaultLogLevel = "warn"
)

// Config holds the full configuration for tido.
type Config struct {
	// DataDir holds the tasks file, the log file, and the instance lock.
	DataDir string `toml:"data_dir"`

	// Theme is the starting color theme (nord, dracula, gruvbox).
	Theme string `toml:"theme"`

	// Notifications controls desktop notifications on add and delete.
	Notifications bool `toml:"notifications"`

	// LogLevel is the minimum level written to the log file
	// (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:       defaultDataDir(),
		Theme:         DefaultTheme,
		Notifications: true,
		LogLevel:      DefaultLogLevel,
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tido", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tido", "config.toml")
	}
	return filepath.Join(home, ".config", "tido", "config.toml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tido"
	}
	return filepath.Join(home, ".local", "share", "tido")
}

// Load reads the config file at path, layering it over the defaults.
// A missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return cfg, nil
}

// SlotPath returns the tasks file path under the data dir
func (c *Config) SlotPath() string {
	return filepath.Join(c.DataDir, "tasks.json")
}

// LogPath returns the log file path under the data dir
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "tido.log")
}

// LockPath returns the single-instance lock path under the data dir
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "tido.lock")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
