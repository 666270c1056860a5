// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vaulter-dev/vaulter/lib/fault"
)

// Environment variables consulted by Load.
const (
	// EnvConfig names the config file when no --config flag is given.
	EnvConfig = "VAULTER_CONFIG"

	// EnvDatabasePath overrides database.path from the file.
	EnvDatabasePath = "VAULTER_DB_PATH"
)

// Config is the vaulter configuration.
type Config struct {
	// Database configures the secret store file.
	Database DatabaseConfig `yaml:"database"`

	// Clipboard configures clipboard delivery for "get".
	Clipboard ClipboardConfig `yaml:"clipboard"`

	// Log configures the CLI logger.
	Log LogConfig `yaml:"log"`
}

// DatabaseConfig configures the secret store file.
type DatabaseConfig struct {
	// Path is the SQLite database file. ${HOME} and ${VAR:-default}
	// patterns are expanded.
	// Default: <data-local-dir>/vaulter/vault.db
	Path string `yaml:"path"`

	// BusyTimeout bounds the wait for a lock held by another vaulter
	// process.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ClipboardConfig configures clipboard delivery.
type ClipboardConfig struct {
	// Tools replaces the platform's built-in helper list. The first
	// tool found in PATH is used.
	Tools []ToolConfig `yaml:"tools"`
}

// ToolConfig names a clipboard helper that reads the text from stdin.
type ToolConfig struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the default configuration, used as the base that a
// config file and environment overrides are applied to.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        DefaultDatabasePath(),
			BusyTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultDatabasePath returns vault.db under the platform's per-user
// data directory.
func DefaultDatabasePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(dataLocalDir(runtime.GOOS, os.Getenv, homeDir), "vaulter", "vault.db")
}

// dataLocalDir returns the per-user, non-roaming data directory:
// $XDG_DATA_HOME or ~/.local/share on Unix, ~/Library/Application
// Support on macOS, %LOCALAPPDATA% on Windows.
func dataLocalDir(goos string, getenv func(string) string, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support")
	case "windows":
		if dir := getenv("LOCALAPPDATA"); dir != "" {
			return dir
		}
		return filepath.Join(homeDir, "AppData", "Local")
	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(homeDir, ".local", "share")
	}
}

// Load returns the effective configuration. path is the --config flag
// value; when empty, VAULTER_CONFIG is consulted. With neither set the
// defaults are used, so a config file is optional. A named file that
// cannot be read or parsed is an error.
//
// VAULTER_DB_PATH is applied last and overrides database.path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path == "" {
		cfg := Default()
		cfg.applyEnvironment()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, then applies
// environment overrides and variable expansion.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fault.Config("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fault.Config("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironment applies VAULTER_DB_PATH and expands variables in
// the database path.
func (c *Config) applyEnvironment() {
	if path := os.Getenv(EnvDatabasePath); path != "" {
		c.Database.Path = path
	}

	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Database.Path = expandVars(c.Database.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// SlogLevel returns the configured level as a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	switch l.Level {
	case "debug", "info", "warn", "error":
		if err := level.UnmarshalText([]byte(l.Level)); err != nil {
			return 0, err
		}
		return level, nil
	default:
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", l.Level)
	}
}

// Validate checks the configuration for errors. All problems are
// reported together as a fault.KindConfig error.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Path == "" {
		errs = append(errs, fmt.Errorf("database.path is required"))
	}

	if c.Database.BusyTimeout <= 0 {
		errs = append(errs, fmt.Errorf("database.busy_timeout must be positive (got %s)", c.Database.BusyTimeout))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	for i, tool := range c.Clipboard.Tools {
		if tool.Name == "" {
			errs = append(errs, fmt.Errorf("clipboard.tools[%d].name is required", i))
		}
	}

	if len(errs) > 0 {
		return fault.New(fault.KindConfig, errors.Join(errs...))
	}
	return nil
}

// EnsureDatabaseDir creates the database file's parent directory,
// readable only by the owner, and returns the database path.
func (c *Config) EnsureDatabaseDir() (string, error) {
	directory := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return "", fault.Store("failed to create database directory %s: %w", directory, err)
	}
	return c.Database.Path, nil
}
