// Package config loads morfo settings: defaults, then an optional YAML file,
// then environment variables (a .env file is read first if present).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the CLI and the pipeline.
type Config struct {
	// DB is the SQLite resource database. Empty means the embedded
	// default resources are used.
	DB string `yaml:"db"`
	// Seed is a YAML resource file used instead of the database.
	Seed string `yaml:"seed"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// ContextRules enables the contextual resolver after the lexicon one.
	ContextRules bool `yaml:"context_rules"`
	// Workers bounds batch concurrency.
	Workers int `yaml:"workers"`
}

// Environment variables that override the file.
const (
	EnvDB           = "MORFO_DB"
	EnvSeed         = "MORFO_SEED"
	EnvLogLevel     = "MORFO_LOG_LEVEL"
	EnvContextRules = "MORFO_CONTEXT_RULES"
	EnvWorkers      = "MORFO_WORKERS"
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Workers:  4,
	}
}

// Load builds a Config. path may be empty. envFiles default to ".env"; a
// missing env file is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	// Load environment variables from .env if present
	_ = godotenv.Load(envFiles...)

	cfg := Default()

	// Load from config file if available
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// Environment variables override config file
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	path, err := expandHome(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.DB = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		c.Seed = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvContextRules); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvContextRules, err)
		}
		c.ContextRules = b
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// expandHome expands a leading ~/ to the home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}
