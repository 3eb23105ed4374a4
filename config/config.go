// Package config carries the runtime configuration for the explorer
// service: defaults first, then an optional YAML file, then environment
// overrides. A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all service settings.
type Config struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RateLimit is the sustained request rate per second across all
	// clients; RateBurst is the token bucket depth.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	PresetDBPath string `yaml:"preset_db_path"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:            ":8050",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       50,
		RateBurst:       100,
		PresetDBPath:    "presets.db",
		LogLevel:        "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty the file must exist; otherwise a missing file is fine),
// then environment variables. A .env file is loaded first so it can supply
// those variables.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

//nolint:cyclop
func (c *Config) loadEnv() error {
	if v := os.Getenv("DSPEXPLORER_ADDR"); v != "" {
		c.Addr = v
	}

	if v := os.Getenv("DSPEXPLORER_PRESET_DB"); v != "" {
		c.PresetDBPath = v
	}

	if v := os.Getenv("DSPEXPLORER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv("DSPEXPLORER_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: DSPEXPLORER_RATE_LIMIT: %w", err)
		}

		c.RateLimit = f
	}

	if v := os.Getenv("DSPEXPLORER_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DSPEXPLORER_RATE_BURST: %w", err)
		}

		c.RateBurst = n
	}

	if v := os.Getenv("DSPEXPLORER_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: DSPEXPLORER_SHUTDOWN_TIMEOUT: %w", err)
		}

		c.ShutdownTimeout = d
	}

	return nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: empty listen address")
	}

	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("config: rate limit %v burst %d, want > 0", c.RateLimit, c.RateBurst)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}

	return nil
}
