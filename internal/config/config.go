// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix for all settings.
const Prefix = "WIKIPEDIA"

// Config holds Wikipedia MCP server settings
type Config struct {
	// SiteURL is the wiki site root; {lang} is replaced by the language code
	SiteURL string `envconfig:"SITE_URL" default:"https://{lang}.wikipedia.org"`

	// UserAgent identifies the client to Wikipedia. Empty uses the built-in identifier.
	UserAgent string `envconfig:"USER_AGENT"`

	// Timeout for API requests; zero leaves the transport default in place
	Timeout time.Duration `envconfig:"TIMEOUT" default:"0s"`

	// HTTPAddr enables the streamable HTTP transport when set (e.g. ":8080")
	HTTPAddr string `envconfig:"HTTP_ADDR"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the WIKIPEDIA_* environment variables
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that envconfig cannot express
func (c *Config) Validate() error {
	if c.SiteURL == "" {
		return errors.New("WIKIPEDIA_SITE_URL must not be empty")
	}
	if !strings.HasPrefix(c.SiteURL, "http://") && !strings.HasPrefix(c.SiteURL, "https://") {
		return fmt.Errorf("WIKIPEDIA_SITE_URL must be an http(s) URL, got %q", c.SiteURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("WIKIPEDIA_TIMEOUT must not be negative, got %s", c.Timeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts LogLevel to a slog level
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown WIKIPEDIA_LOG_LEVEL %q", c.LogLevel)
	}
}
