// Package config handles trackinbox configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tOgg1/trackinbox/internal/models"
)

// Config is the root configuration structure.
type Config struct {
	// Remote settings
	Remote RemoteConfig `yaml:"remote" mapstructure:"remote"`

	// Inbox engine settings
	Inbox InboxConfig `yaml:"inbox" mapstructure:"inbox"`

	// Database settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// RemoteConfig contains remote service settings.
type RemoteConfig struct {
	// BaseURL is the service root URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Token is the bearer token.
	Token string `yaml:"token" mapstructure:"token"`

	// Timeout bounds each request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// InboxConfig contains engine settings.
type InboxConfig struct {
	// PageSize is the number of threads fetched per page.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`

	// MaxCachedThreads bounds the persisted per-folder prefix.
	MaxCachedThreads int `yaml:"max_cached_threads" mapstructure:"max_cached_threads"`

	// MergedNotifications enables the merged display mode.
	MergedNotifications bool `yaml:"merged_notifications" mapstructure:"merged_notifications"`
}

// DatabaseConfig contains blob store settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Remote: RemoteConfig{
			Timeout: 30 * time.Second,
		},
		Inbox: InboxConfig{
			PageSize:         models.PageSize,
			MaxCachedThreads: models.MaxCachedThreads,
		},
		Database: DatabaseConfig{
			Path: filepath.Join(home, ".local", "share", "trackinbox", "inbox.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Inbox.PageSize <= 0 {
		return fmt.Errorf("inbox.page_size must be positive")
	}
	if c.Inbox.MaxCachedThreads <= 0 {
		return fmt.Errorf("inbox.max_cached_threads must be positive")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// EnsureDirectories creates the directories the engine writes to.
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(filepath.Dir(c.Database.Path), 0o755)
}
