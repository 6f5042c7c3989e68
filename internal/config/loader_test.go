package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackinbox/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)

	require.Equal(t, models.PageSize, cfg.Inbox.PageSize)
	require.Equal(t, models.MaxCachedThreads, cfg.Inbox.MaxCachedThreads)
	require.False(t, cfg.Inbox.MergedNotifications)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
remote:
  base_url: https://tracker.example.com
  token: secret
inbox:
  page_size: 8
  merged_notifications: true
logging:
  level: debug
  format: json
`), 0o644))

	loader := NewLoader()
	loader.SetConfigFile(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	require.Equal(t, "https://tracker.example.com", cfg.Remote.BaseURL)
	require.Equal(t, "secret", cfg.Remote.Token)
	require.Equal(t, 8, cfg.Inbox.PageSize)
	require.True(t, cfg.Inbox.MergedNotifications)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	loader := NewLoader()
	loader.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := loader.Load()
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inbox.PageSize = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	require.Error(t, cfg.Validate())
}
