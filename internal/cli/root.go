// Package cli implements the trackinbox command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tOgg1/trackinbox/internal/analytics"
	"github.com/tOgg1/trackinbox/internal/cache"
	"github.com/tOgg1/trackinbox/internal/config"
	"github.com/tOgg1/trackinbox/internal/db"
	"github.com/tOgg1/trackinbox/internal/inbox"
	"github.com/tOgg1/trackinbox/internal/logging"
	"github.com/tOgg1/trackinbox/internal/remote"
	"github.com/tOgg1/trackinbox/internal/store"
)

// Execute runs the CLI.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "trackinbox",
		Short:         "Notification inbox threads from the command line",
		Long:          "trackinbox loads, caches and syncs notification inbox threads.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.config/trackinbox/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "override logging level (debug, info, warn, error)")

	cmd.AddCommand(
		newListCmd(&configFile),
		newMoreCmd(&configFile),
		newSeenCmd(&configFile),
		newReadCmd(&configFile),
		newMuteCmd(&configFile),
	)

	return cmd
}

// app bundles everything a command needs.
type app struct {
	cfg    *config.Config
	engine *inbox.Engine
	blobs  *db.SQLiteBlobStore
}

func (a *app) Close() {
	if a.blobs != nil {
		_ = a.blobs.Close()
	}
}

func newApp(cmd *cobra.Command, configFile string) (*app, error) {
	loader := config.NewLoader()
	if configFile != "" {
		loader.SetConfigFile(configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("remote.base_url is not configured")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	client, err := remote.NewClient(remote.ClientConfig{
		BaseURL: cfg.Remote.BaseURL,
		Token:   cfg.Remote.Token,
		Timeout: cfg.Remote.Timeout,
	})
	if err != nil {
		return nil, err
	}

	blobs, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	engine := inbox.New(
		inbox.Config{
			PageSize:            cfg.Inbox.PageSize,
			MaxCachedThreads:    cfg.Inbox.MaxCachedThreads,
			MergedNotifications: cfg.Inbox.MergedNotifications,
		},
		store.New(cfg.Inbox.PageSize),
		cache.New(blobs, cache.WithLimit(cfg.Inbox.MaxCachedThreads)),
		client,
		remote.NewFlag(true),
		analytics.NewLogRecorder(),
	)

	return &app{cfg: cfg, engine: engine, blobs: blobs}, nil
}
