package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/chimara/internal/config"
	"github.com/aretw0/chimara/pkg/adapters/file"
	redisadapter "github.com/aretw0/chimara/pkg/adapters/redis"
	"github.com/aretw0/chimara/pkg/ports"
	"github.com/aretw0/chimara/pkg/prefs"
	"github.com/aretw0/chimara/pkg/recent"
)

// Stores bundles the preference store and recent tracker over their backends.
type Stores struct {
	Prefs   *prefs.Store
	Recent  *recent.Tracker
	Backend string

	close func() error
}

// OpenStores opens Redis backends when a URL is configured, files otherwise.
func OpenStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Stores, error) {
	var (
		settings ports.SettingsBackend
		recents  ports.RecentStore
		closer   = func() error { return nil }
		kind     string
	)

	if cfg.RedisURL != "" {
		client, err := redisadapter.Dial(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		settings = redisadapter.NewSettingsStore(client)
		recents = redisadapter.NewRecentStore(client)
		closer = client.Close
		kind = "redis"
	} else {
		path, err := cfg.SettingsPath()
		if err != nil {
			return nil, err
		}
		if err := cfg.EnsureHome(); err != nil {
			return nil, err
		}
		settings = file.NewSettingsStore(path)
		recents = file.NewRecentStore(cfg.RecentPath())
		kind = "file:" + path
	}
	logger.Debug("Settings backend selected", "backend", kind)

	store, err := prefs.Open(ctx, settings, prefs.WithLogger(logger))
	if err != nil {
		_ = closer()
		return nil, err
	}

	return &Stores{
		Prefs:   store,
		Recent:  recent.New(recents, recent.WithLimit(cfg.RecentLimit), recent.WithLogger(logger)),
		Backend: kind,
		close:   closer,
	}, nil
}

// Close releases the backends.
func (s *Stores) Close() error {
	return s.close()
}
