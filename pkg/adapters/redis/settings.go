package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/chimara/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// SettingsStore implements ports.SettingsBackend as a single Redis hash.
type SettingsStore struct {
	client *backend.Client
	key    string
}

// NewSettingsStore creates a settings store from an existing client.
func NewSettingsStore(client *backend.Client, opts ...Option) *SettingsStore {
	o := buildOptions(opts)
	return &SettingsStore{
		client: client,
		key:    o.prefix + "settings",
	}
}

// Get returns the value for key.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.HGet(ctx, s.key, key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", ports.ErrNotFound
		}
		return "", fmt.Errorf("failed to get setting from redis: %w", err)
	}
	return val, nil
}

// Set stores the value for key.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("failed to save setting to redis: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("failed to delete setting from redis: %w", err)
	}
	return nil
}

// List returns every stored value.
func (s *SettingsStore) List(ctx context.Context) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return values, nil
}

// Close closes the redis client.
func (s *SettingsStore) Close() error {
	return s.client.Close()
}
