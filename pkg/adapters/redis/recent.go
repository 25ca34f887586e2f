package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/chimara/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// RecentStore implements ports.RecentStore as a sorted set.
// Members are URIs, scores are access times in Unix milliseconds.
type RecentStore struct {
	client *backend.Client
	key    string
}

// NewRecentStore creates a recent-files store from an existing client.
func NewRecentStore(client *backend.Client, opts ...Option) *RecentStore {
	o := buildOptions(opts)
	return &RecentStore{
		client: client,
		key:    o.prefix + "recent",
	}
}

// Touch inserts uri or moves it to the most recent position.
// ZADD replaces the score of an existing member, so URIs stay unique.
func (s *RecentStore) Touch(ctx context.Context, uri string, at time.Time) error {
	err := s.client.ZAdd(ctx, s.key, backend.Z{
		Score:  float64(at.UnixMilli()),
		Member: uri,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to record recent file: %w", err)
	}
	return nil
}

// List returns entries, most recent first.
func (s *RecentStore) List(ctx context.Context) ([]ports.RecentEntry, error) {
	members, err := s.client.ZRevRangeWithScores(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent files: %w", err)
	}

	entries := make([]ports.RecentEntry, 0, len(members))
	for _, z := range members {
		uri, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, ports.RecentEntry{
			URI:        uri,
			AccessedAt: time.UnixMilli(int64(z.Score)).UTC(),
		})
	}
	return entries, nil
}

// Remove deletes uri from the list.
func (s *RecentStore) Remove(ctx context.Context, uri string) error {
	if err := s.client.ZRem(ctx, s.key, uri).Err(); err != nil {
		return fmt.Errorf("failed to remove recent file: %w", err)
	}
	return nil
}

// Trim keeps only the limit most recent entries.
func (s *RecentStore) Trim(ctx context.Context, limit int) error {
	// Ranks are ascending by score; drop everything below the newest limit.
	stop := int64(-limit - 1)
	if err := s.client.ZRemRangeByRank(ctx, s.key, 0, stop).Err(); err != nil {
		return fmt.Errorf("failed to trim recent files: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *RecentStore) Close() error {
	return s.client.Close()
}
