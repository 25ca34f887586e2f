package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/chimara/pkg/ports"
)

// SettingsStore implements ports.SettingsBackend in memory.
// Safe for concurrent use.
type SettingsStore struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewSettingsStore creates a new in-memory settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		data: make(map[string]string),
	}
}

// Get returns the value for key.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	if !ok {
		return "", ports.ErrNotFound
	}
	return val, nil
}

// Set stores the value for key.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete removes key.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns a copy of every stored value.
func (s *SettingsStore) List(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, nil
}

// RecentStore implements ports.RecentStore in memory.
// Safe for concurrent use.
type RecentStore struct {
	data map[string]time.Time
	mu   sync.RWMutex
}

// NewRecentStore creates a new in-memory recent-files store.
func NewRecentStore() *RecentStore {
	return &RecentStore{
		data: make(map[string]time.Time),
	}
}

// Touch records an access of uri at the given time.
func (s *RecentStore) Touch(ctx context.Context, uri string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[uri] = at
	return nil
}

// List returns entries, most recent first.
func (s *RecentStore) List(ctx context.Context) ([]ports.RecentEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

// Remove deletes uri from the list.
func (s *RecentStore) Remove(ctx context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, uri)
	return nil
}

// Trim keeps only the limit most recent entries.
func (s *RecentStore) Trim(ctx context.Context, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.sortedLocked()
	for i := limit; i < len(entries); i++ {
		delete(s.data, entries[i].URI)
	}
	return nil
}

func (s *RecentStore) sortedLocked() []ports.RecentEntry {
	entries := make([]ports.RecentEntry, 0, len(s.data))
	for uri, at := range s.data {
		entries = append(entries, ports.RecentEntry{URI: uri, AccessedAt: at})
	}
	SortRecent(entries)
	return entries
}

// SortRecent orders entries most recent first, breaking ties by URI.
func SortRecent(entries []ports.RecentEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AccessedAt.Equal(entries[j].AccessedAt) {
			return entries[i].URI < entries[j].URI
		}
		return entries[i].AccessedAt.After(entries[j].AccessedAt)
	})
}
