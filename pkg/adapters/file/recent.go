package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aretw0/chimara/pkg/adapters/memory"
	"github.com/aretw0/chimara/pkg/ports"
)

// RecentStore implements ports.RecentStore as a JSON document on disk.
type RecentStore struct {
	Path string
	mu   sync.Mutex
}

// NewRecentStore creates a store backed by the JSON file at path.
func NewRecentStore(path string) *RecentStore {
	return &RecentStore{Path: path}
}

// Touch inserts uri or moves it to the most recent position.
func (s *RecentStore) Touch(ctx context.Context, uri string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.URI != uri {
			kept = append(kept, e)
		}
	}
	kept = append(kept, ports.RecentEntry{URI: uri, AccessedAt: at})
	return s.save(kept)
}

// List returns entries, most recent first.
func (s *RecentStore) List(ctx context.Context) ([]ports.RecentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	memory.SortRecent(entries)
	return entries, nil
}

// Remove deletes uri from the list.
func (s *RecentStore) Remove(ctx context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.URI != uri {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.save(kept)
}

// Trim keeps only the limit most recent entries.
func (s *RecentStore) Trim(ctx context.Context, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if len(entries) <= limit {
		return nil
	}
	memory.SortRecent(entries)
	return s.save(entries[:limit])
}

func (s *RecentStore) load() ([]ports.RecentEntry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []ports.RecentEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read recent files: %w", err)
	}

	var entries []ports.RecentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recent files: %w", err)
	}
	return entries, nil
}

func (s *RecentStore) save(entries []ports.RecentEntry) error {
	memory.SortRecent(entries)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recent files: %w", err)
	}
	return writeAtomic(s.Path, data)
}
