package ports

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by backends when a key is absent.
var ErrNotFound = errors.New("not found")

// SettingsBackend persists preference values as strings.
// Keys are qualified by schema, e.g. "state.last-open-path".
type SettingsBackend interface {
	// Get returns the stored value, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored value.
	List(ctx context.Context) (map[string]string, error)
}

// RecentEntry is one game in the recently-used list.
type RecentEntry struct {
	URI        string    `json:"uri"`
	AccessedAt time.Time `json:"accessed_at"`
}

// RecentStore keeps a recency-ordered list of URIs, unique by URI.
type RecentStore interface {
	// Touch inserts the URI or moves it to the most recent position.
	Touch(ctx context.Context, uri string, at time.Time) error

	// List returns entries, most recent first.
	List(ctx context.Context) ([]RecentEntry, error)

	// Remove deletes the URI. Removing an absent URI is not an error.
	Remove(ctx context.Context, uri string) error

	// Trim keeps only the limit most recent entries.
	Trim(ctx context.Context, limit int) error
}
