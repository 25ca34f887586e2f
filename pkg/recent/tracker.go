// Package recent maintains the recently-played games list.
package recent

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/chimara/internal/logging"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/ports"
)

// DefaultLimit is how many games the list keeps.
const DefaultLimit = 10

// Tracker records opened games in a RecentStore.
type Tracker struct {
	store  ports.RecentStore
	limit  int
	now    func() time.Time
	logger *slog.Logger

	mu   sync.Mutex
	last time.Time
}

// Option configures the Tracker.
type Option func(*Tracker)

// WithLimit sets the list bound. Values below one are ignored.
func WithLimit(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.limit = n
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithLogger configures a logger for the Tracker.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// New creates a Tracker over store.
func New(store ports.RecentStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		limit:  DefaultLimit,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Limit returns the list bound.
func (t *Tracker) Limit() int {
	return t.limit
}

// Record moves uri to the most recent position, adding it if absent, and
// drops the oldest entries beyond the limit. Callers record a game only once
// it has been opened successfully.
func (t *Tracker) Record(ctx context.Context, uri string) error {
	at := t.tick()
	if err := t.store.Touch(ctx, uri, at); err != nil {
		return fmt.Errorf("failed to record recent game: %w", err)
	}
	if err := t.store.Trim(ctx, t.limit); err != nil {
		return fmt.Errorf("failed to trim recent games: %w", err)
	}
	t.logger.Debug("Recent game recorded", "uri", uri)
	return nil
}

// tick returns a timestamp strictly after the previous one at millisecond
// precision, so that back-to-back records keep their order in every backend.
func (t *Tracker) tick() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	at := t.now().Truncate(time.Millisecond)
	if !at.After(t.last) {
		at = t.last.Add(time.Millisecond)
	}
	t.last = at
	return at
}

// List returns the recorded games, most recent first, skipping anything that
// does not look like a game file.
func (t *Tracker) List(ctx context.Context) ([]ports.RecentEntry, error) {
	entries, err := t.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}

	out := make([]ports.RecentEntry, 0, len(entries))
	for _, e := range entries {
		path, err := PathFromURI(e.URI)
		if err != nil || !domain.IsGameFile(path) {
			continue
		}
		out = append(out, e)
		if len(out) == t.limit {
			break
		}
	}
	return out, nil
}

// Remove drops uri from the list.
func (t *Tracker) Remove(ctx context.Context, uri string) error {
	return t.store.Remove(ctx, uri)
}

// Clear empties the list.
func (t *Tracker) Clear(ctx context.Context) error {
	return t.store.Trim(ctx, 0)
}

// URIFromPath converts a file path to an absolute file:// URI.
func URIFromPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// PathFromURI converts a file:// URI back to a local path.
func PathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("not a local file: %s", uri)
	}
	return filepath.FromSlash(u.Path), nil
}

// DisplayName returns the file name shown for a recent entry.
func DisplayName(uri string) string {
	path, err := PathFromURI(uri)
	if err != nil {
		return uri
	}
	return filepath.Base(path)
}
