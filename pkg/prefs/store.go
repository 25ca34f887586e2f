package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/aretw0/chimara/internal/logging"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/ports"
)

// Store holds the preference values for one run of the player.
//
// Values are read from the backend once, by Open. Only Set and Unset write
// back; nothing else the program does to its own UI state is persisted.
// A missing or malformed stored value is never an error: readers get the
// documented default instead.
type Store struct {
	backend ports.SettingsBackend
	logger  *slog.Logger

	mu     sync.RWMutex
	values map[Key]string
}

// Option configures the Store.
type Option func(*Store)

// WithLogger configures a logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open loads every known key from backend.
// Entries for keys outside the key set are ignored.
func Open(ctx context.Context, backend ports.SettingsBackend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		logger:  logging.NewNop(),
		values:  make(map[Key]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	for _, spec := range specs {
		val, ok := raw[spec.storageKey()]
		if !ok {
			continue
		}
		canonical, err := spec.Validate(val)
		if err != nil {
			s.logger.Warn("Ignoring stored preference", "key", spec.Key, "value", val, "err", err)
			continue
		}
		s.values[spec.Key] = canonical
	}

	return s, nil
}

// Lookup returns the stored value of key, or None when it has never been set.
func (s *Store) Lookup(key Key) domain.Optional[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.values[key]; ok {
		return domain.Some(val)
	}
	return domain.None[string]()
}

// String returns the stored value or the documented default.
func (s *Store) String(key Key) string {
	spec, ok := Lookup(key)
	if !ok {
		return ""
	}
	return s.Lookup(key).OrElse(spec.Default)
}

// Path returns a path-valued key. None means the caller should compute a default.
func (s *Store) Path(key Key) domain.Optional[string] {
	return s.Lookup(key)
}

// Bool returns a boolean key, falling back to its default.
func (s *Store) Bool(key Key) bool {
	b, _ := strconv.ParseBool(s.String(key))
	return b
}

// Int returns an integer key, falling back to its default.
func (s *Store) Int(key Key) int {
	n, _ := strconv.Atoi(s.String(key))
	return n
}

// Interpreter returns the preferred interpreter for the format's family.
func (s *Store) Interpreter(f domain.Format) domain.Interpreter {
	key := InterpreterGlulx
	if f.IsZCode() {
		key = InterpreterZCode
	}
	interp, err := domain.ParseInterpreter(s.String(key))
	if err != nil || !interp.Supports(f) {
		return domain.DefaultInterpreter(f)
	}
	return interp
}

// Options returns the interpreter switches derived from preferences.
func (s *Store) Options() domain.Options {
	return domain.Options{
		IgnoreErrors:   s.Bool(IgnoreErrors),
		TypoCorrection: s.Bool(TypoCorrection),
	}
}

// Set validates and persists a value. This is an explicit user change.
func (s *Store) Set(ctx context.Context, key Key, value string) error {
	spec, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w %q", domain.ErrUnknownKey, key)
	}
	canonical, err := spec.Validate(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Set(ctx, spec.storageKey(), canonical); err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	s.values[key] = canonical
	s.logger.Debug("Preference saved", "key", key, "value", canonical)
	return nil
}

// Unset removes a stored value so that the default applies again.
func (s *Store) Unset(ctx context.Context, key Key) error {
	spec, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w %q", domain.ErrUnknownKey, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, spec.storageKey()); err != nil {
		return fmt.Errorf("failed to remove preference %s: %w", key, err)
	}
	delete(s.values, key)
	return nil
}

// BindBool applies the current value of a boolean key to a UI control once.
// The binding is one-way and happens only now: later changes to the control
// are not written back, and later Set calls do not reach the control.
func (s *Store) BindBool(key Key, apply func(bool)) {
	apply(s.Bool(key))
}

// Entries describes every key for display.
func (s *Store) Entries() []ports.PreferenceView {
	out := make([]ports.PreferenceView, 0, len(specs))
	for _, spec := range specs {
		val, set := s.Lookup(spec.Key).Get()
		if !set {
			val = spec.Default
		}
		out = append(out, ports.PreferenceView{
			Key:         string(spec.Key),
			Value:       val,
			Default:     spec.Default,
			Set:         set,
			Description: spec.Description,
		})
	}
	return out
}
