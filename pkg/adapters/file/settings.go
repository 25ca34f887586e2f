package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/chimara/pkg/ports"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SettingsStore implements ports.SettingsBackend on a keyfile.
//
// Keys of the form "section.name" are grouped into one table per section:
//
//	[preferences]
//	resource-path = "/home/me/blorbs"
//
//	[state]
//	show-toolbar-default = "false"
//
// The encoding follows the file extension: .yaml/.yml and .json are honoured,
// anything else (including no extension) is TOML.
type SettingsStore struct {
	Path string
	mu   sync.Mutex
}

// NewSettingsStore creates a store backed by the file at path.
// The file is created on the first write.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{Path: path}
}

// Get returns the stored value for key.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	val, ok := values[key]
	if !ok {
		return "", ports.ErrNotFound
	}
	return val, nil
}

// Set writes the value for key and rewrites the file.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Delete removes key and rewrites the file.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// List returns every value in the file.
func (s *SettingsStore) List(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SettingsStore) format() string {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return "toml"
	}
}

func (s *SettingsStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	raw := map[string]any{}
	switch s.format() {
	case "yaml":
		err = yaml.Unmarshal(data, &raw)
	case "json":
		err = json.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.Path, err)
	}

	return flatten(raw), nil
}

func (s *SettingsStore) save(values map[string]string) error {
	nested := nest(values)

	var (
		data []byte
		err  error
	)
	switch s.format() {
	case "yaml":
		data, err = yaml.Marshal(nested)
	case "json":
		data, err = json.MarshalIndent(nested, "", "  ")
	default:
		data, err = toml.Marshal(nested)
	}
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return writeAtomic(s.Path, data)
}

// flatten turns section tables into "section.name" keys.
// Scalars of any type are kept in their textual form.
func flatten(raw map[string]any) map[string]string {
	out := make(map[string]string)
	for section, v := range raw {
		table, ok := v.(map[string]any)
		if !ok {
			out[section] = fmt.Sprint(v)
			continue
		}
		for name, val := range table {
			out[section+"."+name] = fmt.Sprint(val)
		}
	}
	return out
}

func nest(values map[string]string) map[string]any {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, k := range keys {
		section, name, found := strings.Cut(k, ".")
		if !found {
			out[k] = values[k]
			continue
		}
		table, ok := out[section].(map[string]any)
		if !ok {
			table = make(map[string]any)
			out[section] = table
		}
		table[name] = values[k]
	}
	return out
}
