package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aretw0/chimara/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Entry describes how to launch one interpreter program.
type Entry struct {
	Command string            `mapstructure:"command"`
	Args    []string          `mapstructure:"args"`
	Env     map[string]string `mapstructure:"env"`
}

// Registry maps interpreters to the programs that implement them.
type Registry map[domain.Interpreter]Entry

// DefaultRegistry returns the commands used when no registry file overrides them.
func DefaultRegistry() Registry {
	return Registry{
		domain.InterpreterFrotz:  {Command: "dfrotz"},
		domain.InterpreterNitfol: {Command: "nitfol"},
		domain.InterpreterGlulxe: {Command: "glulxe"},
		domain.InterpreterGit:    {Command: "git-glulx"},
	}
}

// registryFile represents the structure of interpreters.yaml.
type registryFile struct {
	Interpreters map[string]any `yaml:"interpreters" json:"interpreters"`
}

// LoadRegistry reads a registry file (YAML or JSON) and overlays it on the defaults.
// A missing file yields the defaults. Each entry is either a command string or
// a mapping with command, args and env.
func LoadRegistry(path string) (Registry, error) {
	reg := DefaultRegistry()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return reg, nil
		}
		return nil, fmt.Errorf("failed to read interpreter registry: %w", err)
	}

	var file registryFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	for id, raw := range file.Interpreters {
		interp, err := domain.ParseInterpreter(id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		entry, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: interpreter %s: %w", filepath.Base(path), id, err)
		}
		reg[interp] = entry
	}
	return reg, nil
}

func decodeEntry(raw any) (Entry, error) {
	if cmd, ok := raw.(string); ok {
		raw = map[string]any{"command": cmd}
	}

	var entry Entry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &entry,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Entry{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Entry{}, err
	}
	if entry.Command == "" {
		return Entry{}, fmt.Errorf("%w: missing command", domain.ErrInvalidValue)
	}
	return entry, nil
}

// Resolve locates the program for interp on the PATH.
func (r Registry) Resolve(interp domain.Interpreter) (string, Entry, error) {
	entry, ok := r[interp]
	if !ok {
		return "", Entry{}, fmt.Errorf("%w: no appropriate %s interpreter is configured", domain.ErrInterpreterNotFound, interp)
	}
	path, err := exec.LookPath(entry.Command)
	if err != nil {
		return "", Entry{}, fmt.Errorf("%w: no appropriate %s interpreter was found (%s)", domain.ErrInterpreterNotFound, interp, entry.Command)
	}
	return path, entry, nil
}
