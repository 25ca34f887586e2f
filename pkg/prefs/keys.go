package prefs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/chimara/internal/suggest"
	"github.com/aretw0/chimara/pkg/domain"
)

// Schema groups keys the way the settings file does.
type Schema string

const (
	// SchemaPreferences holds choices made in the preferences window.
	SchemaPreferences Schema = "preferences"
	// SchemaState holds values remembered between runs.
	SchemaState Schema = "state"
)

// Kind is the value type of a key.
type Kind int

const (
	KindPath Kind = iota
	KindBool
	KindInt
	KindInterpreter
)

func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindInterpreter:
		return "interpreter"
	}
	return "unknown"
}

// Key is one of the fixed, enumerated preference keys.
type Key string

const (
	ResourcePath       Key = "resource-path"
	StyleFile          Key = "style-file"
	InterpreterZCode   Key = "interpreter-zcode"
	InterpreterGlulx   Key = "interpreter-glulx"
	IgnoreErrors       Key = "ignore-errors"
	TypoCorrection     Key = "typo-correction"
	WrapWidth          Key = "wrap-width"
	LastOpenPath       Key = "last-open-path"
	ShowToolbarDefault Key = "show-toolbar-default"
)

// Spec documents a key: where it lives, what it holds and its default.
// An empty Default on a path key means the default is computed by the caller.
type Spec struct {
	Key         Key
	Schema      Schema
	Kind        Kind
	Default     string
	Description string
	// Family restricts an interpreter key to the formats of one family.
	Family domain.Format
}

var specs = []Spec{
	{Key: ResourcePath, Schema: SchemaPreferences, Kind: KindPath,
		Description: "Directory searched for graphics files; defaults to the game's directory"},
	{Key: StyleFile, Schema: SchemaPreferences, Kind: KindPath,
		Description: "Style sheet used to render player messages"},
	{Key: InterpreterZCode, Schema: SchemaPreferences, Kind: KindInterpreter, Default: "frotz",
		Family: domain.FormatZ5, Description: "Interpreter for Z-code games"},
	{Key: InterpreterGlulx, Schema: SchemaPreferences, Kind: KindInterpreter, Default: "glulxe",
		Family: domain.FormatGlulx, Description: "Interpreter for Glulx games"},
	{Key: IgnoreErrors, Schema: SchemaPreferences, Kind: KindBool, Default: "true",
		Description: "Ask the interpreter to ignore non-fatal game errors"},
	{Key: TypoCorrection, Schema: SchemaPreferences, Kind: KindBool, Default: "true",
		Description: "Try to remedy typos if the interpreter supports it"},
	{Key: WrapWidth, Schema: SchemaPreferences, Kind: KindInt, Default: "80",
		Description: "Column at which player messages are wrapped"},
	{Key: LastOpenPath, Schema: SchemaState, Kind: KindPath,
		Description: "Directory of the last opened game"},
	{Key: ShowToolbarDefault, Schema: SchemaState, Kind: KindBool, Default: "true",
		Description: "Whether new windows show the toolbar"},
}

var specByKey = func() map[Key]Spec {
	m := make(map[Key]Spec, len(specs))
	for _, s := range specs {
		m[s.Key] = s
	}
	return m
}()

// Specs returns every key specification in display order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Lookup returns the specification of key.
func Lookup(key Key) (Spec, bool) {
	s, ok := specByKey[key]
	return s, ok
}

// Names returns the key names, sorted.
func Names() []string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, string(s.Key))
	}
	sort.Strings(names)
	return names
}

// ParseKey validates a key name typed by a user.
func ParseKey(name string) (Key, error) {
	key := Key(name)
	if _, ok := specByKey[key]; ok {
		return key, nil
	}
	return "", fmt.Errorf("%w %q%s", domain.ErrUnknownKey, name, suggest.Hint(name, Names()))
}

// storageKey qualifies the key with its schema, e.g. "state.last-open-path".
func (s Spec) storageKey() string {
	return string(s.Schema) + "." + string(s.Key)
}

// Validate checks that raw is a well-formed value for the key and returns its canonical form.
func (s Spec) Validate(raw string) (string, error) {
	switch s.Kind {
	case KindBool:
		b, err := parseBool(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidValue, s.Key, raw)
		}
		return strconv.FormatBool(b), nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return "", fmt.Errorf("%w: %s expects a positive number, got %q", domain.ErrInvalidValue, s.Key, raw)
		}
		return strconv.Itoa(n), nil
	case KindInterpreter:
		interp, err := domain.ParseInterpreter(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidValue, s.Key, err)
		}
		if !interp.Supports(s.Family) {
			return "", fmt.Errorf("%w: %s cannot run %s games", domain.ErrUnsupportedInterpreter, interp, s.Family)
		}
		return interp.ID(), nil
	default:
		if raw == "" {
			return "", fmt.Errorf("%w: %s expects a path", domain.ErrInvalidValue, s.Key)
		}
		return raw, nil
	}
}

// parseBool accepts what strconv.ParseBool does plus yes/no and on/off.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on", "y":
		return true, nil
	case "no", "off", "n":
		return false, nil
	}
	return strconv.ParseBool(raw)
}
