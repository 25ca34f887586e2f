package domain

import (
	"fmt"
	"strings"
)

// Interpreter identifies a program capable of running story files.
type Interpreter int

const (
	InterpreterNone Interpreter = iota - 1
	InterpreterFrotz
	InterpreterNitfol
	InterpreterGlulxe
	InterpreterGit
)

// Interpreters lists every known interpreter in display order.
var Interpreters = []Interpreter{InterpreterFrotz, InterpreterNitfol, InterpreterGlulxe, InterpreterGit}

var interpreterNames = map[Interpreter]string{
	InterpreterFrotz:  "Frotz",
	InterpreterNitfol: "Nitfol",
	InterpreterGlulxe: "Glulxe",
	InterpreterGit:    "Git",
}

// String returns the display name, e.g. "Frotz".
func (i Interpreter) String() string {
	if name, ok := interpreterNames[i]; ok {
		return name
	}
	return "none"
}

// ID returns the lower-case identifier used in configuration files, e.g. "frotz".
func (i Interpreter) ID() string {
	return strings.ToLower(i.String())
}

// ParseInterpreter resolves a configuration identifier into an Interpreter.
func ParseInterpreter(id string) (Interpreter, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, i := range Interpreters {
		if i.ID() == id {
			return i, nil
		}
	}
	return InterpreterNone, fmt.Errorf("unknown interpreter %q", id)
}

// Supports reports whether the interpreter can run the given format.
func (i Interpreter) Supports(f Format) bool {
	switch i {
	case InterpreterFrotz, InterpreterNitfol:
		return f.IsZCode()
	case InterpreterGlulxe, InterpreterGit:
		return !f.IsZCode()
	}
	return false
}

// DefaultInterpreter returns the interpreter used for a format when no preference is set.
func DefaultInterpreter(f Format) Interpreter {
	if f.IsZCode() {
		return InterpreterFrotz
	}
	return InterpreterGlulxe
}

// Options are the interpreter switches understood by the Z-machine interpreters.
// Glulx interpreters accept none of them.
type Options struct {
	Piracy              bool
	Tandy               bool
	ExpandAbbreviations bool
	IgnoreErrors        bool
	TypoCorrection      bool
	// InterpreterNumber is the Z-machine interpreter number; zero keeps the interpreter default.
	InterpreterNumber uint
	RandomSeed        Optional[int]
}

// Launch describes a session to start.
type Launch struct {
	GamePath string
	// GraphicsFile is the companion resource bundle, when one was found.
	GraphicsFile Optional[string]
	Format       Format
	Interpreter  Interpreter
	Options      Options
}
