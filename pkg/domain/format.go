package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the kind of story file.
type Format int

const (
	FormatZ5 Format = iota
	FormatZ6
	FormatZ8
	FormatZBlorb
	FormatGlulx
	FormatGlulxBlorb
)

var formatNames = map[Format]string{
	FormatZ5:         "Z-code version 5",
	FormatZ6:         "Z-code version 6",
	FormatZ8:         "Z-code version 8",
	FormatZBlorb:     "Blorbed Z-code",
	FormatGlulx:      "Glulx",
	FormatGlulxBlorb: "Blorbed Glulx",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsZCode reports whether the format is run by a Z-machine interpreter.
func (f Format) IsZCode() bool {
	switch f {
	case FormatZ5, FormatZ6, FormatZ8, FormatZBlorb:
		return true
	}
	return false
}

// DetectFormat guesses the format of a game file from its extension.
// Unrecognised extensions are treated as Z-code version 5.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".z6":
		return FormatZ6
	case ".z8":
		return FormatZ8
	case ".zlb", ".zblorb":
		return FormatZBlorb
	case ".ulx":
		return FormatGlulx
	case ".blb", ".blorb", ".glb", ".gblorb":
		return FormatGlulxBlorb
	default:
		return FormatZ5
	}
}

// GamePatterns are the file name patterns offered when browsing for games.
var GamePatterns = []string{
	"*.z[1-8]",
	"*.[zg]lb",
	"*.[zg]blorb",
	"*.ulx",
	"*.blb",
	"*.blorb",
}

// IsGameFile reports whether the base name of path matches one of GamePatterns.
func IsGameFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, pattern := range GamePatterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
