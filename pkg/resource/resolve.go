// Package resource finds the graphics file that accompanies a game.
package resource

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/chimara/pkg/domain"
)

// CompanionExt is the extension of a blorb resource file.
const CompanionExt = ".blb"

// CompanionName returns the resource file name for a game: the game's base
// name with its final extension replaced by ".blb".
func CompanionName(gamePath string) string {
	base := filepath.Base(gamePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + CompanionExt
}

// ResolveCompanion looks for the game's resource file in searchDir when one is
// configured, and in the game's own directory otherwise. A missing companion is
// not an error; the game simply runs without graphics.
func ResolveCompanion(gamePath string, searchDir domain.Optional[string]) domain.Optional[string] {
	dir := searchDir.OrElse(filepath.Dir(gamePath))
	candidate := filepath.Join(dir, CompanionName(gamePath))

	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return domain.None[string]()
	}
	return domain.Some(candidate)
}

