package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/chimara/pkg/domain"
)

const (
	HelpFile  = "help.md"
	StyleFile = "style.json"
)

// DataFile locates an installed data file. Release builds treat a missing
// file as fatal; debug builds fall back to the source tree.
func (c Config) DataFile(name string) (string, error) {
	installed := filepath.Join(c.DataDir, name)
	if fileExists(installed) {
		return installed, nil
	}
	if dev, ok := devDataFile(name); ok {
		return dev, nil
	}
	return "", fmt.Errorf("%w: could not find data file: %s", domain.ErrResourceMissing, installed)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
