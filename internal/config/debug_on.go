//go:build debug

package config

import "path/filepath"

// DevDataDir is where debug builds look for data files missing from the install.
const DevDataDir = "data"

func devDataFile(name string) (string, bool) {
	path := filepath.Join(DevDataDir, name)
	return path, fileExists(path)
}
