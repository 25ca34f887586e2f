package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// LocalSettingsFile in the working directory takes precedence over the home one.
	LocalSettingsFile = "chimara-config"
	settingsFile      = "config"
	recentFile        = "recent.json"
	interpretersFile  = "interpreters.yaml"
)

// SettingsPath returns the settings file to use: the explicit one, else
// ./chimara-config when present, else config in the home directory, which
// is created if missing.
func (c Config) SettingsPath() (string, error) {
	if c.ConfigFile != "" {
		return c.ConfigFile, nil
	}
	if info, err := os.Stat(LocalSettingsFile); err == nil && !info.IsDir() {
		return LocalSettingsFile, nil
	}
	if err := c.EnsureHome(); err != nil {
		return "", err
	}
	return filepath.Join(c.Home, settingsFile), nil
}

// RecentPath returns the recent-games file.
func (c Config) RecentPath() string {
	return filepath.Join(c.Home, recentFile)
}

// InterpretersPath returns the interpreter registry file.
func (c Config) InterpretersPath() string {
	if c.Interpreters != "" {
		return c.Interpreters
	}
	return filepath.Join(c.Home, interpretersFile)
}

// EnsureHome creates the home directory.
func (c Config) EnsureHome() error {
	if err := os.MkdirAll(c.Home, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Home, err)
	}
	return nil
}
