// Package config resolves where the player keeps its files and how it is set up.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings read from the environment. Command-line flags
// override individual fields after Load.
type Config struct {
	// ConfigFile is an explicit settings file; it overrides the search below.
	ConfigFile string `env:"CHIMARA_CONFIG"`
	// Home holds the settings file, the recent list and the interpreter registry.
	Home string `env:"CHIMARA_HOME"`
	// DataDir holds installed data files (help text, style sheet).
	DataDir string `env:"CHIMARA_DATA_DIR" envDefault:"/usr/local/share/chimara"`
	// RedisURL switches settings and the recent list to Redis.
	RedisURL     string `env:"CHIMARA_REDIS_URL"`
	Debug        bool   `env:"CHIMARA_DEBUG"`
	PTY          bool   `env:"CHIMARA_PTY"`
	RecentLimit  int    `env:"CHIMARA_RECENT_LIMIT" envDefault:"10"`
	Interpreters string `env:"CHIMARA_INTERPRETERS"`
	// MaxInput bounds a line of game input in bytes.
	MaxInput int `env:"CHIMARA_MAX_INPUT" envDefault:"4096"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to locate home directory: %w", err)
		}
		cfg.Home = filepath.Join(home, ".chimara")
	}
	return cfg, nil
}
