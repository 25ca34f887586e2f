package cli

import (
	"io"
	"os"

	"github.com/aretw0/chimara/internal/config"
)

// Options holds what the command line adds to the environment configuration.
type Options struct {
	// GamePath is loaded at startup when set.
	GamePath string
	// ResourcePath overrides the companion resource lookup for GamePath.
	ResourcePath string

	ConfigFile   string
	RedisURL     string
	DataDir      string
	Interpreters string
	Debug        bool
	PTY          bool

	Input  io.Reader
	Output io.Writer
}

// Resolve loads the environment configuration and applies the flags that were set.
func (o Options) Resolve() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.ConfigFile != "" {
		cfg.ConfigFile = o.ConfigFile
	}
	if o.RedisURL != "" {
		cfg.RedisURL = o.RedisURL
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Interpreters != "" {
		cfg.Interpreters = o.Interpreters
	}
	cfg.Debug = cfg.Debug || o.Debug
	cfg.PTY = cfg.PTY || o.PTY
	return cfg, nil
}

func (o Options) input() io.Reader {
	if o.Input != nil {
		return o.Input
	}
	return os.Stdin
}

func (o Options) output() io.Writer {
	if o.Output != nil {
		return o.Output
	}
	return os.Stdout
}
