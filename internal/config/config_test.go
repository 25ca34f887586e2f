package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/chimara/internal/config"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/share/chimara", cfg.DataDir)
	assert.Equal(t, 10, cfg.RecentLimit)
	assert.Equal(t, 4096, cfg.MaxInput)
	assert.False(t, cfg.Debug)
	assert.Equal(t, ".chimara", filepath.Base(cfg.Home))
}

func TestLoadFrom_Values(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"CHIMARA_HOME":         "/tmp/chimara",
		"CHIMARA_REDIS_URL":    "redis://localhost:6379/2",
		"CHIMARA_DEBUG":        "true",
		"CHIMARA_PTY":          "1",
		"CHIMARA_RECENT_LIMIT": "25",
		"CHIMARA_INTERPRETERS": "/etc/chimara/interpreters.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/chimara", cfg.Home)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.PTY)
	assert.Equal(t, 25, cfg.RecentLimit)
	assert.Equal(t, "/etc/chimara/interpreters.yaml", cfg.InterpretersPath())
	assert.Equal(t, "/tmp/chimara/recent.json", cfg.RecentPath())
}

func TestLoadFrom_Invalid(t *testing.T) {
	_, err := config.LoadFrom(map[string]string{"CHIMARA_RECENT_LIMIT": "many"})
	assert.Error(t, err)
}

func TestSettingsPath(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home", ".chimara")
	cfg := config.Config{Home: home}

	t.Run("Explicit", func(t *testing.T) {
		c := cfg
		c.ConfigFile = "/etc/chimara.toml"
		path, err := c.SettingsPath()
		require.NoError(t, err)
		assert.Equal(t, "/etc/chimara.toml", path)
	})

	t.Run("Home Created", func(t *testing.T) {
		t.Chdir(t.TempDir())
		path, err := cfg.SettingsPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "config"), path)
		assert.DirExists(t, home)
	})

	t.Run("Local Override", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile(config.LocalSettingsFile, nil, 0644))
		path, err := cfg.SettingsPath()
		require.NoError(t, err)
		assert.Equal(t, config.LocalSettingsFile, path)
	})
}

func TestDataFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.HelpFile), []byte("# Help"), 0644))
	cfg := config.Config{DataDir: dir}

	path, err := cfg.DataFile(config.HelpFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.HelpFile), path)

	t.Chdir(t.TempDir())
	_, err = cfg.DataFile(config.StyleFile)
	assert.ErrorIs(t, err, domain.ErrResourceMissing)
}
