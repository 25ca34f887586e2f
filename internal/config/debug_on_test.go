//go:build debug

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/chimara/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataFile_DevFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(config.DevDataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(config.DevDataDir, config.StyleFile), []byte("{}"), 0644))

	cfg := config.Config{DataDir: t.TempDir()}
	path, err := cfg.DataFile(config.StyleFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(config.DevDataDir, config.StyleFile), path)
}
