package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_ResolveOverridesEnv(t *testing.T) {
	t.Setenv("CHIMARA_HOME", t.TempDir())
	t.Setenv("CHIMARA_REDIS_URL", "redis://env:6379")
	t.Setenv("CHIMARA_DATA_DIR", "/env/data")
	t.Setenv("CHIMARA_DEBUG", "true")

	cfg, err := Options{RedisURL: "redis://flag:6379", ConfigFile: "my.toml"}.Resolve()
	require.NoError(t, err)

	assert.Equal(t, "redis://flag:6379", cfg.RedisURL)
	assert.Equal(t, "my.toml", cfg.ConfigFile)
	assert.Equal(t, "/env/data", cfg.DataDir, "unset flags keep the environment value")
	assert.True(t, cfg.Debug)
}
