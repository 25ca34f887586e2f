package process_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/chimara/pkg/adapters/process"
	"github.com/aretw0/chimara/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRegistry_Defaults(t *testing.T) {
	reg, err := process.LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, process.DefaultRegistry(), reg)

	reg, err = process.LoadRegistry("")
	require.NoError(t, err)
	assert.Equal(t, "dfrotz", reg[domain.InterpreterFrotz].Command)
	assert.Equal(t, "git-glulx", reg[domain.InterpreterGit].Command)
}

func TestLoadRegistry_YAML(t *testing.T) {
	path := writeFile(t, "interpreters.yaml", `
interpreters:
  frotz: /opt/frotz/dfrotz
  glulxe:
    command: glulxe-cheapglk
    args: ["-q"]
    env:
      TERM: dumb
`)

	reg, err := process.LoadRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, process.Entry{Command: "/opt/frotz/dfrotz"}, reg[domain.InterpreterFrotz])
	assert.Equal(t, process.Entry{
		Command: "glulxe-cheapglk",
		Args:    []string{"-q"},
		Env:     map[string]string{"TERM": "dumb"},
	}, reg[domain.InterpreterGlulxe])
	// Untouched entries keep their defaults.
	assert.Equal(t, "nitfol", reg[domain.InterpreterNitfol].Command)
}

func TestLoadRegistry_JSON(t *testing.T) {
	path := writeFile(t, "interpreters.json", `{"interpreters": {"git": {"command": "git-glk"}}}`)

	reg, err := process.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "git-glk", reg[domain.InterpreterGit].Command)
}

func TestLoadRegistry_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown interpreter": "interpreters:\n  bocfel: bocfel\n",
		"unknown field":       "interpreters:\n  frotz:\n    cmd: dfrotz\n",
		"missing command":     "interpreters:\n  frotz:\n    args: [-q]\n",
		"malformed":           "interpreters: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := process.LoadRegistry(writeFile(t, "interpreters.yaml", content))
			assert.Error(t, err)
		})
	}
}
