package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/chimara/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewTo_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTo(&buf, slog.LevelInfo)

	logger.Info("Game stopped", "error", errors.New("boom"))
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=")
	assert.NotContains(t, out, "hidden")
}

func TestForDebug(t *testing.T) {
	assert.True(t, logging.ForDebug(true).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, logging.ForDebug(false).Enabled(context.Background(), slog.LevelError))
}

func TestNewNop_DropsEverything(t *testing.T) {
	logger := logging.NewNop()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, logger.Enabled(context.Background(), level), level.String())
	}
}
