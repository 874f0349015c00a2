package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level("DEBUG"))
	assert.Equal(t, slog.LevelWarn, Level("warn"))
	assert.Equal(t, slog.LevelError, Level("ERROR"))
	assert.Equal(t, slog.LevelInfo, Level(""))
	assert.Equal(t, slog.LevelInfo, Level("verbose"))
}

func TestSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(os.Stdout) })
	t.Setenv("LOG_LEVEL", "WARN")

	var buf bytes.Buffer
	SetOutput(&buf)

	slog.Info("dropped")
	slog.Warn("kept", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestTee(t *testing.T) {
	t.Cleanup(func() { SetOutput(os.Stdout) })
	t.Setenv("LOG_LEVEL", "INFO")

	var primary, secondary bytes.Buffer
	SetOutput(&primary)
	Tee(slog.NewTextHandler(&secondary, &slog.HandlerOptions{Level: slog.LevelError}))

	slog.With("component", "test").Info("only primary")
	slog.Error("both")

	assert.Contains(t, primary.String(), "only primary")
	assert.Contains(t, primary.String(), `"component":"test"`)
	assert.Contains(t, primary.String(), "both")
	assert.NotContains(t, secondary.String(), "only primary")
	assert.Contains(t, secondary.String(), "both")
}
