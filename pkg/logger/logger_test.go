package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, ParseLevel(input), "input %q", input)
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, slog.LevelDebug).
		WithField("component", "session").
		WithFields(map[string]interface{}{"action": "set_user"})

	l.Debug("Session updated")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Session updated", entry["msg"])
	assert.Equal(t, "session", entry["component"])
	assert.Equal(t, "set_user", entry["action"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, slog.LevelWarn)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
