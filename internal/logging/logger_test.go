package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-relay/internal/domain/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false, "warn", "")

	log.Info("hidden")
	log.Warn("shown", "component", "RelayServer")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "component=RelayServer")
	assert.NotContains(t, out, "time=")
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, true, "error", "json")

	log.Debug("deployment finished", "exitCode", 0)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "deployment finished", line["msg"])
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, float64(0), line["exitCode"])
	assert.Contains(t, line, "time")
}

func TestNewLogger_JSONFormatIsCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false, "info", " JSON ")

	log.Info("relay started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "relay started", line["msg"])
	assert.Contains(t, line, "time")
}

func TestNewLogger_FromRuntimeConfig(t *testing.T) {
	log := NewLogger(&config.RuntimeConfig{LogLevel: "error", LogFormat: "json"})

	assert.False(t, log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
	_, isJSON := log.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
}
