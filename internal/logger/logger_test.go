package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesActionAndService(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "pos", "debug")

	l.Info("order_submitted", "order created", "order_id", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "pos", entry["service"])
	assert.Equal(t, "order_submitted", entry["action"])
	assert.Equal(t, float64(42), entry["order_id"])
}

func TestLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "pos", "info")

	l.Error("order_create_failed", "header write failed", errors.New("connection refused"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "connection refused", entry["error"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "pos", "warn")

	l.Debug("noise", "dropped")
	l.Info("noise", "dropped")
	assert.Zero(t, buf.Len())

	l.Warn("table_status_stale", "kept")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
