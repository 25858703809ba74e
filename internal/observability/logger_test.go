package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/agentlink/internal/observability"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := observability.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := observability.ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, observability.Init(&buf, "info", "json"))

	ctx := observability.WithRequestID(context.Background(), "req-1")
	observability.LoggerFromContext(ctx).Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "hello", line["msg"])
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	assert.Error(t, observability.Init(&bytes.Buffer{}, "info", "xml"))
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, observability.Init(&buf, "info", "json"))

	observability.WithFields("component", "http").Info("listening")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http", line["component"])
}
