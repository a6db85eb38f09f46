package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	t.Run("text_config", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelInfo, Output: &buf})

		Info("collection loaded", KeyCollection, "goals_v1")
		assert.Contains(t, buf.String(), "collection loaded")
		assert.Contains(t, buf.String(), "collection=goals_v1")
		assert.False(t, Debug)
	})

	t.Run("json_config", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})
		assert.True(t, Debug)

		DebugLog("sample", KeyCount, 3)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "sample", entry["msg"])
		assert.Equal(t, float64(3), entry[KeyCount])
	})

	t.Run("level_filters", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelWarn, Output: &buf})

		Info("hidden")
		Warn("shown")
		Error("also shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.Contains(t, buf.String(), "also shown")
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		Init(Config{Level: slog.LevelInfo})
		assert.NotNil(t, Logger())
	})
}

func TestNewDoesNotReplaceDefault(t *testing.T) {
	before := Logger()
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf})
	l.Info("scoped")

	assert.Same(t, before, Logger())
	assert.Contains(t, buf.String(), "scoped")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.NotNil(t, l)
	l.Error("nowhere")
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})

	LogOperation(l, "save_goals", time.Now().Add(-5*time.Millisecond), KeyCount, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "save_goals", entry[KeyOperation])
	assert.GreaterOrEqual(t, entry[KeyDuration], float64(5))
	assert.Equal(t, float64(2), entry[KeyCount])
}

// =============================================================================
// Context Tests
// =============================================================================

func TestGenerateRequestID(t *testing.T) {
	id1 := GenerateRequestID()
	id2 := GenerateRequestID()
	assert.Len(t, id1, 16)
	assert.NotEqual(t, id1, id2)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Equal(t, "", RequestIDFromContext(nil))

	ctx := WithRequestID(context.Background(), "abc123")
	assert.Equal(t, "abc123", RequestIDFromContext(ctx))

	ctx = NewRequestContext(context.Background())
	assert.Len(t, RequestIDFromContext(ctx), 16)
}

func TestLoggerFromContext(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, Output: &buf})

	ctx := WithRequestID(context.Background(), "req-1")
	LoggerFromContext(ctx).Info("tagged")
	assert.Contains(t, buf.String(), "request_id=req-1")

	buf.Reset()
	InfoContext(context.Background(), "untagged")
	assert.NotContains(t, buf.String(), "request_id")
}
