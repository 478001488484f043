package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, level)

	level, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestLoggerFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, Default(), LoggerFromContext(context.Background()))

	custom := New(slog.LevelDebug, "json", &bytes.Buffer{})
	ctx := ContextWithLogger(context.Background(), custom)
	require.Same(t, custom, LoggerFromContext(ctx))
}

func TestRequestEndIncludesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), New(slog.LevelDebug, "json", &buf))
	ctx = ContextWithRequestID(ctx, "req-1")

	RequestEnd(ctx, "search_docs", false, time.Millisecond, errors.New("boom"))

	out := buf.String()
	require.Contains(t, out, `"request_id":"req-1"`)
	require.Contains(t, out, `"operation":"search_docs"`)
	require.Contains(t, out, `"error":"boom"`)
	require.Contains(t, out, `"level":"WARN"`)
}
