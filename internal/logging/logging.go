// Package logging provides slog-based structured logging helpers shared by the
// HTTP API, the MCP tools and the CLI.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type (
	loggerKey    struct{}
	requestIDKey struct{}
)

//nolint:gochecknoglobals // Process-wide default logger, replaced once at startup.
var (
	mu            sync.RWMutex
	defaultLogger = New(slog.LevelInfo, "text", os.Stderr)
)

// New creates a logger writing to w. Format is "json" or "text".
func New(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a textual level (debug, info, warn, error) into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *slog.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// WithTool returns a logger annotated with an MCP tool name.
func WithTool(toolName string) *slog.Logger {
	return Default().With(slog.String("tool", toolName))
}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext extracts a logger from the context, falling back to Default.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// ContextWithRequestID stores a request correlation id in the context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request correlation id, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithContext returns the context logger annotated with the request id.
func WithContext(ctx context.Context) *slog.Logger {
	logger := LoggerFromContext(ctx)
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With(slog.String("request_id", id))
	}
	return logger
}

// RequestStart logs the beginning of an operation.
func RequestStart(ctx context.Context, operation string, args map[string]any) {
	WithContext(ctx).DebugContext(ctx, "Request started",
		slog.String("operation", operation),
		slog.Int("arg_count", len(args)))
}

// RequestEnd logs the completion of an operation with its outcome and duration.
func RequestEnd(ctx context.Context, operation string, success bool, duration time.Duration, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.Bool("success", success),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		WithContext(ctx).WarnContext(ctx, "Request completed", attrs...)
		return
	}
	WithContext(ctx).InfoContext(ctx, "Request completed", attrs...)
}
