// Package tools provides MCP tool definitions for the rojifi-docs server.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rojifi/rojifi-docs/internal/logging"
)

// withToolLogger wraps a tool handler to inject a logger and a request
// correlation id into the context and to provide panic recovery.
func withToolLogger(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		logger := logging.WithTool(toolName)
		ctx = logging.ContextWithLogger(ctx, logger)
		ctx = logging.ContextWithRequestID(ctx, uuid.New().String())

		start := time.Now()
		logging.RequestStart(ctx, toolName, request.GetArguments())

		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "panic in tool execution",
					slog.String("tool", toolName),
					slog.Any("panic", r))
				result = nil
				err = fmt.Errorf("internal error in tool execution: %v", r)
			}
			logging.RequestEnd(ctx, toolName, err == nil && result != nil && !result.IsError,
				time.Since(start), toolError(result, err))
		}()

		return handler(ctx, request)
	}
}

// toolError reports the failure carried by a tool result, if any.
func toolError(result *mcp.CallToolResult, err error) error {
	if err != nil {
		return err
	}
	if result == nil || !result.IsError {
		return nil
	}
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			return errors.New(text.Text)
		}
	}
	return errors.New("tool reported an error")
}

func marshalResponse(ctx context.Context, logger *slog.Logger, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.ErrorContext(ctx, "Failed to marshal response",
			slog.String("error", err.Error()))
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
