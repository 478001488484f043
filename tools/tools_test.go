package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	rojifidocs "github.com/rojifi/rojifi-docs"
	"github.com/rojifi/rojifi-docs/internal/docs"
)

func newTestResolver(t *testing.T, opts ...docs.Option) *docs.Resolver {
	t.Helper()

	store, err := docs.LoadYAML(rojifidocs.ContentYAML)
	require.NoError(t, err)

	return docs.NewResolver(store, opts...)
}

func newCallRequest(name string, args map[string]any) mcp.CallToolRequest {
	if args == nil {
		args = map[string]any{}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func decodeResponse[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.NotNil(t, result)
	require.False(t, result.IsError, "unexpected tool error: %v", result.Content)
	require.NotEmpty(t, result.Content)

	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var resp T
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &resp))
	return resp
}

func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)

	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func TestWithToolLoggerRecoversPanics(t *testing.T) {
	t.Parallel()

	handler := withToolLogger("boom", func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("kaboom")
	})

	result, err := handler(context.Background(), newCallRequest("boom", nil))
	require.Nil(t, result)
	require.ErrorContains(t, err, "kaboom")
}

func TestToolError(t *testing.T) {
	t.Parallel()

	require.NoError(t, toolError(mcp.NewToolResultText("ok"), nil))
	require.EqualError(t, toolError(mcp.NewToolResultError("bad slug"), nil), "bad slug")
	require.Error(t, toolError(nil, context.Canceled))
}

func TestNewServerListsTools(t *testing.T) {
	t.Parallel()

	s := NewServer(newTestResolver(t), nil)

	msg := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))

	names := make([]string, 0, len(resp.Result.Tools))
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{"list_versions", "list_pages", "get_page", "search_docs", "run_snippet"}, names)
}
