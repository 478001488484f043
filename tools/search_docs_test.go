package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rojifi/rojifi-docs/internal/docs"
)

func TestSearchDocsHandler(t *testing.T) {
	t.Parallel()

	handler := newSearchDocsHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("search_docs", map[string]any{"query": "Wallet"}))
	require.NoError(t, err)

	resp := decodeResponse[searchDocsResponse](t, result)
	require.Positive(t, resp.Count)
	require.Equal(t, resp.Count, resp.Total)
	require.Equal(t, "crypto-wallet", resp.Results[0].ID)
	require.Equal(t, docs.TabGuides, resp.Results[0].Tab)
	require.Equal(t, "/docs/v1/guides/crypto-wallet", resp.Results[0].Path)

	for _, hit := range resp.Results {
		require.NotEqual(t, "virtual-accounts", hit.ID)
	}
}

func TestSearchDocsHandlerLimit(t *testing.T) {
	t.Parallel()

	handler := newSearchDocsHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("search_docs", map[string]any{
		"query": "wallet",
		"limit": 1,
	}))
	require.NoError(t, err)

	resp := decodeResponse[searchDocsResponse](t, result)
	require.Equal(t, 1, resp.Count)
	require.Len(t, resp.Results, 1)
	require.Greater(t, resp.Total, 1)
}

func TestSearchDocsHandlerBlankAndMissingQuery(t *testing.T) {
	t.Parallel()

	handler := newSearchDocsHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("search_docs", map[string]any{"query": "   "}))
	require.NoError(t, err)
	resp := decodeResponse[searchDocsResponse](t, result)
	require.NotNil(t, resp.Results)
	require.Empty(t, resp.Results)

	result, err = handler(context.Background(), newCallRequest("search_docs", nil))
	require.NoError(t, err)
	require.Contains(t, errorText(t, result), "query")
}
