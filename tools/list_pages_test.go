package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rojifi/rojifi-docs/internal/docs"
)

func TestListVersionsHandler(t *testing.T) {
	t.Parallel()

	handler := newListVersionsHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("list_versions", nil))
	require.NoError(t, err)

	resp := decodeResponse[listVersionsResponse](t, result)
	require.Equal(t, "v1", resp.Default)
	require.False(t, resp.DevMode)
	require.Len(t, resp.Versions, 1)
	require.True(t, resp.Versions[0].Latest)
	require.Len(t, resp.Versions[0].Tabs, 4)
	require.Equal(t, docs.TabGuides, resp.Versions[0].Tabs[0].ID)
}

func TestListPagesHandlerDefaultsToGuides(t *testing.T) {
	t.Parallel()

	handler := newListPagesHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("list_pages", nil))
	require.NoError(t, err)

	resp := decodeResponse[listPagesResponse](t, result)
	require.Equal(t, "v1", resp.Version)
	require.Equal(t, docs.TabGuides, resp.Tab)
	require.False(t, resp.VersionFallback)
	require.Equal(t, "Introduction", resp.Categories[0].Title)

	for _, c := range resp.Categories {
		require.NotEqual(t, "Early Access", c.Title, "DEV-only category must be hidden outside dev mode")
	}
}

func TestListPagesHandlerVersionFallback(t *testing.T) {
	t.Parallel()

	handler := newListPagesHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("list_pages", map[string]any{
		"version": "v9",
		"tab":     "sdks",
	}))
	require.NoError(t, err)

	resp := decodeResponse[listPagesResponse](t, result)
	require.Equal(t, "v1", resp.Version)
	require.True(t, resp.VersionFallback)
	require.Equal(t, docs.TabSDKs, resp.Tab)
	require.Equal(t, 8, resp.Count)
}
