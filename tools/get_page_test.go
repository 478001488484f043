package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rojifi/rojifi-docs/internal/docs"
)

func TestGetPageHandlerReturnsMarkdown(t *testing.T) {
	t.Parallel()

	handler := newGetPageHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("get_page", map[string]any{
		"version": "v1",
		"tab":     "guides",
		"slug":    "authentication",
	}))
	require.NoError(t, err)

	resp := decodeResponse[getPageResponse](t, result)
	require.Equal(t, "authentication", resp.Page.ID)
	require.Equal(t, "/docs/v1/guides/authentication", resp.Path)
	require.Contains(t, resp.Markdown, "# Authentication")
	require.Contains(t, resp.Markdown, "```bash")
	require.Equal(t, "introduction", resp.Prev.ID)
}

func TestGetPageHandlerDefaultPage(t *testing.T) {
	t.Parallel()

	handler := newGetPageHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("get_page", map[string]any{"tab": "changelog"}))
	require.NoError(t, err)

	resp := decodeResponse[getPageResponse](t, result)
	require.Equal(t, docs.TabChangelog, resp.Tab)
	require.Equal(t, "october-2023", resp.Page.ID)
}

func TestGetPageHandlerNotFound(t *testing.T) {
	t.Parallel()

	handler := newGetPageHandlerFunc(newTestResolver(t))

	result, err := handler(context.Background(), newCallRequest("get_page", map[string]any{
		"slug": "nonexistent-slug",
	}))
	require.NoError(t, err)
	require.Contains(t, errorText(t, result), "page not found")
}

func TestGetPageHandlerDevPage(t *testing.T) {
	t.Parallel()

	args := map[string]any{"slug": "virtual-accounts"}

	prod := newGetPageHandlerFunc(newTestResolver(t))
	result, err := prod(context.Background(), newCallRequest("get_page", args))
	require.NoError(t, err)
	errorText(t, result)

	dev := newGetPageHandlerFunc(newTestResolver(t, docs.WithDevMode(true)))
	result, err = dev(context.Background(), newCallRequest("get_page", args))
	require.NoError(t, err)

	resp := decodeResponse[getPageResponse](t, result)
	require.Equal(t, docs.StatusDev, resp.Page.Status)
	require.Contains(t, resp.Markdown, "**DEV**")
}
