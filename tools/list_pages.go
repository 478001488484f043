package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/logging"
)

// ListPagesTool exposes a tool for listing the sidebar of a documentation tab.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var ListPagesTool = mcp.NewTool(
	"list_pages",
	mcp.WithDescription(
		"Lists the pages of a Rojifi documentation tab grouped by category, in sidebar order. "+
			"Returns compact metadata (no content) to minimize context usage. "+
			"Use the page 'id' with get_page to retrieve the full content.",
	),
	mcp.WithString(
		"version",
		mcp.Description("Optional: documentation version (e.g., 'v1'). Unknown or missing versions use the latest."),
	),
	mcp.WithString(
		"tab",
		mcp.Description("Optional: one of 'guides', 'api-reference', 'sdks', 'changelog'. Defaults to 'guides'."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

type listPagesResponse struct {
	Version         string             `json:"version"`
	VersionFallback bool               `json:"version_fallback,omitempty"`
	Tab             docs.TabID         `json:"tab"`
	Categories      []docs.NavCategory `json:"categories"`
	Count           int                `json:"count"`
	Tabs            []docs.NavTab      `json:"tabs"`
	Usage           string             `json:"usage"`
}

// RegisterListPagesTool registers the list pages tool with the MCP server.
func RegisterListPagesTool(s *server.MCPServer, resolver *docs.Resolver) {
	s.AddTool(ListPagesTool, withToolLogger("list_pages", newListPagesHandlerFunc(resolver)))
}

func newListPagesHandlerFunc(
	resolver *docs.Resolver,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		requested := request.GetString("version", "")
		v, fallback, err := resolver.ResolveVersion(requested)
		if err != nil {
			logger.WarnContext(ctx, "No documentation loaded", slog.String("error", err.Error()))
			return mcp.NewToolResultError(err.Error()), nil
		}
		tab := docs.ResolveTab(request.GetString("tab", ""))

		categories := resolver.Navigation(v, tab)
		count := 0
		for _, c := range categories {
			count += c.PageCount
		}

		logger.InfoContext(ctx, "Pages listed",
			slog.String("version", v.Version),
			slog.String("tab", string(tab)),
			slog.Int("page_count", count))

		return marshalResponse(ctx, logger, listPagesResponse{
			Version:         v.Version,
			VersionFallback: fallback,
			Tab:             tab,
			Categories:      categories,
			Count:           count,
			Tabs:            resolver.TabSummaries(v),
			Usage:           "Use the page 'id' as 'slug' with get_page, together with the same version and tab.",
		})
	}
}
