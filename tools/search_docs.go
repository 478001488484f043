package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/logging"
	"github.com/rojifi/rojifi-docs/internal/metrics"
)

// SearchDocsTool exposes substring search over page titles and ids.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var SearchDocsTool = mcp.NewTool(
	"search_docs",
	mcp.WithDescription(
		"Searches Rojifi documentation page titles and ids by case-insensitive substring across all tabs "+
			"of a version. Results are in sidebar order (tab, category, page), not ranked. "+
			"Use get_page with the returned version, tab and id to read a result.",
	),
	mcp.WithString(
		"query",
		mcp.Required(),
		mcp.Description("Text to look for in page titles and ids (e.g., 'wallet', 'webhooks')."),
	),
	mcp.WithString(
		"version",
		mcp.Description("Optional: documentation version (e.g., 'v1'). Defaults to latest."),
	),
	mcp.WithNumber(
		"limit",
		mcp.Description(fmt.Sprintf("Optional: maximum number of results (default: %d, max: %d).",
			defaultSearchLimit, maxSearchLimit)),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type searchDocsResponse struct {
	Query   string     `json:"query"`
	Results []docs.Hit `json:"results"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
}

// RegisterSearchDocsTool registers the search tool with the MCP server.
func RegisterSearchDocsTool(s *server.MCPServer, resolver *docs.Resolver) {
	s.AddTool(SearchDocsTool, withToolLogger("search_docs", newSearchDocsHandlerFunc(resolver)))
}

func newSearchDocsHandlerFunc(
	resolver *docs.Resolver,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		query, err := request.RequireString("query")
		if err != nil {
			logger.WarnContext(ctx, "Invalid parameters", slog.String("error", err.Error()))
			return mcp.NewToolResultError(fmt.Sprintf("missing or invalid query parameter: %s", err)), nil
		}

		limit := request.GetInt("limit", defaultSearchLimit)
		if limit < 1 {
			limit = defaultSearchLimit
		} else if limit > maxSearchLimit {
			limit = maxSearchLimit
		}

		results, err := resolver.Search(request.GetString("version", ""), query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		metrics.ObserveSearch(metrics.SurfaceMCP, strings.TrimSpace(query), len(results))

		hits := docs.Hits(results, limit)

		logger.InfoContext(ctx, "Search completed",
			slog.String("query", query),
			slog.Int("result_count", len(hits)),
			slog.Int("total", len(results)))

		return marshalResponse(ctx, logger, searchDocsResponse{
			Query:   query,
			Results: hits,
			Count:   len(hits),
			Total:   len(results),
		})
	}
}
