package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/logging"
)

// ListVersionsTool exposes a tool for listing documentation versions and their tabs.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var ListVersionsTool = mcp.NewTool(
	"list_versions",
	mcp.WithDescription(
		"Lists the available Rojifi documentation versions, which one is the default, "+
			"and the tabs (guides, api-reference, sdks, changelog) of each version with their page counts. "+
			"Use the version and tab ids with list_pages, get_page and search_docs.",
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

type versionSummary struct {
	Version string        `json:"version"`
	Latest  bool          `json:"latest"`
	Tabs    []docs.NavTab `json:"tabs"`
}

type listVersionsResponse struct {
	Versions []versionSummary `json:"versions"`
	Default  string           `json:"default"`
	DevMode  bool             `json:"dev_mode"`
}

// RegisterListVersionsTool registers the list versions tool with the MCP server.
func RegisterListVersionsTool(s *server.MCPServer, resolver *docs.Resolver) {
	s.AddTool(ListVersionsTool, withToolLogger("list_versions", newListVersionsHandlerFunc(resolver)))
}

func newListVersionsHandlerFunc(
	resolver *docs.Resolver,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)
		store := resolver.Store()

		resp := listVersionsResponse{
			Versions: make([]versionSummary, 0, store.Len()),
			DevMode:  resolver.DevMode(),
		}
		for _, name := range store.Versions() {
			v, _ := store.Version(name)
			resp.Versions = append(resp.Versions, versionSummary{
				Version: v.Version,
				Latest:  v.Latest,
				Tabs:    resolver.TabSummaries(v),
			})
		}
		if v, ok := store.Default(); ok {
			resp.Default = v.Version
		}

		logger.InfoContext(ctx, "Versions listed",
			slog.Int("version_count", len(resp.Versions)),
			slog.String("default", resp.Default))

		return marshalResponse(ctx, logger, resp)
	}
}
