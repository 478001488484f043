package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/logging"
	"github.com/rojifi/rojifi-docs/internal/metrics"
)

// GetPageTool exposes a tool for retrieving a documentation page.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var GetPageTool = mcp.NewTool(
	"get_page",
	mcp.WithDescription(
		"Retrieves a Rojifi documentation page rendered as markdown, together with its content blocks. "+
			"Use the id from list_pages or search_docs as slug. Without a slug the first page of the tab is returned. "+
			"Unknown versions fall back to the latest version.",
	),
	mcp.WithString(
		"slug",
		mcp.Description("Optional: page id (e.g., 'authentication', 'create-customer')."),
	),
	mcp.WithString(
		"version",
		mcp.Description("Optional: documentation version (e.g., 'v1'). Defaults to latest."),
	),
	mcp.WithString(
		"tab",
		mcp.Description("Optional: one of 'guides', 'api-reference', 'sdks', 'changelog'. Defaults to 'guides'."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

type getPageResponse struct {
	docs.Resolution
	Path     string `json:"path"`
	Markdown string `json:"markdown"`
}

// RegisterGetPageTool registers the get page tool with the MCP server.
func RegisterGetPageTool(s *server.MCPServer, resolver *docs.Resolver) {
	s.AddTool(GetPageTool, withToolLogger("get_page", newGetPageHandlerFunc(resolver)))
}

func newGetPageHandlerFunc(
	resolver *docs.Resolver,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		req := docs.Request{
			Version: request.GetString("version", ""),
			Tab:     request.GetString("tab", ""),
			Slug:    request.GetString("slug", ""),
		}

		res, err := resolver.Resolve(req)
		metrics.ObserveResolve(metrics.SurfaceMCP, res, err)
		if err != nil {
			if errors.Is(err, docs.ErrPageNotFound) {
				logger.InfoContext(ctx, "Page not found",
					slog.String("slug", req.Slug),
					slog.String("version", res.Version),
					slog.String("tab", string(res.Tab)))
				return mcp.NewToolResultError(fmt.Sprintf(
					"%s. Use list_pages with version=%q and tab=%q to find valid slugs",
					err, res.Version, res.Tab)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.InfoContext(ctx, "Page retrieved",
			slog.String("slug", res.Page.ID),
			slog.String("version", res.Version),
			slog.String("tab", string(res.Tab)),
			slog.Bool("version_fallback", res.VersionFallback))

		return marshalResponse(ctx, logger, getPageResponse{
			Resolution: res,
			Path:       docs.PagePath(res.Version, res.Tab, res.Page.ID),
			Markdown:   docs.RenderMarkdown(res.Page),
		})
	}
}
