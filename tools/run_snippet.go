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
	"github.com/rojifi/rojifi-docs/internal/runner"
)

// RunSnippetTool exposes the simulated run of a documentation code block.
//
//nolint:gochecknoglobals // Shared tool definition registered at startup.
var RunSnippetTool = mcp.NewTool(
	"run_snippet",
	mcp.WithDescription(
		"Simulates running a runnable code block of a Rojifi documentation page and returns its sample output. "+
			"Nothing is executed against the API. Block indexes are the positions in the page 'content' "+
			"array returned by get_page.",
	),
	mcp.WithString(
		"slug",
		mcp.Required(),
		mcp.Description("Page id (e.g., 'virtual-accounts')."),
	),
	mcp.WithNumber(
		"block",
		mcp.Required(),
		mcp.Description("Zero-based index of the code block in the page content."),
	),
	mcp.WithString(
		"version",
		mcp.Description("Optional: documentation version. Defaults to latest."),
	),
	mcp.WithString(
		"tab",
		mcp.Description("Optional: tab of the page. Defaults to 'guides'."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

type runSnippetResponse struct {
	Version string `json:"version"`
	Tab     string `json:"tab"`
	Slug    string `json:"slug"`
	Block   int    `json:"block"`
	runner.Result
}

// RegisterRunSnippetTool registers the run snippet tool with the MCP server.
func RegisterRunSnippetTool(s *server.MCPServer, resolver *docs.Resolver, run *runner.Runner) {
	s.AddTool(RunSnippetTool, withToolLogger("run_snippet", newRunSnippetHandlerFunc(resolver, run)))
}

func newRunSnippetHandlerFunc(
	resolver *docs.Resolver,
	run *runner.Runner,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.LoggerFromContext(ctx)

		slug, err := request.RequireString("slug")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("missing or invalid slug parameter: %s", err)), nil
		}
		index, err := request.RequireInt("block")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("missing or invalid block parameter: %s", err)), nil
		}

		res, err := resolver.Resolve(docs.Request{
			Version: request.GetString("version", ""),
			Tab:     request.GetString("tab", ""),
			Slug:    slug,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		snippet, err := res.Page.Snippet(index)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := run.Run(ctx, snippet)
		metrics.ObserveRun(metrics.SurfaceMCP, err)
		if err != nil {
			if errors.Is(err, runner.ErrNotRunnable) {
				return mcp.NewToolResultError(fmt.Sprintf("block %d of %s is not runnable", index, slug)), nil
			}
			logger.WarnContext(ctx, "Snippet run aborted", slog.String("error", err.Error()))
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.InfoContext(ctx, "Snippet run simulated",
			slog.String("slug", slug),
			slog.Int("block", index),
			slog.Duration("elapsed", out.Elapsed))

		return marshalResponse(ctx, logger, runSnippetResponse{
			Version: res.Version,
			Tab:     string(res.Tab),
			Slug:    res.Page.ID,
			Block:   index,
			Result:  out,
		})
	}
}
