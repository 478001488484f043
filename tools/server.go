package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/rojifi/rojifi-docs/internal/buildinfo"
	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/runner"
)

// Server instructions should stay brief; they are sent with every session.
const instructions = `
Use the provided tools to browse the Rojifi API documentation.
Start with list_versions, then list_pages for a tab, and get_page to read a page.
Use search_docs to find pages by title or slug, and run_snippet to see the sample
output of a runnable code block.
`

// NewServer creates an MCP server with every docs tool registered.
func NewServer(resolver *docs.Resolver, run *runner.Runner) *server.MCPServer {
	s := server.NewMCPServer(
		"rojifi-docs",
		buildinfo.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	RegisterListVersionsTool(s, resolver)
	RegisterListPagesTool(s, resolver)
	RegisterGetPageTool(s, resolver)
	RegisterSearchDocsTool(s, resolver)
	RegisterRunSnippetTool(s, resolver, run)

	return s
}
