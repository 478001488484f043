package docs

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders a page and its content blocks as markdown for
// text-only consumers such as MCP clients and the CLI.
func RenderMarkdown(p *Page) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.IsDev() {
		b.WriteString("**DEV**\n\n")
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}

	for i := range p.Content {
		renderBlock(&b, &p.Content[i])
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderBlock(b *strings.Builder, block *Block) {
	switch block.Kind {
	case BlockText:
		fmt.Fprintf(b, "%s\n\n", block.Content)
	case BlockAlert:
		variant := block.Variant
		if variant == "" {
			variant = AlertInfo
		}
		fmt.Fprintf(b, "> **%s:** %s\n\n", strings.ToUpper(string(variant)), block.Content)
	case BlockCode:
		fmt.Fprintf(b, "```%s\n%s\n```\n\n", block.Code.Language, block.Code.Body)
		if block.Code.Runnable && block.Code.Output != "" {
			fmt.Fprintf(b, "Output:\n\n```\n%s\n```\n\n", block.Code.Output)
		}
	case BlockEndpoint:
		fmt.Fprintf(b, "`%s %s`", block.Endpoint.Method, block.Endpoint.Path)
		if block.Endpoint.Description != "" {
			fmt.Fprintf(b, " %s", block.Endpoint.Description)
		}
		b.WriteString("\n\n")
	case BlockEnum:
		fmt.Fprintf(b, "**%s**\n\n", block.Enum.Name)
		if block.Enum.Description != "" {
			fmt.Fprintf(b, "%s\n\n", block.Enum.Description)
		}
		b.WriteString("| Name | Value | Description |\n|---|---|---|\n")
		for _, v := range block.Enum.Values {
			fmt.Fprintf(b, "| %s | `%s` | %s |\n", v.Name, v.Value, v.Description)
		}
		b.WriteString("\n")
	}
}
