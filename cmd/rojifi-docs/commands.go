package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rojifi/rojifi-docs/internal/docs"
)

func newResolveCommand(a *app) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Resolve a /docs/:version/:tab/:slug path and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urlPath := "/docs"
			if len(args) == 1 {
				urlPath = args[0]
			}

			req, err := docs.ParsePath(urlPath)
			if err != nil {
				return err
			}

			res, err := a.resolver.Resolve(req)
			if err != nil {
				return err
			}

			if markdown {
				_, err = io.WriteString(cmd.OutOrStdout(), docs.RenderMarkdown(res.Page))
				return err
			}
			return writeIndentedJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the page as markdown instead of JSON")

	return cmd
}

func newSearchCommand(a *app) *cobra.Command {
	var (
		version string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search page titles and slugs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.resolver.Search(version, args[0])
			if err != nil {
				return err
			}

			hits := docs.Hits(results, limit)
			printHits(cmd.OutOrStdout(), hits)
			if len(hits) < len(results) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "... %d more\n", len(results)-len(hits))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "docs version to search (default: latest)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results, 0 for all")

	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded content tree as JSON",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.store.WriteJSON(out); err != nil {
				return err
			}
			a.logger.Info("Exported content",
				slog.String("path", out),
				slog.Int("version_count", a.store.Len()),
				slog.Int("total_pages", a.store.PageCount()))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "dist/content.json", "output file")

	return cmd
}

func printHits(w io.Writer, hits []docs.Hit) {
	if len(hits) == 0 {
		_, _ = fmt.Fprintln(w, "No results")
		return
	}
	for i, h := range hits {
		status := ""
		if h.Status == docs.StatusDev {
			status = " [DEV]"
		}
		_, _ = fmt.Fprintf(w, "%d. %s%s (%s > %s)\n   %s\n", i+1, h.Title, status, h.Tab.Label(), h.Category, h.Path)
	}
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
