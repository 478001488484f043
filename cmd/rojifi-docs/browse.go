package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/navigation"
)

const browseHelp = `Commands:
  /docs/...   open a page
  ?<query>    search titles and slugs
  <n>         open the n-th search result
  ctrl+k      toggle the search overlay
  esc         close the search overlay
  menu        toggle the sidebar and list the current tab
  quit        exit
`

func newBrowseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the docs interactively from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := &browser{
				app:     a,
				out:     cmd.OutOrStdout(),
				session: navigation.NewSession(a.logger),
				keys:    make(chan navigation.KeyEvent),
			}
			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

// browser drives a navigation session from line-oriented terminal input.
// Key chords are delivered through the session's mounted listener and
// applied before the next line is read.
type browser struct {
	*app
	out     io.Writer
	session *navigation.Session
	keys    chan navigation.KeyEvent
	current docs.Resolution
	hits    []docs.Hit
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	if err := b.session.Mount(ctx, b.keys); err != nil {
		return err
	}

	b.open("/docs")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !b.handle(ctx, strings.TrimSpace(scanner.Text())) {
			break
		}
	}

	b.session.Unmount()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return writeIndentedJSON(b.out, b.session.Snapshot())
}

// handle processes one input line and reports whether to keep reading.
func (b *browser) handle(ctx context.Context, line string) bool {
	switch {
	case line == "":
	case line == "quit" || line == "q":
		return false
	case line == "help":
		_, _ = io.WriteString(b.out, browseHelp)
	case line == "ctrl+k" || line == "cmd+k":
		b.sendKey(ctx, navigation.KeyEvent{Key: "k", Ctrl: line == "ctrl+k", Meta: line == "cmd+k"})
	case line == "esc":
		b.sendKey(ctx, navigation.KeyEvent{Key: "Escape"})
	case line == "menu":
		b.session.ToggleSidebar()
		b.printSidebar()
	case strings.HasPrefix(line, "/"):
		b.open(line)
	case strings.HasPrefix(line, "?"):
		b.search(strings.TrimPrefix(line, "?"))
	default:
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(b.hits) {
			_, _ = fmt.Fprintf(b.out, "Unknown command %q, type help\n", line)
			return true
		}
		b.open(b.hits[n-1].Path)
	}
	return true
}

// sendKey delivers ev to the mounted listener and waits until it has been
// applied, so the next input line sees its effect.
func (b *browser) sendKey(ctx context.Context, ev navigation.KeyEvent) {
	ev.Applied = make(chan struct{})
	select {
	case b.keys <- ev:
	case <-ctx.Done():
		return
	}
	select {
	case <-ev.Applied:
	case <-ctx.Done():
	}
}

func (b *browser) open(urlPath string) {
	req, err := docs.ParsePath(urlPath)
	if err != nil {
		_, _ = fmt.Fprintf(b.out, "%v\n", err)
		return
	}

	b.session.Navigate(urlPath)

	res, err := b.resolver.Resolve(req)
	if err != nil {
		b.current = res
		_, _ = fmt.Fprintf(b.out, "Page not found: %s\n", urlPath)
		return
	}

	b.current = res
	_, _ = fmt.Fprintf(b.out, "== %s (%s > %s) ==\n", res.Page.Title, res.Tab.Label(), res.Category)
	_, _ = io.WriteString(b.out, docs.RenderMarkdown(res.Page))
	if res.Prev != nil {
		_, _ = fmt.Fprintf(b.out, "<- %s\n", docs.PagePath(res.Version, res.Tab, res.Prev.ID))
	}
	if res.Next != nil {
		_, _ = fmt.Fprintf(b.out, "-> %s\n", docs.PagePath(res.Version, res.Tab, res.Next.ID))
	}
}

func (b *browser) search(query string) {
	b.session.SetSearchOpen(true)
	b.session.SetQuery(query)

	results, err := b.resolver.Search(b.current.Version, query)
	if err != nil {
		_, _ = fmt.Fprintf(b.out, "%v\n", err)
		return
	}

	b.hits = docs.Hits(results, 0)
	printHits(b.out, b.hits)
}

func (b *browser) printSidebar() {
	v, ok := b.store.Version(b.current.Version)
	if !ok {
		return
	}
	for _, category := range b.resolver.Navigation(v, b.current.Tab) {
		_, _ = fmt.Fprintf(b.out, "%s (%d)\n", category.Title, category.PageCount)
		for _, p := range category.Pages {
			_, _ = fmt.Fprintf(b.out, "  %s\n", docs.PagePath(b.current.Version, b.current.Tab, p.ID))
		}
	}
}
