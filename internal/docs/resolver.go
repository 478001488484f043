package docs

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
)

// Resolver maps requested (version, tab, slug) identifiers onto the content
// tree, applying defaults and the development-mode visibility filter.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	store   *Store
	devMode bool
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDevMode exposes DEV-status pages.
func WithDevMode(enabled bool) Option {
	return func(r *Resolver) {
		r.devMode = enabled
	}
}

// WithLogger sets the logger used to report version fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over store.
func NewResolver(store *Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying content store.
func (r *Resolver) Store() *Store {
	return r.store
}

// DevMode reports whether DEV-status pages are visible.
func (r *Resolver) DevMode() bool {
	return r.devMode
}

// Request holds the optional identifiers extracted from a docs URL.
type Request struct {
	Version string `json:"version,omitempty"`
	Tab     string `json:"tab,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

// PageRef is a lightweight pointer to a page, used for neighbours.
type PageRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Resolution is the outcome of resolving a Request. Version and Tab are
// always set once a version exists, even when the page is not found.
// Page points into the shared store and must not be modified.
type Resolution struct {
	Version         string   `json:"version"`
	Latest          bool     `json:"latest"`
	Tab             TabID    `json:"tab"`
	Category        string   `json:"category,omitempty"`
	Page            *Page    `json:"page,omitempty"`
	Prev            *PageRef `json:"prev,omitempty"`
	Next            *PageRef `json:"next,omitempty"`
	VersionFallback bool     `json:"version_fallback,omitempty"`
}

// Found reports whether a page was resolved.
func (res Resolution) Found() bool {
	return res.Page != nil
}

// PageEntry is a visible page together with its location in the tree.
type PageEntry struct {
	Version  string
	Tab      TabID
	Category string
	Page     *Page
}

// ResolveVersion selects the requested version, falling back to the default
// one. The returned flag is true when a non-empty request was substituted.
func (r *Resolver) ResolveVersion(requested string) (*Version, bool, error) {
	if requested != "" {
		if v, ok := r.store.Version(requested); ok {
			return v, false, nil
		}
	}

	v, ok := r.store.Default()
	if !ok {
		return nil, false, fmt.Errorf("%w: store is empty", ErrVersionNotFound)
	}

	fallback := requested != ""
	if fallback {
		r.logger.Warn("Unknown docs version, using default",
			slog.String("requested", requested),
			slog.String("version", v.Version))
	}

	return v, fallback, nil
}

// ResolveTab returns the tab named by requested, or DefaultTab.
func ResolveTab(requested string) TabID {
	if tab, ok := ParseTab(requested); ok {
		return tab
	}
	return DefaultTab
}

// Visible reports whether a page passes the development-mode filter.
func (r *Resolver) Visible(p *Page) bool {
	return r.devMode || !p.IsDev()
}

// Pages returns the visible pages of a version's tab in category then page order.
func (r *Resolver) Pages(v *Version, tab TabID) []PageEntry {
	var entries []PageEntry
	for ci := range v.Tabs[tab] {
		category := &v.Tabs[tab][ci]
		for pi := range category.Pages {
			page := &category.Pages[pi]
			if !r.Visible(page) {
				continue
			}
			entries = append(entries, PageEntry{
				Version:  v.Version,
				Tab:      tab,
				Category: category.Title,
				Page:     page,
			})
		}
	}
	return entries
}

// Resolve selects the version, tab and page for req. A slug with no visible
// match yields ErrPageNotFound; the default page is never substituted for it.
func (r *Resolver) Resolve(req Request) (Resolution, error) {
	v, fallback, err := r.ResolveVersion(req.Version)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{
		Version:         v.Version,
		Latest:          v.Latest,
		Tab:             ResolveTab(req.Tab),
		VersionFallback: fallback,
	}

	pages := r.Pages(v, res.Tab)

	idx := -1
	if req.Slug == "" {
		if len(pages) > 0 {
			idx = 0
		}
	} else {
		for i := range pages {
			if pages[i].Page.ID == req.Slug {
				idx = i
				break
			}
		}
	}

	if idx == -1 {
		slug := req.Slug
		if slug == "" {
			slug = "(default)"
		}
		return res, fmt.Errorf("%w: %s in %s/%s", ErrPageNotFound, slug, res.Version, res.Tab)
	}

	res.Page = pages[idx].Page
	res.Category = pages[idx].Category
	if idx > 0 {
		res.Prev = refOf(pages[idx-1].Page)
	}
	if idx+1 < len(pages) {
		res.Next = refOf(pages[idx+1].Page)
	}

	return res, nil
}

func refOf(p *Page) *PageRef {
	return &PageRef{ID: p.ID, Title: p.Title}
}

// PagePath builds the canonical /docs URL path of a page.
func PagePath(version string, tab TabID, slug string) string {
	return "/" + path.Join("docs", version, string(tab), slug)
}

// ParsePath extracts a Request from a /docs/:version/:tab/:slug path. Each
// segment is optional; a bare /docs requests all defaults.
func ParsePath(urlPath string) (Request, error) {
	trimmed := strings.Trim(urlPath, "/")
	segments := strings.Split(trimmed, "/")
	if segments[0] != "docs" {
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidPath, urlPath)
	}
	segments = segments[1:]
	if len(segments) > 3 {
		return Request{}, fmt.Errorf("%w: too many segments in %s", ErrInvalidPath, urlPath)
	}

	var req Request
	fields := []*string{&req.Version, &req.Tab, &req.Slug}
	for i, segment := range segments {
		*fields[i] = segment
	}
	return req, nil
}
