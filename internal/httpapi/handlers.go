package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/metrics"
	"github.com/rojifi/rojifi-docs/internal/theme"
)

const (
	// VersionFallbackHeader is set when an unknown version was substituted.
	VersionFallbackHeader = "X-Docs-Version-Fallback"

	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// PageResponse carries a resolved page together with the chrome needed to
// render it: sidebar, tab bar and version list.
type PageResponse struct {
	docs.Resolution
	Path       string             `json:"path,omitempty"`
	Navigation []docs.NavCategory `json:"navigation"`
	Tabs       []docs.NavTab      `json:"tabs"`
	Versions   []string           `json:"versions"`
	DevMode    bool               `json:"dev_mode"`
	Error      *ErrorResponse     `json:"error,omitempty"`
}

// VersionsResponse lists the available versions.
type VersionsResponse struct {
	Versions []string `json:"versions"`
	Default  string   `json:"default"`
}

// NavigationResponse is the sidebar of one tab.
type NavigationResponse struct {
	Version         string             `json:"version"`
	VersionFallback bool               `json:"version_fallback,omitempty"`
	Tab             docs.TabID         `json:"tab"`
	Categories      []docs.NavCategory `json:"categories"`
}

// SearchResponse is the result list of a search.
type SearchResponse struct {
	Query   string     `json:"query"`
	Results []docs.Hit `json:"results"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
}

// ThemeResponse reports the active theme.
type ThemeResponse struct {
	Mode theme.Mode `json:"mode"`
}

type themeRequest struct {
	Mode theme.Mode `json:"mode"`
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"versions": s.resolver.Store().Len(),
		"pages":    s.resolver.Store().PageCount(),
	})
}

// ListVersions handles GET /versions.
func (s *Server) ListVersions(w http.ResponseWriter, _ *http.Request) {
	resp := VersionsResponse{Versions: s.resolver.Store().Versions()}
	if v, ok := s.resolver.Store().Default(); ok {
		resp.Default = v.Version
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetPage handles GET /docs[/{version}[/{tab}[/{slug}]]]. A missing page is
// a 404 that still carries the resolved version, tab and sidebar.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	req := docs.Request{
		Version: chi.URLParam(r, "version"),
		Tab:     chi.URLParam(r, "tab"),
		Slug:    chi.URLParam(r, "slug"),
	}

	res, err := s.resolver.Resolve(req)
	metrics.ObserveResolve(metrics.SurfaceHTTP, res, err)

	if err != nil && !errors.Is(err, docs.ErrPageNotFound) {
		s.handleDomainError(w, r, err)
		return
	}

	if res.VersionFallback {
		w.Header().Set(VersionFallbackHeader, "true")
	}

	resp := s.pageChrome(res)
	if err != nil {
		loggerFrom(r, s.logger).Info("Page not found",
			slog.String("slug", req.Slug),
			slog.String("version", res.Version),
			slog.String("tab", string(res.Tab)))
		resp.Error = &ErrorResponse{Code: codePageNotFound, Message: err.Error()}
		writeJSON(w, http.StatusNotFound, resp)
		return
	}

	resp.Path = docs.PagePath(res.Version, res.Tab, res.Page.ID)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) pageChrome(res docs.Resolution) PageResponse {
	resp := PageResponse{
		Resolution: res,
		Versions:   s.resolver.Store().Versions(),
		DevMode:    s.resolver.DevMode(),
		Navigation: []docs.NavCategory{},
		Tabs:       []docs.NavTab{},
	}
	if v, ok := s.resolver.Store().Version(res.Version); ok {
		resp.Navigation = s.resolver.Navigation(v, res.Tab)
		resp.Tabs = s.resolver.TabSummaries(v)
	}
	return resp
}

// Navigation handles GET /docs/{version}/{tab}/_nav. Page ids never start
// with an underscore, so the route cannot shadow a page.
func (s *Server) Navigation(w http.ResponseWriter, r *http.Request) {
	v, fallback, err := s.resolver.ResolveVersion(chi.URLParam(r, "version"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if fallback {
		w.Header().Set(VersionFallbackHeader, "true")
	}

	tab := docs.ResolveTab(chi.URLParam(r, "tab"))
	writeJSON(w, http.StatusOK, NavigationResponse{
		Version:         v.Version,
		VersionFallback: fallback,
		Tab:             tab,
		Categories:      s.resolver.Navigation(v, tab),
	})
}

// Search handles GET /docs/{version}/search?q=&limit=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxSearchLimit)
	}

	results, err := s.resolver.Search(chi.URLParam(r, "version"), query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	metrics.ObserveSearch(metrics.SurfaceHTTP, strings.TrimSpace(query), len(results))

	hits := docs.Hits(results, limit)
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Results: hits,
		Count:   len(hits),
		Total:   len(results),
	})
}

// RunSnippet handles POST /docs/{version}/{tab}/{slug}/blocks/{index}/run.
func (s *Server) RunSnippet(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "block index must be an integer")
		return
	}

	res, err := s.resolver.Resolve(docs.Request{
		Version: chi.URLParam(r, "version"),
		Tab:     chi.URLParam(r, "tab"),
		Slug:    chi.URLParam(r, "slug"),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	snippet, err := res.Page.Snippet(index)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out, err := s.runner.Run(r.Context(), snippet)
	metrics.ObserveRun(metrics.SurfaceHTTP, err)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// GetTheme handles GET /theme.
func (s *Server) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ThemeResponse{Mode: theme.FromRequest(r).Mode()})
}

// UpdateTheme handles POST /theme. An empty body toggles the current theme;
// {"mode": "dark"} sets it explicitly. The result is persisted in a cookie.
func (s *Server) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tc := theme.FromRequest(r)
	if req.Mode == "" {
		tc.Toggle()
	} else if err := tc.Set(req.Mode); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	theme.SetCookie(w, tc.Mode())
	writeJSON(w, http.StatusOK, ThemeResponse{Mode: tc.Mode()})
}
