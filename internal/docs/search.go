package docs

import "strings"

// Result is a search hit. Page is shared with the store and must not be
// modified. Results keep traversal order: tab, then category,
// then page. There is no relevance ranking.
type Result struct {
	Version  string `json:"version"`
	Tab      TabID  `json:"tab"`
	Category string `json:"category"`
	Page     *Page  `json:"page"`
}

// Candidates flattens every visible page of v across all tabs in canonical tab order.
func (r *Resolver) Candidates(v *Version) []PageEntry {
	var entries []PageEntry
	for _, tab := range tabOrder {
		entries = append(entries, r.Pages(v, tab)...)
	}
	return entries
}

// Search matches query against the titles and ids of the visible pages of
// the resolved version. A blank query yields no results.
func (r *Resolver) Search(version, query string) ([]Result, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Result{}, nil
	}

	v, _, err := r.ResolveVersion(version)
	if err != nil {
		return nil, err
	}

	results := []Result{}
	for _, entry := range r.Candidates(v) {
		if !matches(entry.Page, q) {
			continue
		}
		results = append(results, Result{
			Version:  entry.Version,
			Tab:      entry.Tab,
			Category: entry.Category,
			Page:     entry.Page,
		})
	}

	return results, nil
}

// matches expects q already trimmed and lowercased. Ids are compared as
// stored since slugs are conventionally lowercase.
func matches(p *Page, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(p.ID, q)
}

// Hit is a search result flattened for API consumers.
type Hit struct {
	Version     string `json:"version"`
	Tab         TabID  `json:"tab"`
	Category    string `json:"category"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	Path        string `json:"path"`
}

// Hits flattens results, keeping at most limit of them. A non-positive
// limit keeps everything.
func Hits(results []Result, limit int) []Hit {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, Hit{
			Version:     r.Version,
			Tab:         r.Tab,
			Category:    r.Category,
			ID:          r.Page.ID,
			Title:       r.Page.Title,
			Description: r.Page.Description,
			Status:      r.Page.Status,
			Path:        PagePath(r.Version, r.Tab, r.Page.ID),
		})
	}
	return hits
}
