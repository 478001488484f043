package docs

// NavPage is a sidebar entry.
type NavPage struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

// NavCategory is a sidebar group. Categories without visible pages are omitted.
type NavCategory struct {
	Title     string    `json:"title"`
	PageCount int       `json:"page_count"`
	Pages     []NavPage `json:"pages"`
}

// NavTab summarizes one tab of a version for the tab bar.
type NavTab struct {
	ID        TabID  `json:"id"`
	Label     string `json:"label"`
	PageCount int    `json:"page_count"`
}

// Navigation builds the sidebar for a version's tab. Hidden and filtered
// pages are left out.
func (r *Resolver) Navigation(v *Version, tab TabID) []NavCategory {
	categories := v.Tabs[tab]
	nav := make([]NavCategory, 0, len(categories))

	for ci := range categories {
		category := &categories[ci]

		var pages []NavPage
		for pi := range category.Pages {
			page := &category.Pages[pi]
			if page.Hidden || !r.Visible(page) {
				continue
			}
			pages = append(pages, NavPage{ID: page.ID, Title: page.Title, Status: page.Status})
		}

		if len(pages) == 0 {
			continue
		}

		nav = append(nav, NavCategory{
			Title:     category.Title,
			PageCount: len(pages),
			Pages:     pages,
		})
	}

	return nav
}

// TabSummaries lists every tab in canonical order with its visible page count.
func (r *Resolver) TabSummaries(v *Version) []NavTab {
	tabs := make([]NavTab, 0, len(tabOrder))
	for _, tab := range tabOrder {
		tabs = append(tabs, NavTab{
			ID:        tab,
			Label:     tab.Label(),
			PageCount: len(r.Pages(v, tab)),
		})
	}
	return tabs
}
