package docs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStoreIndexesVersions(t *testing.T) {
	t.Parallel()

	store, err := NewStore(sampleVersions())
	require.NoError(t, err)

	require.Equal(t, 2, store.Len())
	require.Equal(t, []string{"v1", "v0"}, store.Versions())
	require.True(t, store.HasVersion("v0"))
	require.False(t, store.HasVersion("v2"))
	require.Equal(t, 8, store.PageCount())

	v, ok := store.Default()
	require.True(t, ok)
	require.Equal(t, "v1", v.Version)
}

func TestNewStoreRejectsInvalidContent(t *testing.T) {
	t.Parallel()

	page := func(id string) Page {
		return Page{ID: id, Title: id, Status: StatusProduction}
	}

	tests := []struct {
		name     string
		versions []Version
	}{
		{
			name:     "empty version id",
			versions: []Version{{Version: ""}},
		},
		{
			name:     "duplicate version",
			versions: []Version{{Version: "v1"}, {Version: "v1"}},
		},
		{
			name:     "two latest versions",
			versions: []Version{{Version: "v1", Latest: true}, {Version: "v2", Latest: true}},
		},
		{
			name: "unknown tab",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				"tutorials": {{Title: "A", Pages: []Page{page("a")}}},
			}}},
		},
		{
			name: "reserved page id",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabGuides: {{Title: "A", Pages: []Page{page("_nav")}}},
			}}},
		},
		{
			name: "page without id",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabGuides: {{Title: "A", Pages: []Page{page("")}}},
			}}},
		},
		{
			name: "duplicate page id across categories",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabGuides: {
					{Title: "A", Pages: []Page{page("same")}},
					{Title: "B", Pages: []Page{page("same")}},
				},
			}}},
		},
		{
			name: "unknown status",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabGuides: {{Title: "A", Pages: []Page{{ID: "a", Title: "A", Status: "BETA"}}}},
			}}},
		},
		{
			name: "code block without snippet",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabGuides: {{Title: "A", Pages: []Page{{
					ID: "a", Title: "A", Status: StatusProduction,
					Content: []Block{{Kind: BlockCode}},
				}}}},
			}}},
		},
		{
			name: "unsupported endpoint method",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabAPIReference: {{Title: "A", Pages: []Page{{
					ID: "a", Title: "A", Status: StatusProduction,
					Content: []Block{{Kind: BlockEndpoint, Endpoint: &Endpoint{Method: "HEAD", Path: "/x"}}},
				}}}},
			}}},
		},
		{
			name: "unknown alert variant",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabGuides: {{Title: "A", Pages: []Page{{
					ID: "a", Title: "A", Status: StatusProduction,
					Content: []Block{{Kind: BlockAlert, Variant: "tip", Content: "x"}},
				}}}},
			}}},
		},
		{
			name: "unknown block type",
			versions: []Version{{Version: "v1", Tabs: map[TabID][]Category{
				TabGuides: {{Title: "A", Pages: []Page{{
					ID: "a", Title: "A", Status: StatusProduction,
					Content: []Block{{Kind: "image"}},
				}}}},
			}}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewStore(tc.versions)
			require.ErrorIs(t, err, ErrInvalidContent)
		})
	}
}

func TestNewStoreAllowsSameIDInDifferentTabs(t *testing.T) {
	t.Parallel()

	_, err := NewStore([]Version{{Version: "v1", Tabs: map[TabID][]Category{
		TabGuides:       {{Title: "A", Pages: []Page{{ID: "intro", Title: "Intro", Status: StatusProduction}}}},
		TabAPIReference: {{Title: "B", Pages: []Page{{ID: "intro", Title: "Intro", Status: StatusProduction}}}},
	}}})
	require.NoError(t, err)
}

func TestStoreAccessorsShareTheTree(t *testing.T) {
	t.Parallel()

	store, err := NewStore(sampleVersions())
	require.NoError(t, err)

	names := store.Versions()
	names[0] = "mutated"
	require.Equal(t, []string{"v1", "v0"}, store.Versions())

	first, ok := store.Version("v1")
	require.True(t, ok)
	second, ok := store.Version("v1")
	require.True(t, ok)
	require.Same(t, first, second)

	res, err := NewResolver(store).Resolve(Request{Version: "v1", Tab: "guides", Slug: "introduction"})
	require.NoError(t, err)
	require.Same(t, &first.Tabs[TabGuides][0].Pages[0], res.Page)
}
