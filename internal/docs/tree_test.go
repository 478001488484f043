package docs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNavigationOmitsHiddenAndDevPages(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	v, _, err := r.ResolveVersion("v1")
	require.NoError(t, err)

	nav := r.Navigation(v, TabGuides)
	require.Len(t, nav, 1)
	require.Equal(t, "Introduction", nav[0].Title)
	require.Equal(t, 2, nav[0].PageCount)
	require.Equal(t, "introduction", nav[0].Pages[0].ID)
	require.Equal(t, "authentication", nav[0].Pages[1].ID)
}

func TestNavigationDevModeShowsDevPages(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, WithDevMode(true))
	v, _, err := r.ResolveVersion("v1")
	require.NoError(t, err)

	nav := r.Navigation(v, TabGuides)
	require.Len(t, nav, 2)
	require.Equal(t, "Early Access", nav[1].Title)
	require.Equal(t, []NavPage{{ID: "wallet-beta", Title: "Wallet Beta", Status: StatusDev}}, nav[1].Pages)
}

func TestNavigationEmptyTab(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	v, _, err := r.ResolveVersion("v1")
	require.NoError(t, err)

	require.Empty(t, r.Navigation(v, TabSDKs))
	require.Empty(t, r.Navigation(v, TabChangelog))
}

func TestTabSummaries(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	v, _, err := r.ResolveVersion("v1")
	require.NoError(t, err)

	tabs := r.TabSummaries(v)
	require.Equal(t, []NavTab{
		{ID: TabGuides, Label: TabGuides.Label(), PageCount: 3},
		{ID: TabAPIReference, Label: TabAPIReference.Label(), PageCount: 2},
		{ID: TabSDKs, Label: TabSDKs.Label(), PageCount: 0},
		{ID: TabChangelog, Label: TabChangelog.Label(), PageCount: 0},
	}, tabs)
}
