package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/runner"
)

func TestRegisterDocsMetricsIsIdempotent(t *testing.T) {
	require.NotPanics(t, func() {
		RegisterDocsMetrics()
		RegisterDocsMetrics()
	})
}

func TestResolveOutcome(t *testing.T) {
	require.Equal(t, "found", resolveOutcome(docs.Resolution{}, nil))
	require.Equal(t, "fallback", resolveOutcome(docs.Resolution{VersionFallback: true}, nil))
	require.Equal(t, "not_found", resolveOutcome(docs.Resolution{}, docs.ErrPageNotFound))
	require.Equal(t, "error", resolveOutcome(docs.Resolution{}, docs.ErrVersionNotFound))
}

func TestObserveResolve(t *testing.T) {
	before := testutil.ToFloat64(ResolveTotal.WithLabelValues("test", "not_found"))
	ObserveResolve("test", docs.Resolution{}, docs.ErrPageNotFound)
	require.InDelta(t, before+1, testutil.ToFloat64(ResolveTotal.WithLabelValues("test", "not_found")), 0.001)
}

func TestObserveSearch(t *testing.T) {
	ObserveSearch("test", "", 0)
	ObserveSearch("test", "wallet", 3)
	ObserveSearch("test", "zzz", 0)

	require.GreaterOrEqual(t, testutil.ToFloat64(SearchQueriesTotal.WithLabelValues("test", "blank")), 1.0)
	require.GreaterOrEqual(t, testutil.ToFloat64(SearchQueriesTotal.WithLabelValues("test", "hit")), 1.0)
	require.GreaterOrEqual(t, testutil.ToFloat64(SearchQueriesTotal.WithLabelValues("test", "miss")), 1.0)
}

func TestObserveRun(t *testing.T) {
	ObserveRun("test", nil)
	ObserveRun("test", runner.ErrNotRunnable)
	ObserveRun("test", context.Canceled)

	for _, outcome := range []string{"ok", "not_runnable", "canceled"} {
		require.GreaterOrEqual(t, testutil.ToFloat64(SnippetRunsTotal.WithLabelValues("test", outcome)), 1.0, outcome)
	}
}
