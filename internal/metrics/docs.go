package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/runner"
)

// Surfaces label which entry point served a docs operation.
const (
	SurfaceHTTP = "http"
	SurfaceMCP  = "mcp"
)

// Docs Prometheus metrics.
var (
	ResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_total",
			Help:      "Page resolutions by outcome",
		},
		[]string{"surface", "outcome"}, // found, fallback, not_found, error
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Search queries by whether they matched anything",
		},
		[]string{"surface", "result"}, // hit, miss, blank
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results per non-blank search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	SnippetRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snippet_runs_total",
			Help:      "Simulated code runs by outcome",
		},
		[]string{"surface", "outcome"}, // ok, not_runnable, canceled
	)
)

var registerOnce sync.Once

// RegisterDocsMetrics registers the docs metrics with the default registry.
// Safe to call more than once.
func RegisterDocsMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ResolveTotal)
		prometheus.MustRegister(SearchQueriesTotal)
		prometheus.MustRegister(SearchResults)
		prometheus.MustRegister(SnippetRunsTotal)
	})
}

// ObserveResolve records the outcome of a resolution.
func ObserveResolve(surface string, res docs.Resolution, err error) {
	ResolveTotal.WithLabelValues(surface, resolveOutcome(res, err)).Inc()
}

func resolveOutcome(res docs.Resolution, err error) string {
	switch {
	case errors.Is(err, docs.ErrPageNotFound):
		return "not_found"
	case err != nil:
		return "error"
	case res.VersionFallback:
		return "fallback"
	default:
		return "found"
	}
}

// ObserveSearch records a search query and its result count.
func ObserveSearch(surface, query string, results int) {
	if query == "" {
		SearchQueriesTotal.WithLabelValues(surface, "blank").Inc()
		return
	}
	result := "hit"
	if results == 0 {
		result = "miss"
	}
	SearchQueriesTotal.WithLabelValues(surface, result).Inc()
	SearchResults.Observe(float64(results))
}

// ObserveRun records a simulated snippet run.
func ObserveRun(surface string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, runner.ErrNotRunnable):
		outcome = "not_runnable"
	case err != nil:
		outcome = "canceled"
	}
	SnippetRunsTotal.WithLabelValues(surface, outcome).Inc()
}
