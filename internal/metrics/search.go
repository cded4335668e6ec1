package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search status label values.
const (
	StatusOK              = "ok"
	StatusInvalidArgument = "invalid_argument"
	StatusInternal        = "internal"
)

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptsearch",
			Name:      "search_requests_total",
			Help:      "Total number of prompt search requests",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "promptsearch",
			Name:      "search_duration_seconds",
			Help:      "Prompt search pipeline duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "promptsearch",
			Name:      "search_candidates",
			Help:      "Number of candidate records matched per search",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "promptsearch",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(SearchResults)
	searchMetricsRegistered = true
}

// ObserveSearch records a finished search.
func ObserveSearch(status string, seconds float64, candidates, results int) {
	SearchRequestsTotal.WithLabelValues(status).Inc()
	SearchDuration.Observe(seconds)
	if status == StatusOK {
		SearchCandidates.Observe(float64(candidates))
		SearchResults.Observe(float64(results))
	}
}
