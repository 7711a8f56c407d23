package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weavegate",
			Name:      "search_queries_total",
			Help:      "Total number of vector search queries",
		},
		[]string{"collection", "status"},
	)

	SearchQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "weavegate",
			Name:      "search_query_duration_seconds",
			Help:      "Vector search query duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"collection"},
	)

	FilterConditionsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "weavegate",
			Name:      "filter_conditions_skipped_total",
			Help:      "Total filter conditions dropped during compilation",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SearchQueryDuration)
	prometheus.MustRegister(FilterConditionsSkippedTotal)
	searchMetricsRegistered = true
}
