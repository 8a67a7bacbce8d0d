package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "odfuzzer_queries_generated_total",
			Help: "Total number of queries generated",
		},
		[]string{"entity_set"},
	)

	FiltersRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "odfuzzer_filters_rendered_total",
			Help: "Total number of filter expressions rendered",
		},
	)

	RenderFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "odfuzzer_render_failures_total",
			Help: "Total number of expression graphs that failed to render",
		},
	)

	DuplicateQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "odfuzzer_duplicate_queries_total",
			Help: "Total number of duplicate queries skipped",
		},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "odfuzzer_generation_duration_seconds",
			Help:    "Time taken to generate one query",
			Buckets: prometheus.DefBuckets,
		},
	)
)
