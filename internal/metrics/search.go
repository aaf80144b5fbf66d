package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// LayoutCorrectionsTotal counts queries remapped from the wrong keyboard
	// layout.
	LayoutCorrectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kupisearch",
			Name:      "layout_corrections_total",
			Help:      "Queries corrected from a wrong keyboard layout",
		},
	)

	// FilterStageTotal counts which fallback-ladder stage produced the final
	// result list: filtered, backfill, or raw.
	FilterStageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kupisearch",
			Name:      "filter_stage_total",
			Help:      "Fallback ladder stage that produced the result list",
		},
		[]string{"stage"},
	)

	// ResultCacheTotal counts result cache hits and misses.
	ResultCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kupisearch",
			Name:      "result_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"},
	)
)

// RegisterSearchMetrics registers the search pipeline metrics explicitly
// (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(LayoutCorrectionsTotal)
	prometheus.MustRegister(FilterStageTotal)
	prometheus.MustRegister(ResultCacheTotal)
}
