package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	DevicesRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fmns_devices_registered_total",
		Help: "Total number of registered devices",
	})

	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fmns_daily_reports_total",
		Help: "Daily statistics reports by outcome",
	}, []string{"outcome"})

	SummaryFoldFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fmns_summary_fold_failures_total",
		Help: "Reports persisted whose summary fold was lost",
	})

	ChartCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fmns_chart_cache_total",
		Help: "Chart cache lookups by result",
	}, []string{"result"})

	// Infrastructure metrics
	ChartQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fmns_chart_query_latency_seconds",
		Help:    "Latency of uncached chart aggregations",
		Buckets: prometheus.DefBuckets,
	})
)
