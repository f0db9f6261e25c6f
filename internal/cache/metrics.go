package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// allKeysLabel marks an InvalidateAll in the invalidation counter.
const allKeysLabel = "*"

//nolint:gochecknoglobals // Prometheus metrics
var (
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_hits_total",
		Help: "Total number of fresh cache hits",
	}, []string{"key"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_misses_total",
		Help: "Total number of cache misses, stale entries included",
	}, []string{"key", "reason"})

	CachePutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_puts_total",
		Help: "Total number of cache puts",
	}, []string{"key"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_invalidations_total",
		Help: "Total number of explicit invalidations",
	}, []string{"key"})

	StoreDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_store_dropped_total",
		Help: "Total number of writes a backing store refused",
	}, []string{"backend"})

	FetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_fetch_errors_total",
		Help: "Total number of failed resource fetches",
	}, []string{"key"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_fetch_duration_seconds",
		Help:    "Duration of resource fetches on cache miss",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})
)
