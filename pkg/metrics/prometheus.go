package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	LaunchFetches     *prometheus.CounterVec
	FetchDuration     prometheus.Histogram
	CacheHits         prometheus.Counter
	MalformedDropped  prometheus.Counter
	CachedLaunches    prometheus.Gauge
	FavoriteToggles   *prometheus.CounterVec
	FavoritesTotal    prometheus.Gauge
	StorageErrorCount *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registerer
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates new prometheus metrics registered on reg.
// A nil reg builds unregistered collectors, which is what tests want.
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LaunchFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "launch_fetches_total",
			Help:      "The total number of remote launch fetches by outcome",
		}, []string{"outcome"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "launch_fetch_duration_seconds",
			Help:      "Time taken to fetch launches from the remote source",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "launch_cache_hits_total",
			Help:      "The total number of refreshes served from fresh cached data",
		}),
		MalformedDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "launch_records_dropped_total",
			Help:      "The total number of fetched launch records dropped as malformed",
		}),
		CachedLaunches: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "launch_cache_records",
			Help:      "The number of launch records currently cached",
		}),
		FavoriteToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_toggles_total",
			Help:      "The total number of favorite toggles by resulting action",
		}, []string{"action"}),
		FavoritesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favorites",
			Help:      "The number of launches currently favorited",
		}),
		StorageErrorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "The total number of favorites storage errors",
		}, []string{"operation"}),
	}
}
