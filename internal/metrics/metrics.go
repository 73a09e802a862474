// Package metrics defines the Prometheus collectors of the reconciler and the
// status cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reconcile results.
const (
	ResultIntegrated           = "integrated"
	ResultPending              = "pending"
	ResultCommitted            = "committed"
	ResultOperationUnavailable = "operation_unavailable"
	ResultClusterUnavailable   = "cluster_unavailable"
	ResultTokenNotFound        = "token_not_found"
	ResultCommitInvalid        = "commit_invalid"
	ResultError                = "error"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	ReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kubelink",
			Name:      "reconcile_total",
			Help:      "Total number of cluster reconciliations by result",
		},
		[]string{"result"},
	)

	ReconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "kubelink",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of cluster reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)

	StatusCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kubelink",
			Name:      "status_cache_requests_total",
			Help:      "Status cache lookups by result",
		},
		[]string{"result"},
	)
)

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{ReconcileTotal, ReconcileDuration, StatusCacheRequests} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
