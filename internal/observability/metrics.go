// Package observability provides Prometheus metrics for the sync loop and
// the upstream client.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all registered collectors.
type Metrics struct {
	SyncRunsTotal    *prometheus.CounterVec // by status: ok|error
	SyncDuration     prometheus.Histogram
	TokensAdded      prometheus.Counter
	TokensUpdated    prometheus.Counter
	SocialBackfilled prometheus.Counter
	UpstreamRequests *prometheus.CounterVec // by endpoint, outcome
	LastSyncUnix     prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "payattention"
	}
	return &Metrics{
		SyncRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Total number of sync runs by status",
		}, []string{"status"}),
		SyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "duration_seconds",
			Help:      "Sync run duration in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		TokensAdded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "tokens_added_total",
			Help:      "Total number of new tokens inserted",
		}),
		TokensUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "tokens_updated_total",
			Help:      "Total number of existing tokens refreshed",
		}),
		SocialBackfilled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "social_backfilled_total",
			Help:      "Total number of tokens that received social links",
		}),
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		LastSyncUnix: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "last_run_timestamp",
			Help:      "Unix timestamp of the last completed sync run",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the process-wide metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSyncRun records one completed sync run.
func RecordSyncRun(status string, seconds float64, added, updated, backfilled int) {
	m := DefaultMetrics
	m.SyncRunsTotal.WithLabelValues(status).Inc()
	m.SyncDuration.Observe(seconds)
	m.TokensAdded.Add(float64(added))
	m.TokensUpdated.Add(float64(updated))
	m.SocialBackfilled.Add(float64(backfilled))
	m.LastSyncUnix.SetToCurrentTime()
}

// RecordUpstreamRequest records one upstream call by endpoint and outcome.
func RecordUpstreamRequest(endpoint, outcome string) {
	DefaultMetrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}
