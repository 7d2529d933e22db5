package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InteractionsTotal counts applied interactions by kind and resulting state.
	InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aigallery_interactions_total",
		Help: "Total number of applied interactions by kind and resulting state",
	}, []string{"kind", "state"})

	// InteractionsIgnoredTotal counts interactions that were silently dropped.
	InteractionsIgnoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aigallery_interactions_ignored_total",
		Help: "Total number of interactions dropped without effect, by kind and reason",
	}, []string{"kind", "reason"})

	// AuthAttemptsTotal counts register and login attempts by outcome.
	AuthAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aigallery_auth_attempts_total",
		Help: "Total number of authentication attempts by operation and outcome",
	}, []string{"operation", "outcome"})

	// ActiveSessions is the number of live sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aigallery_active_sessions",
		Help: "Number of live sessions",
	})

	// HTTPRequestDuration records request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aigallery_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func StateLabel(active bool) string {
	if active {
		return "on"
	}
	return "off"
}
