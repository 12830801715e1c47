// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// MessagesTotal tracks inbound chat messages by detected intent.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_messages_total",
			Help: "Total inbound chat messages by primary intent",
		},
		[]string{"intent"},
	)

	// SessionsActive tracks live appointment sessions in the registry.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intake_sessions_active",
			Help: "Appointment sessions currently tracked in the registry",
		},
	)

	// SessionsStartedTotal tracks appointment sessions started.
	SessionsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_sessions_started_total",
			Help: "Total appointment collection sessions started",
		},
	)

	// SessionsExpiredTotal tracks sessions torn down by the idle sweeper.
	SessionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_sessions_expired_total",
			Help: "Total sessions expired by the idle sweeper",
		},
	)

	// SubmissionsTotal tracks appointment submissions to the backend.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Appointment submissions to the scheduling backend",
		},
		[]string{"status"},
	)

	// BackendRequestDuration tracks scheduling-backend call duration.
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_backend_request_duration_seconds",
			Help:    "Scheduling backend request duration",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)

	// WSConnectionsActive tracks active websocket push channels.
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intake_ws_connections_active",
			Help: "Number of active websocket connections",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordSubmission records an appointment submission outcome.
func RecordSubmission(status string) {
	SubmissionsTotal.WithLabelValues(status).Inc()
}

// IncrementWSConnections increments the active websocket connection count.
func IncrementWSConnections() {
	WSConnectionsActive.Inc()
}

// DecrementWSConnections decrements the active websocket connection count.
func DecrementWSConnections() {
	WSConnectionsActive.Dec()
}
