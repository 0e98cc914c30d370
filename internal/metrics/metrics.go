package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Длительность HTTP запросов (секунды)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Длительность SQL запросов (секунды)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	MilestoneTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milestone_transitions_total",
			Help: "Total number of milestone status transitions",
		},
		[]string{"status"},
	)

	// Сумма средств по операциям эскроу
	EscrowAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_amount_total",
			Help: "Total escrow amount by operation",
		},
		[]string{"operation"}, // held, released
	)

	OutboxPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_total",
			Help: "Outbox events processed by result",
		},
		[]string{"result"}, // sent, retry, failed
	)
)

func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQuery подходит как logger.QueryObserver.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordMilestoneTransition(status string) {
	MilestoneTransitions.WithLabelValues(status).Inc()
}

func RecordEscrow(operation string, amount float64) {
	EscrowAmount.WithLabelValues(operation).Add(amount)
}

func RecordOutbox(result string) {
	OutboxPublished.WithLabelValues(result).Inc()
}
