package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RequestsCreated   prometheus.Counter
	Transitions       *prometheus.CounterVec
	Rejections        *prometheus.CounterVec
	RequestsDeleted   prometheus.Counter
	OperationDuration prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blood_requests_created_total",
			Help:      "The total number of blood requests created",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "The total number of status transitions applied",
		}, []string{"action", "to"}),
		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "The total number of rejected operations",
		}, []string{"reason"}),
		RequestsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blood_requests_deleted_total",
			Help:      "The total number of blood requests deleted",
		}),
		OperationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time taken by lifecycle operations",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
