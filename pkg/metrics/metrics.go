package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReservationMetrics records outcomes of reservation operations.
type ReservationMetrics struct {
	duration *prometheus.HistogramVec
	created  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewReservationMetrics registers the reservation metrics on the provided registerer.
func NewReservationMetrics(reg prometheus.Registerer) *ReservationMetrics {
	if reg == nil {
		return &ReservationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reservation_commit_duration_seconds",
		Help:    "Duration of reservation commit transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_success",
		Help: "Successful reservation operations.",
	}, []string{"operation"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_rejected",
		Help: "Rejected reservation operations by reason.",
	}, []string{"operation", "reason"})
	reg.MustRegister(duration, created, rejected)
	return &ReservationMetrics{
		duration: duration,
		created:  created,
		rejected: rejected,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *ReservationMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *ReservationMetrics) IncSuccess(operation string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncRejected increments the rejection counter for the named operation and reason.
func (m *ReservationMetrics) IncRejected(operation, reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(operation), normalizeLabel(reason)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
