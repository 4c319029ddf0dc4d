package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cupbot"

// operationMetrics is the attempt/success/failure/duration bundle every
// service operation records.
type operationMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func newOperationMetrics(reg prometheus.Registerer, subsystem string) *operationMetrics {
	m := &operationMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "operation_attempts_total",
			Help: "Service operation attempts.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "operation_successes_total",
			Help: "Service operations that completed successfully.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "operation_failures_total",
			Help: "Service operations that returned an error.",
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name:    "operation_duration_seconds",
			Help:    "Service operation wall time.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *operationMetrics) attempt(op string) { m.attempts.WithLabelValues(op).Inc() }
func (m *operationMetrics) success(op string) { m.successes.WithLabelValues(op).Inc() }
func (m *operationMetrics) failure(op string) { m.failures.WithLabelValues(op).Inc() }
func (m *operationMetrics) duration(op string, d time.Duration) {
	m.durations.WithLabelValues(op).Observe(d.Seconds())
}
