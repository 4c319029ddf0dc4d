package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FactMetrics records fact-builder activity.
type FactMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordFactsRebuilt(ctx context.Context, count int)
	RecordFactsDeleted(ctx context.Context, count int)
}

type prometheusFactMetrics struct {
	ops     *operationMetrics
	rebuilt prometheus.Counter
	deleted prometheus.Counter
}

// NewFactMetrics registers and returns prometheus-backed fact metrics.
func NewFactMetrics(reg prometheus.Registerer) FactMetrics {
	m := &prometheusFactMetrics{
		ops: newOperationMetrics(reg, "facts"),
		rebuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "facts",
			Name: "rebuilt_total",
			Help: "Player match facts written.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "facts",
			Name: "deleted_total",
			Help: "Player match facts deleted for reopened or removed matches.",
		}),
	}
	reg.MustRegister(m.rebuilt, m.deleted)
	return m
}

func (m *prometheusFactMetrics) RecordOperationAttempt(ctx context.Context, op string) {
	m.ops.attempt(op)
}

func (m *prometheusFactMetrics) RecordOperationSuccess(ctx context.Context, op string) {
	m.ops.success(op)
}

func (m *prometheusFactMetrics) RecordOperationFailure(ctx context.Context, op string) {
	m.ops.failure(op)
}

func (m *prometheusFactMetrics) RecordOperationDuration(ctx context.Context, op string, d time.Duration) {
	m.ops.duration(op, d)
}

func (m *prometheusFactMetrics) RecordFactsRebuilt(ctx context.Context, count int) {
	m.rebuilt.Add(float64(count))
}

func (m *prometheusFactMetrics) RecordFactsDeleted(ctx context.Context, count int) {
	m.deleted.Add(float64(count))
}

// NoOpFactMetrics discards everything; used in tests.
type NoOpFactMetrics struct{}

func (NoOpFactMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpFactMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpFactMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpFactMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpFactMetrics) RecordFactsRebuilt(context.Context, int)                        {}
func (NoOpFactMetrics) RecordFactsDeleted(context.Context, int)                        {}
