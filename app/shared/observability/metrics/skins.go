package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SkinsMetrics records skins recomputation activity.
type SkinsMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordSkinsAwarded(ctx context.Context, count int)
}

type prometheusSkinsMetrics struct {
	ops     *operationMetrics
	awarded prometheus.Counter
}

// NewSkinsMetrics registers and returns prometheus-backed skins metrics.
func NewSkinsMetrics(reg prometheus.Registerer) SkinsMetrics {
	m := &prometheusSkinsMetrics{
		ops: newOperationMetrics(reg, "skins"),
		awarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "skins",
			Name: "awarded_total",
			Help: "Skins awarded across recomputed rounds.",
		}),
	}
	reg.MustRegister(m.awarded)
	return m
}

func (m *prometheusSkinsMetrics) RecordOperationAttempt(ctx context.Context, op string) {
	m.ops.attempt(op)
}

func (m *prometheusSkinsMetrics) RecordOperationSuccess(ctx context.Context, op string) {
	m.ops.success(op)
}

func (m *prometheusSkinsMetrics) RecordOperationFailure(ctx context.Context, op string) {
	m.ops.failure(op)
}

func (m *prometheusSkinsMetrics) RecordOperationDuration(ctx context.Context, op string, d time.Duration) {
	m.ops.duration(op, d)
}

func (m *prometheusSkinsMetrics) RecordSkinsAwarded(ctx context.Context, count int) {
	m.awarded.Add(float64(count))
}

// NoOpSkinsMetrics discards everything; used in tests.
type NoOpSkinsMetrics struct{}

func (NoOpSkinsMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpSkinsMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpSkinsMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpSkinsMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpSkinsMetrics) RecordSkinsAwarded(context.Context, int)                        {}
