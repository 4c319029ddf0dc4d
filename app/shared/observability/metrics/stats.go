package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatMetrics records stats-aggregator activity.
type StatMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordScopesRecomputed(ctx context.Context, count int)
	RecordScopesDeleted(ctx context.Context, count int)
}

type prometheusStatMetrics struct {
	ops        *operationMetrics
	recomputed prometheus.Counter
	deleted    prometheus.Counter
}

// NewStatMetrics registers and returns prometheus-backed stat metrics.
func NewStatMetrics(reg prometheus.Registerer) StatMetrics {
	m := &prometheusStatMetrics{
		ops: newOperationMetrics(reg, "stats"),
		recomputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "stats",
			Name: "scopes_recomputed_total",
			Help: "Player stat scopes refolded from facts.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "stats",
			Name: "scopes_deleted_total",
			Help: "Player stat scopes deleted because their fact set became empty.",
		}),
	}
	reg.MustRegister(m.recomputed, m.deleted)
	return m
}

func (m *prometheusStatMetrics) RecordOperationAttempt(ctx context.Context, op string) {
	m.ops.attempt(op)
}

func (m *prometheusStatMetrics) RecordOperationSuccess(ctx context.Context, op string) {
	m.ops.success(op)
}

func (m *prometheusStatMetrics) RecordOperationFailure(ctx context.Context, op string) {
	m.ops.failure(op)
}

func (m *prometheusStatMetrics) RecordOperationDuration(ctx context.Context, op string, d time.Duration) {
	m.ops.duration(op, d)
}

func (m *prometheusStatMetrics) RecordScopesRecomputed(ctx context.Context, count int) {
	m.recomputed.Add(float64(count))
}

func (m *prometheusStatMetrics) RecordScopesDeleted(ctx context.Context, count int) {
	m.deleted.Add(float64(count))
}

// NoOpStatMetrics discards everything; used in tests.
type NoOpStatMetrics struct{}

func (NoOpStatMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpStatMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpStatMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpStatMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpStatMetrics) RecordScopesRecomputed(context.Context, int)                    {}
func (NoOpStatMetrics) RecordScopesDeleted(context.Context, int)                       {}
