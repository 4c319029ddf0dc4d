// Package metrics defines per-module metrics interfaces with prometheus and
// no-op implementations. Services depend on the interfaces so tests can pass
// the no-ops.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MatchMetrics records match recomputation activity.
type MatchMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordRecomputeSkipped(ctx context.Context)
	RecordMatchClosed(ctx context.Context)
	RecordMatchReopened(ctx context.Context)
}

type prometheusMatchMetrics struct {
	ops      *operationMetrics
	skipped  prometheus.Counter
	closed   prometheus.Counter
	reopened prometheus.Counter
}

// NewMatchMetrics registers and returns prometheus-backed match metrics.
func NewMatchMetrics(reg prometheus.Registerer) MatchMetrics {
	m := &prometheusMatchMetrics{
		ops: newOperationMetrics(reg, "match"),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "match",
			Name: "recompute_skipped_total",
			Help: "Recomputations short-circuited by the input hash.",
		}),
		closed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "match",
			Name: "closed_total",
			Help: "Matches that transitioned to closed.",
		}),
		reopened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "match",
			Name: "reopened_total",
			Help: "Closed matches that transitioned back to open.",
		}),
	}
	reg.MustRegister(m.skipped, m.closed, m.reopened)
	return m
}

func (m *prometheusMatchMetrics) RecordOperationAttempt(ctx context.Context, op string) {
	m.ops.attempt(op)
}

func (m *prometheusMatchMetrics) RecordOperationSuccess(ctx context.Context, op string) {
	m.ops.success(op)
}

func (m *prometheusMatchMetrics) RecordOperationFailure(ctx context.Context, op string) {
	m.ops.failure(op)
}

func (m *prometheusMatchMetrics) RecordOperationDuration(ctx context.Context, op string, d time.Duration) {
	m.ops.duration(op, d)
}

func (m *prometheusMatchMetrics) RecordRecomputeSkipped(ctx context.Context) { m.skipped.Inc() }
func (m *prometheusMatchMetrics) RecordMatchClosed(ctx context.Context)      { m.closed.Inc() }
func (m *prometheusMatchMetrics) RecordMatchReopened(ctx context.Context)    { m.reopened.Inc() }

// NoOpMatchMetrics discards everything; used in tests.
type NoOpMatchMetrics struct{}

func (NoOpMatchMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMatchMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMatchMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMatchMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMatchMetrics) RecordRecomputeSkipped(context.Context)                         {}
func (NoOpMatchMetrics) RecordMatchClosed(context.Context)                              {}
func (NoOpMatchMetrics) RecordMatchReopened(context.Context)                            {}
