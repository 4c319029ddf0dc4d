package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TournamentMetrics records tournament/round context activity.
type TournamentMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordListAppendConflict(ctx context.Context)
}

type prometheusTournamentMetrics struct {
	ops       *operationMetrics
	conflicts prometheus.Counter
}

// NewTournamentMetrics registers and returns prometheus-backed tournament metrics.
func NewTournamentMetrics(reg prometheus.Registerer) TournamentMetrics {
	m := &prometheusTournamentMetrics{
		ops: newOperationMetrics(reg, "tournament"),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "tournament",
			Name: "list_append_conflicts_total",
			Help: "List appends that found the entry already present under the row lock.",
		}),
	}
	reg.MustRegister(m.conflicts)
	return m
}

func (m *prometheusTournamentMetrics) RecordOperationAttempt(ctx context.Context, op string) {
	m.ops.attempt(op)
}

func (m *prometheusTournamentMetrics) RecordOperationSuccess(ctx context.Context, op string) {
	m.ops.success(op)
}

func (m *prometheusTournamentMetrics) RecordOperationFailure(ctx context.Context, op string) {
	m.ops.failure(op)
}

func (m *prometheusTournamentMetrics) RecordOperationDuration(ctx context.Context, op string, d time.Duration) {
	m.ops.duration(op, d)
}

func (m *prometheusTournamentMetrics) RecordListAppendConflict(ctx context.Context) {
	m.conflicts.Inc()
}

// NoOpTournamentMetrics discards everything; used in tests.
type NoOpTournamentMetrics struct{}

func (NoOpTournamentMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpTournamentMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpTournamentMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpTournamentMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpTournamentMetrics) RecordListAppendConflict(context.Context)                       {}
