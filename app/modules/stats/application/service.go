// Package statservice refolds player aggregates whenever a player's fact set
// changes in some scope.
package statservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	factdb "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/repositories"
	statdb "github.com/copperhead-cup/cup-bot/app/modules/stats/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
)

// StatService implements the Service interface.
type StatService struct {
	repo     statdb.Repository
	factRepo factdb.Repository
	logger   *slog.Logger
	metrics  metrics.StatMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewStatService creates a new StatService.
func NewStatService(
	repo statdb.Repository,
	factRepo factdb.Repository,
	logger *slog.Logger,
	statMetrics metrics.StatMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *StatService {
	return &StatService{
		repo:     repo,
		factRepo: factRepo,
		logger:   logger,
		metrics:  statMetrics,
		tracer:   tracer,
		db:       db,
	}
}

// instrument wraps an operation with a span, attempt/outcome metrics, and
// duration recording.
func instrument[T any](
	s *StatService,
	ctx context.Context,
	operationName string,
	subjectID string,
	op func(ctx context.Context) (T, error),
) (T, error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("subject_id", subjectID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	out, err := op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("subject_id", subjectID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return out, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return out, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[T any](
	s *StatService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var out T
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		out, txErr = fn(ctx, tx)
		return txErr
	})

	return out, err
}
