// Package tournamentservice manages tournament and round context: rosters,
// captains, courses, and the per-round lookups the scoring pipeline reads.
package tournamentservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	tournamentdb "github.com/copperhead-cup/cup-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
)

// TournamentService implements the Service interface.
type TournamentService struct {
	repo    tournamentdb.Repository
	logger  *slog.Logger
	metrics metrics.TournamentMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	logger *slog.Logger,
	tournamentMetrics metrics.TournamentMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *TournamentService {
	return &TournamentService{
		repo:    repo,
		logger:  logger,
		metrics: tournamentMetrics,
		tracer:  tracer,
		db:      db,
	}
}

// instrument wraps an operation with a span, attempt/outcome metrics, and
// duration recording. Tournament operations have no business-failure payloads,
// so a plain error return suffices here.
func instrument[T any](
	s *TournamentService,
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
	s *TournamentService,
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
