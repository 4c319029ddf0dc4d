// Package skinsservice recomputes a round's skins side game whenever any of
// the round's matches change.
package skinsservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	skinsdb "github.com/copperhead-cup/cup-bot/app/modules/skins/infrastructure/repositories"
	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// RoundContext is the slice of the tournament service the skins game needs.
type RoundContext interface {
	GetRound(ctx context.Context, id sharedtypes.RoundID) (*tournamentdomain.Round, error)
	CourseHandicapsForRound(ctx context.Context, roundID sharedtypes.RoundID) (map[sharedtypes.PlayerID]float64, error)
}

// SkinsService implements the Service interface.
type SkinsService struct {
	repo      skinsdb.Repository
	matchRepo matchdb.Repository
	rounds    RoundContext
	logger    *slog.Logger
	metrics   metrics.SkinsMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewSkinsService creates a new SkinsService.
func NewSkinsService(
	repo skinsdb.Repository,
	matchRepo matchdb.Repository,
	rounds RoundContext,
	logger *slog.Logger,
	skinsMetrics metrics.SkinsMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *SkinsService {
	return &SkinsService{
		repo:      repo,
		matchRepo: matchRepo,
		rounds:    rounds,
		logger:    logger,
		metrics:   skinsMetrics,
		tracer:    tracer,
		db:        db,
	}
}

// instrument wraps an operation with a span, attempt/outcome metrics, and
// duration recording.
func instrument[T any](
	s *SkinsService,
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
	s *SkinsService,
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
