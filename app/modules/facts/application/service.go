// Package factservice rebuilds and deletes per-player fact records as
// matches close, reopen, and disappear.
package factservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/copperhead-cup/cup-bot/app/eventbus"
	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	factdb "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/repositories"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

// ContextProvider yields the round context a fact build needs. The tournament
// module's service satisfies it.
type ContextProvider interface {
	BuildFactContext(ctx context.Context, roundID sharedtypes.RoundID) (factdomain.FactContext, error)
}

// FactService implements the Service interface.
type FactService struct {
	repo      factdb.Repository
	matchRepo matchdb.Repository
	contexts  ContextProvider
	EventBus  eventbus.EventBus
	logger    *slog.Logger
	metrics   metrics.FactMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewFactService creates a new FactService.
func NewFactService(
	repo factdb.Repository,
	matchRepo matchdb.Repository,
	contexts ContextProvider,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	factMetrics metrics.FactMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *FactService {
	return &FactService{
		repo:      repo,
		matchRepo: matchRepo,
		contexts:  contexts,
		EventBus:  eventBus,
		logger:    logger,
		metrics:   factMetrics,
		tracer:    tracer,
		db:        db,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func withTelemetry[S any, F any](
	s *FactService,
	ctx context.Context,
	operationName string,
	matchID string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("match_id", matchID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("match_id", matchID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("match_id", matchID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("match_id", matchID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *FactService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
