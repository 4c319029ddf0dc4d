// Package tournament assembles the tournament module: repository and service.
// The module has no message subscriptions; other modules call its service for
// round and tournament context.
package tournament

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	tournamentservice "github.com/copperhead-cup/cup-bot/app/modules/tournament/application"
	tournamentdb "github.com/copperhead-cup/cup-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
)

// Module is the tournament module.
type Module struct {
	TournamentService tournamentservice.Service
	logger            *slog.Logger
	cancelFunc        context.CancelFunc
}

// NewTournamentModule wires the tournament module.
func NewTournamentModule(
	ctx context.Context,
	logger *slog.Logger,
	db *bun.DB,
	tracer trace.Tracer,
	registry *prometheus.Registry,
) (*Module, error) {
	tournamentMetrics := metrics.NewTournamentMetrics(registry)
	repo := tournamentdb.NewRepository(db)
	service := tournamentservice.NewTournamentService(repo, logger, tournamentMetrics, tracer, db)

	return &Module{
		TournamentService: service,
		logger:            logger,
	}, nil
}

func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.Info("Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	<-ctx.Done()
	m.logger.Info("Tournament module goroutine stopped")
}

func (m *Module) Close() error {
	m.logger.Info("Stopping tournament module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
