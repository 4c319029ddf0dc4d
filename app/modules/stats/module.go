// Package stats assembles the stats module: repository, service, handlers
// and router registration.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	"github.com/copperhead-cup/cup-bot/app/eventbus"
	factdb "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/repositories"
	statservice "github.com/copperhead-cup/cup-bot/app/modules/stats/application"
	statdb "github.com/copperhead-cup/cup-bot/app/modules/stats/infrastructure/repositories"
	statrouter "github.com/copperhead-cup/cup-bot/app/modules/stats/infrastructure/router"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// Module is the stats module.
type Module struct {
	EventBus    eventbus.EventBus
	StatService statservice.Service
	StatRouter  *statrouter.StatRouter
	logger      *slog.Logger
	cancelFunc  context.CancelFunc
}

// NewStatsModule wires the stats module into the shared router. The fact
// repository is read-only here.
func NewStatsModule(
	ctx context.Context,
	logger *slog.Logger,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	tracer trace.Tracer,
	registry *prometheus.Registry,
) (*Module, error) {
	statMetrics := metrics.NewStatMetrics(registry)
	repo := statdb.NewRepository(db)
	factRepo := factdb.NewRepository(db)
	service := statservice.NewStatService(repo, factRepo, logger, statMetrics, tracer, db)

	moduleRouter := statrouter.NewStatRouter(logger, router, eventBus, eventBus, helpers, tracer, registry)
	if err := moduleRouter.Configure(ctx, service, statMetrics); err != nil {
		return nil, fmt.Errorf("failed to configure stats router: %w", err)
	}

	return &Module{
		EventBus:    eventBus,
		StatService: service,
		StatRouter:  moduleRouter,
		logger:      logger,
	}, nil
}

func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.Info("Starting stats module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	<-ctx.Done()
	m.logger.Info("Stats module goroutine stopped")
}

func (m *Module) Close() error {
	m.logger.Info("Stopping stats module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
