// Package facts assembles the facts module: repository, service, handlers
// and router registration.
package facts

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
	factservice "github.com/copperhead-cup/cup-bot/app/modules/facts/application"
	factdb "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/repositories"
	factrouter "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/router"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// Module is the facts module.
type Module struct {
	EventBus    eventbus.EventBus
	FactService factservice.Service
	FactRouter  *factrouter.FactRouter
	logger      *slog.Logger
	cancelFunc  context.CancelFunc
}

// NewFactsModule wires the facts module into the shared router. The match
// repository is read-only here; the context provider is the tournament
// module's service.
func NewFactsModule(
	ctx context.Context,
	logger *slog.Logger,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	tracer trace.Tracer,
	registry *prometheus.Registry,
	contexts factservice.ContextProvider,
) (*Module, error) {
	factMetrics := metrics.NewFactMetrics(registry)
	repo := factdb.NewRepository(db)
	matchRepo := matchdb.NewRepository(db)
	service := factservice.NewFactService(repo, matchRepo, contexts, eventBus, logger, factMetrics, tracer, db)

	moduleRouter := factrouter.NewFactRouter(logger, router, eventBus, eventBus, helpers, tracer, registry)
	if err := moduleRouter.Configure(ctx, service, factMetrics); err != nil {
		return nil, fmt.Errorf("failed to configure facts router: %w", err)
	}

	return &Module{
		EventBus:    eventBus,
		FactService: service,
		FactRouter:  moduleRouter,
		logger:      logger,
	}, nil
}

func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.Info("Starting facts module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	<-ctx.Done()
	m.logger.Info("Facts module goroutine stopped")
}

func (m *Module) Close() error {
	m.logger.Info("Stopping facts module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
