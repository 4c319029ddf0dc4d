// Package skins assembles the skins module: repository, service, handlers
// and router registration.
package skins

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
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	skinsservice "github.com/copperhead-cup/cup-bot/app/modules/skins/application"
	skinsdb "github.com/copperhead-cup/cup-bot/app/modules/skins/infrastructure/repositories"
	skinsrouter "github.com/copperhead-cup/cup-bot/app/modules/skins/infrastructure/router"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// Module is the skins module.
type Module struct {
	EventBus     eventbus.EventBus
	SkinsService skinsservice.Service
	SkinsRouter  *skinsrouter.SkinsRouter
	logger       *slog.Logger
	cancelFunc   context.CancelFunc
}

// NewSkinsModule wires the skins module into the shared router. The round
// context comes from the tournament module's service.
func NewSkinsModule(
	ctx context.Context,
	logger *slog.Logger,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	tracer trace.Tracer,
	registry *prometheus.Registry,
	rounds skinsservice.RoundContext,
) (*Module, error) {
	skinsMetrics := metrics.NewSkinsMetrics(registry)
	repo := skinsdb.NewRepository(db)
	matchRepo := matchdb.NewRepository(db)
	service := skinsservice.NewSkinsService(repo, matchRepo, rounds, logger, skinsMetrics, tracer, db)

	moduleRouter := skinsrouter.NewSkinsRouter(logger, router, eventBus, eventBus, helpers, tracer, registry)
	if err := moduleRouter.Configure(ctx, service, skinsMetrics); err != nil {
		return nil, fmt.Errorf("failed to configure skins router: %w", err)
	}

	return &Module{
		EventBus:     eventBus,
		SkinsService: service,
		SkinsRouter:  moduleRouter,
		logger:       logger,
	}, nil
}

func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.Info("Starting skins module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	<-ctx.Done()
	m.logger.Info("Skins module goroutine stopped")
}

func (m *Module) Close() error {
	m.logger.Info("Stopping skins module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
