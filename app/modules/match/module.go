// Package match assembles the match module: repository, service, handlers
// and router registration.
package match

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
	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	matchrouter "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/router"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// Module is the match module.
type Module struct {
	EventBus     eventbus.EventBus
	MatchService matchservice.Service
	MatchRouter  *matchrouter.MatchRouter
	logger       *slog.Logger
	cancelFunc   context.CancelFunc
}

// NewMatchModule wires the match module into the shared router.
func NewMatchModule(
	ctx context.Context,
	logger *slog.Logger,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	tracer trace.Tracer,
	registry *prometheus.Registry,
) (*Module, error) {
	matchMetrics := metrics.NewMatchMetrics(registry)
	repo := matchdb.NewRepository(db)
	service := matchservice.NewMatchService(repo, eventBus, logger, matchMetrics, tracer, db)

	moduleRouter := matchrouter.NewMatchRouter(logger, router, eventBus, eventBus, helpers, tracer, registry)
	if err := moduleRouter.Configure(ctx, service, matchMetrics); err != nil {
		return nil, fmt.Errorf("failed to configure match router: %w", err)
	}

	return &Module{
		EventBus:     eventBus,
		MatchService: service,
		MatchRouter:  moduleRouter,
		logger:       logger,
	}, nil
}

func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.Info("Starting match module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	<-ctx.Done()
	m.logger.Info("Match module goroutine stopped")
}

func (m *Module) Close() error {
	m.logger.Info("Stopping match module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
