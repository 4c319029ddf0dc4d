// Package app assembles the database, event bus, module routers and the HTTP
// API into one runnable application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/copperhead-cup/cup-bot/api"
	"github.com/copperhead-cup/cup-bot/app/eventbus"
	"github.com/copperhead-cup/cup-bot/app/modules/facts"
	"github.com/copperhead-cup/cup-bot/app/modules/match"
	"github.com/copperhead-cup/cup-bot/app/modules/skins"
	"github.com/copperhead-cup/cup-bot/app/modules/stats"
	"github.com/copperhead-cup/cup-bot/app/modules/tournament"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
	"github.com/copperhead-cup/cup-bot/config"
)

// App is the assembled application.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router

	TournamentModule *tournament.Module
	MatchModule      *match.Module
	FactsModule      *facts.Module
	StatsModule      *stats.Module
	SkinsModule      *skins.Module

	httpServer *http.Server
}

// Initialize wires every component. Modules register their handlers on the
// shared watermill router; the router starts in Run.
func (app *App) Initialize(ctx context.Context, cfg *config.Config) error {
	app.Config = cfg
	app.Observability = observability.Init(cfg.Observability, "cup-bot")
	logger := app.Observability.Logger
	registry := app.Observability.Registry
	tracer := app.Observability.Tracer

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	app.DB = bun.NewDB(sqldb, pgdialect.New())
	if err := app.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.New(ctx, cfg.NATS.URL, "cup-bot", logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	app.Router = router

	helpers := utils.NewHelpers(logger)

	// The tournament module first: facts and skins take its service as
	// their round/roster context.
	app.TournamentModule, err = tournament.NewTournamentModule(ctx, logger, app.DB, tracer, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	app.MatchModule, err = match.NewMatchModule(ctx, logger, app.DB, bus, router, helpers, tracer, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize match module: %w", err)
	}

	app.FactsModule, err = facts.NewFactsModule(ctx, logger, app.DB, bus, router, helpers, tracer, registry,
		app.TournamentModule.TournamentService)
	if err != nil {
		return fmt.Errorf("failed to initialize facts module: %w", err)
	}

	app.StatsModule, err = stats.NewStatsModule(ctx, logger, app.DB, bus, router, helpers, tracer, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize stats module: %w", err)
	}

	app.SkinsModule, err = skins.NewSkinsModule(ctx, logger, app.DB, bus, router, helpers, tracer, registry,
		app.TournamentModule.TournamentService)
	if err != nil {
		return fmt.Errorf("failed to initialize skins module: %w", err)
	}

	apiHandler := api.New(
		logger,
		app.TournamentModule.TournamentService,
		app.MatchModule.MatchService,
		app.StatsModule.StatService,
		app.SkinsModule.SkinsService,
		bus,
		helpers,
		registry,
	)
	app.httpServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           apiHandler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return nil
}

// Run starts the watermill router, the module goroutines and the HTTP server,
// then blocks until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Router.Run(ctx); err != nil {
			logger.Error("Message router stopped", attr.Error(err))
		}
	}()

	for _, module := range []interface {
		Run(ctx context.Context, wg *sync.WaitGroup)
	}{
		app.TournamentModule,
		app.MatchModule,
		app.FactsModule,
		app.StatsModule,
		app.SkinsModule,
	} {
		wg.Add(1)
		m := module
		go func() {
			defer wg.Done()
			m.Run(ctx, &wg)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting HTTP server", slog.String("address", app.httpServer.Addr))
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", attr.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}

	wg.Wait()
	return nil
}

// Close releases every component in reverse construction order.
func (app *App) Close() error {
	var firstErr error

	for _, closer := range []interface{ Close() error }{
		app.SkinsModule,
		app.StatsModule,
		app.FactsModule,
		app.MatchModule,
		app.TournamentModule,
	} {
		if closer == nil {
			continue
		}
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if app.Router != nil {
		if err := app.Router.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
