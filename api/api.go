// Package api serves the HTTP surface: tournament and round administration,
// live hole entry, scorecard imports, standings and the skins leaderboard.
// Hole entry and recompute requests are published onto the event bus; reads
// go straight to the module services.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/copperhead-cup/cup-bot/app/eventbus"
	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	skinsservice "github.com/copperhead-cup/cup-bot/app/modules/skins/application"
	statservice "github.com/copperhead-cup/cup-bot/app/modules/stats/application"
	tournamentservice "github.com/copperhead-cup/cup-bot/app/modules/tournament/application"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
)

// API holds the services the HTTP handlers call into.
type API struct {
	logger      *slog.Logger
	tournaments tournamentservice.Service
	matches     matchservice.Service
	stats       statservice.Service
	skins       skinsservice.Service
	publisher   eventbus.EventBus
	helpers     utils.Helpers
	registry    *prometheus.Registry
}

// New creates the API.
func New(
	logger *slog.Logger,
	tournaments tournamentservice.Service,
	matches matchservice.Service,
	stats statservice.Service,
	skins skinsservice.Service,
	publisher eventbus.EventBus,
	helpers utils.Helpers,
	registry *prometheus.Registry,
) *API {
	return &API{
		logger:      logger,
		tournaments: tournaments,
		matches:     matches,
		stats:       stats,
		skins:       skins,
		publisher:   publisher,
		helpers:     helpers,
		registry:    registry,
	}
}

// Router builds the chi route tree.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if a.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tournaments", a.handleCreateTournament)
		r.Get("/tournaments/{tournamentID}", a.handleGetTournament)
		r.Put("/tournaments/{tournamentID}/roster", a.handleUpdateRoster)
		r.Post("/tournaments/{tournamentID}/rounds", a.handleCreateRound)
		r.Get("/tournaments/{tournamentID}/rounds", a.handleListRounds)

		r.Get("/rounds/{roundID}", a.handleGetRound)
		r.Post("/rounds/{roundID}/matches", a.handleCreateMatch)
		r.Get("/rounds/{roundID}/matches", a.handleListMatches)
		r.Get("/rounds/{roundID}/skins", a.handleGetRoundSkins)

		r.Get("/matches/{matchID}", a.handleGetMatch)
		r.Delete("/matches/{matchID}", a.handleDeleteMatch)
		r.Put("/matches/{matchID}/holes/{holeNumber}", a.handleUpsertHole)
		r.Post("/matches/{matchID}/scorecard", a.handleImportScorecard)
		r.Post("/matches/{matchID}/recompute", a.handleRecomputeMatch)

		r.Get("/standings/{kind}/{scopeID}", a.handleStandings)
		r.Get("/standings/{kind}/{scopeID}/chart.png", a.handleStandingsChart)
		r.Get("/players/{playerID}/stats/{kind}/{scopeID}", a.handlePlayerStats)
	})

	return r
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error("Failed to encode response", attr.Error(err))
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, map[string]string{"error": msg})
}

// parseUUIDParam pulls a UUID out of the route; the zero UUID means the
// parameter was missing or malformed.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
