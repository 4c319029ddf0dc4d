package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	statservice "github.com/copperhead-cup/cup-bot/app/modules/stats/application"
	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// parseScope maps the {kind}/{scopeID} route segments onto an aggregation
// scope. Tournament and round scopes require a UUID; the series scope only
// accepts its fixed identifier.
func parseScope(r *http.Request) (statdomain.Scope, bool) {
	kind := statdomain.ScopeKind(chi.URLParam(r, "kind"))
	scopeID := chi.URLParam(r, "scopeID")

	switch kind {
	case statdomain.ScopeSeries:
		if scopeID != statdomain.SeriesScopeID {
			return statdomain.Scope{}, false
		}
	case statdomain.ScopeTournament, statdomain.ScopeRound:
		if _, err := uuid.Parse(scopeID); err != nil {
			return statdomain.Scope{}, false
		}
	default:
		return statdomain.Scope{}, false
	}
	return statdomain.Scope{Kind: kind, ID: scopeID}, true
}

// standingsLine adds the derived averages to the raw aggregate.
type standingsLine struct {
	statdomain.PlayerStats
	AverageGross float64 `json:"average_gross"`
	AverageNet   float64 `json:"average_net"`
}

func (a *API) handleStandings(w http.ResponseWriter, r *http.Request) {
	scope, ok := parseScope(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid scope")
		return
	}

	standings, err := a.stats.GetStandings(r.Context(), scope)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to load standings")
		return
	}

	out := make([]standingsLine, 0, len(standings))
	for _, line := range standings {
		out = append(out, standingsLine{
			PlayerStats:  line,
			AverageGross: line.AverageGross(),
			AverageNet:   line.AverageNet(),
		})
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) handleStandingsChart(w http.ResponseWriter, r *http.Request) {
	scope, ok := parseScope(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid scope")
		return
	}

	standings, err := a.stats.GetStandings(r.Context(), scope)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to load standings")
		return
	}

	png, err := statservice.GenerateStandingsChart(standings, statservice.DefaultChartPalette)
	if err != nil {
		a.logger.Error("Failed to render standings chart", attr.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		a.logger.Error("Failed to write chart response", attr.Error(err))
	}
}

func (a *API) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	scope, ok := parseScope(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid scope")
		return
	}
	playerID := sharedtypes.PlayerID(chi.URLParam(r, "playerID"))
	if playerID == "" {
		a.writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	stats, err := a.stats.GetPlayerStats(r.Context(), playerID, scope)
	if err != nil {
		a.writeError(w, http.StatusNotFound, "no stats for player in scope")
		return
	}
	a.writeJSON(w, http.StatusOK, standingsLine{
		PlayerStats:  *stats,
		AverageGross: stats.AverageGross(),
		AverageNet:   stats.AverageNet(),
	})
}

func (a *API) handleGetRoundSkins(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "roundID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	result, err := a.skins.GetRoundSkins(r.Context(), sharedtypes.RoundID(id))
	if err != nil {
		a.writeError(w, http.StatusNotFound, "no skins recorded for round")
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}
