package api

import (
	"encoding/json"
	"net/http"

	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// createTournamentRequest is the admin payload for a new tournament.
type createTournamentRequest struct {
	Name        string                         `json:"name"`
	PointsValue float64                        `json:"points_value"`
	Roster      []tournamentdomain.RosterEntry `json:"roster"`
	Captains    tournamentdomain.Captains      `json:"captains"`
}

type tournamentResponse struct {
	ID          sharedtypes.TournamentID       `json:"id"`
	Name        string                         `json:"name"`
	PointsValue float64                        `json:"points_value"`
	Roster      []tournamentdomain.RosterEntry `json:"roster"`
	Captains    tournamentdomain.Captains      `json:"captains"`
	RoundIDs    []sharedtypes.RoundID          `json:"round_ids"`
}

func toTournamentResponse(t *tournamentdomain.Tournament) tournamentResponse {
	return tournamentResponse{
		ID:          t.ID,
		Name:        t.Name,
		PointsValue: t.PointsValue,
		Roster:      t.Roster,
		Captains:    t.Captains,
		RoundIDs:    t.RoundIDs,
	}
}

func (a *API) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		a.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.PointsValue <= 0 {
		req.PointsValue = 1
	}

	created, err := a.tournaments.CreateTournament(r.Context(), &tournamentdomain.Tournament{
		Name:        req.Name,
		PointsValue: req.PointsValue,
		Roster:      req.Roster,
		Captains:    req.Captains,
	})
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to create tournament")
		return
	}
	a.writeJSON(w, http.StatusCreated, toTournamentResponse(created))
}

func (a *API) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "tournamentID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid tournament id")
		return
	}

	t, err := a.tournaments.GetTournament(r.Context(), sharedtypes.TournamentID(id))
	if err != nil {
		a.writeError(w, http.StatusNotFound, "tournament not found")
		return
	}
	a.writeJSON(w, http.StatusOK, toTournamentResponse(t))
}

func (a *API) handleUpdateRoster(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "tournamentID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid tournament id")
		return
	}

	var roster []tournamentdomain.RosterEntry
	if err := json.NewDecoder(r.Body).Decode(&roster); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.tournaments.UpdateRoster(r.Context(), sharedtypes.TournamentID(id), roster); err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to update roster")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createRoundRequest carries the round's format, course card and skins setup.
type createRoundRequest struct {
	Name   string                         `json:"name"`
	Format sharedtypes.Format             `json:"format"`
	Course tournamentdomain.Course        `json:"course"`
	Skins  tournamentdomain.SkinsSettings `json:"skins"`
}

type roundResponse struct {
	ID           sharedtypes.RoundID            `json:"id"`
	TournamentID sharedtypes.TournamentID       `json:"tournament_id"`
	Name         string                         `json:"name"`
	Format       sharedtypes.Format             `json:"format"`
	Course       tournamentdomain.Course        `json:"course"`
	Skins        tournamentdomain.SkinsSettings `json:"skins"`
	MatchIDs     []sharedtypes.MatchID          `json:"match_ids"`
}

func toRoundResponse(round *tournamentdomain.Round) roundResponse {
	return roundResponse{
		ID:           round.ID,
		TournamentID: round.TournamentID,
		Name:         round.Name,
		Format:       round.Format,
		Course:       round.Course,
		Skins:        round.Skins,
		MatchIDs:     round.MatchIDs,
	}
}

func validFormat(f sharedtypes.Format) bool {
	switch f {
	case sharedtypes.FormatSingles, sharedtypes.FormatTwoManBestBall,
		sharedtypes.FormatTwoManShamble, sharedtypes.FormatTwoManScramble:
		return true
	}
	return false
}

func (a *API) handleCreateRound(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := parseUUIDParam(r, "tournamentID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid tournament id")
		return
	}

	var req createRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validFormat(req.Format) {
		a.writeError(w, http.StatusBadRequest, "invalid format")
		return
	}

	created, err := a.tournaments.CreateRound(r.Context(), &tournamentdomain.Round{
		TournamentID: sharedtypes.TournamentID(tournamentID),
		Name:         req.Name,
		Format:       req.Format,
		Course:       req.Course,
		Skins:        req.Skins,
	})
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to create round")
		return
	}
	a.writeJSON(w, http.StatusCreated, toRoundResponse(created))
}

func (a *API) handleGetRound(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "roundID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	round, err := a.tournaments.GetRound(r.Context(), sharedtypes.RoundID(id))
	if err != nil {
		a.writeError(w, http.StatusNotFound, "round not found")
		return
	}
	a.writeJSON(w, http.StatusOK, toRoundResponse(round))
}

func (a *API) handleListRounds(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "tournamentID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid tournament id")
		return
	}

	rounds, err := a.tournaments.GetRoundsForTournament(r.Context(), sharedtypes.TournamentID(id))
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to list rounds")
		return
	}

	out := make([]roundResponse, 0, len(rounds))
	for _, round := range rounds {
		out = append(out, toRoundResponse(round))
	}
	a.writeJSON(w, http.StatusOK, out)
}
