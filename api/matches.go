package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/attr"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// maxScorecardBytes bounds an uploaded scorecard file.
const maxScorecardBytes = 5 << 20

// createMatchRequest names the players on each side. Format and course come
// from the round; stroke allocation is computed against the match's own
// field, low man playing off scratch.
type createMatchRequest struct {
	TeamA []sharedtypes.PlayerID `json:"team_a"`
	TeamB []sharedtypes.PlayerID `json:"team_b"`
}

type matchResponse struct {
	ID           sharedtypes.MatchID      `json:"id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Format       sharedtypes.Format       `json:"format"`
	TeamA        []matchdomain.PlayerSide `json:"team_a"`
	TeamB        []matchdomain.PlayerSide `json:"team_b"`
	Status       matchdomain.MatchStatus  `json:"status"`
	Result       matchdomain.MatchResult  `json:"result"`
}

func toMatchResponse(m *matchdomain.Match) matchResponse {
	return matchResponse{
		ID:           m.ID,
		RoundID:      m.RoundID,
		TournamentID: m.TournamentID,
		Format:       m.Format,
		TeamA:        m.TeamA,
		TeamB:        m.TeamB,
		Status:       m.Status,
		Result:       m.Result,
	}
}

func (a *API) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseUUIDParam(r, "roundID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	round, err := a.tournaments.GetRound(r.Context(), sharedtypes.RoundID(roundID))
	if err != nil {
		a.writeError(w, http.StatusNotFound, "round not found")
		return
	}

	want := round.Format.PlayersPerSide()
	if len(req.TeamA) != want || len(req.TeamB) != want {
		a.writeError(w, http.StatusBadRequest, "lineup does not match round format")
		return
	}

	lineup := append(append([]sharedtypes.PlayerID{}, req.TeamA...), req.TeamB...)
	strokes, err := a.tournaments.AllocateRoundStrokes(r.Context(), round.ID, lineup)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to allocate strokes")
		return
	}

	match := &matchdomain.Match{
		RoundID:      round.ID,
		TournamentID: round.TournamentID,
		Format:       round.Format,
	}
	for i, playerID := range req.TeamA {
		match.TeamA = append(match.TeamA, matchdomain.PlayerSide{PlayerID: playerID, StrokesReceived: strokes[i]})
	}
	for i, playerID := range req.TeamB {
		match.TeamB = append(match.TeamB, matchdomain.PlayerSide{PlayerID: playerID, StrokesReceived: strokes[want+i]})
	}

	created, err := a.matches.CreateMatch(r.Context(), match)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to create match")
		return
	}

	if err := a.tournaments.RegisterMatch(r.Context(), round.ID, created.ID); err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to register match")
		return
	}
	a.writeJSON(w, http.StatusCreated, toMatchResponse(created))
}

func (a *API) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "matchID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	match, err := a.matches.GetMatch(r.Context(), sharedtypes.MatchID(id))
	if err != nil {
		a.writeError(w, http.StatusNotFound, "match not found")
		return
	}
	a.writeJSON(w, http.StatusOK, toMatchResponse(match))
}

func (a *API) handleListMatches(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(r, "roundID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	matches, err := a.matches.GetMatchesForRound(r.Context(), sharedtypes.RoundID(id))
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}

	out := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, toMatchResponse(m))
	}
	a.writeJSON(w, http.StatusOK, out)
}

// handleUpsertHole publishes a hole entry onto the event bus. Entry is
// accepted for processing, never applied inline; the match module owns the
// write and the recompute cascade.
func (a *API) handleUpsertHole(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseUUIDParam(r, "matchID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	holeNumber, err := strconv.Atoi(chi.URLParam(r, "holeNumber"))
	if err != nil || holeNumber < 1 || holeNumber > sharedtypes.HolesPerRound {
		a.writeError(w, http.StatusBadRequest, "invalid hole number")
		return
	}

	var entry matchservice.HoleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload := matchevents.MatchHoleUpsertRequestedPayloadV1{
		MatchID:           sharedtypes.MatchID(matchID),
		HoleNumber:        holeNumber,
		TeamAGross:        entry.TeamAGross,
		TeamBGross:        entry.TeamBGross,
		TeamAPlayersGross: entry.TeamAPlayersGross,
		TeamBPlayersGross: entry.TeamBPlayersGross,
		TeamADrive:        entry.TeamADrive,
		TeamBDrive:        entry.TeamBDrive,
		Clear:             entry.Clear,
	}
	if err := a.publishEvent(matchevents.MatchHoleUpsertRequestedV1, payload); err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to publish hole entry")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleImportScorecard parses an uploaded workbook inline and requests a
// recompute when any hole changed.
func (a *API) handleImportScorecard(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseUUIDParam(r, "matchID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	if err := r.ParseMultipartForm(maxScorecardBytes); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("scorecard")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "scorecard file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxScorecardBytes))
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	result, err := a.matches.ImportScorecard(r.Context(), sharedtypes.MatchID(matchID), header.Filename, data)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to import scorecard")
		return
	}
	if result.IsFailure() {
		a.writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}

	if err := a.publishEvent(matchevents.MatchRecomputeRequestedV1, result.Success); err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to publish recompute request")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleRecomputeMatch requests an asynchronous recompute; the match module
// handler picks it up and publishes the status cascade.
func (a *API) handleRecomputeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseUUIDParam(r, "matchID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	payload := matchevents.MatchRecomputeRequestedPayloadV1{
		MatchID: sharedtypes.MatchID(matchID),
		Force:   r.URL.Query().Get("force") == "true",
	}
	if err := a.publishEvent(matchevents.MatchRecomputeRequestedV1, payload); err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to publish recompute request")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (a *API) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := parseUUIDParam(r, "matchID")
	if !ok {
		a.writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	result, err := a.matches.DeleteMatch(r.Context(), sharedtypes.MatchID(matchID))
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to delete match")
		return
	}
	if result.IsFailure() {
		a.writeJSON(w, http.StatusNotFound, result.Failure)
		return
	}

	if err := a.publishEvent(matchevents.MatchDeletedV1, result.Success); err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to publish match deletion")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// publishEvent wraps a payload in a correlated message and publishes it.
func (a *API) publishEvent(topic string, payload any) error {
	msg, err := a.helpers.CreateNewMessage(payload, topic)
	if err != nil {
		return err
	}
	if err := a.publisher.Publish(topic, msg); err != nil {
		a.logger.Error("Failed to publish event",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return err
	}
	return nil
}
