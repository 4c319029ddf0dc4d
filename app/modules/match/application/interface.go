package matchservice

import (
	"context"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

// Transition describes how a recompute moved the match lifecycle.
type Transition string

const (
	TransitionNone     Transition = "none"
	TransitionClosed   Transition = "closed"
	TransitionReopened Transition = "reopened"
)

// RecomputeOutcome is the success payload of a recompute.
type RecomputeOutcome struct {
	MatchID      sharedtypes.MatchID
	RoundID      sharedtypes.RoundID
	TournamentID sharedtypes.TournamentID
	Format       sharedtypes.Format
	Status       matchdomain.MatchStatus
	Result       matchdomain.MatchResult
	Transition   Transition
	// Skipped is true when the input hash matched and nothing was
	// recomputed or published.
	Skipped bool
}

// HoleEntry is the format-neutral wire shape of one hole's scores. The
// service maps it onto the round format's variant; fields irrelevant to the
// format are ignored.
type HoleEntry struct {
	TeamAGross        *int   `json:"team_a_gross,omitempty"`
	TeamBGross        *int   `json:"team_b_gross,omitempty"`
	TeamAPlayersGross []*int `json:"team_a_players_gross,omitempty"`
	TeamBPlayersGross []*int `json:"team_b_players_gross,omitempty"`
	TeamADrive        *int   `json:"team_a_drive,omitempty"`
	TeamBDrive        *int   `json:"team_b_drive,omitempty"`
	// Clear removes the hole entry entirely.
	Clear bool `json:"clear,omitempty"`
}

type (
	RecomputeResult  = results.OperationResult[RecomputeOutcome, matchevents.MatchRecomputeFailedPayloadV1]
	UpsertHoleResult = results.OperationResult[matchevents.MatchRecomputeRequestedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1]
	DeleteResult     = results.OperationResult[matchevents.MatchDeletedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1]
)

// Service is the match module's application surface.
type Service interface {
	CreateMatch(ctx context.Context, match *matchdomain.Match) (*matchdomain.Match, error)
	GetMatch(ctx context.Context, matchID sharedtypes.MatchID) (*matchdomain.Match, error)
	GetMatchesForRound(ctx context.Context, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error)
	UpsertHoleScore(ctx context.Context, matchID sharedtypes.MatchID, holeNumber int, entry HoleEntry) (UpsertHoleResult, error)
	ImportScorecard(ctx context.Context, matchID sharedtypes.MatchID, fileName string, fileData []byte) (UpsertHoleResult, error)
	RecomputeMatch(ctx context.Context, matchID sharedtypes.MatchID, force bool) (RecomputeResult, error)
	DeleteMatch(ctx context.Context, matchID sharedtypes.MatchID) (DeleteResult, error)
}
