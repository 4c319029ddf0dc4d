package factservice

import (
	"context"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/events/factevents"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils/results"
)

// RebuildOutcome is the success side of a fact rebuild. Deleted is set when
// the match turned out to be open or gone and its facts were removed instead.
type RebuildOutcome struct {
	MatchID      sharedtypes.MatchID
	RoundID      sharedtypes.RoundID
	TournamentID sharedtypes.TournamentID
	PlayerIDs    []sharedtypes.PlayerID
	Deleted      bool
}

type (
	RebuildResult = results.OperationResult[RebuildOutcome, factevents.FactBuildFailedPayloadV1]
	DeleteResult  = results.OperationResult[factevents.PlayerFactsDeletedPayloadV1, factevents.FactBuildFailedPayloadV1]
)

// Service is the interface for the fact service.
type Service interface {
	// RebuildFacts derives and replaces the fact set for a closed match.
	RebuildFacts(ctx context.Context, matchID sharedtypes.MatchID) (RebuildResult, error)

	// DeleteFacts removes a match's facts after a reopen or deletion.
	DeleteFacts(ctx context.Context, matchID sharedtypes.MatchID, roundID sharedtypes.RoundID, tournamentID sharedtypes.TournamentID) (DeleteResult, error)

	GetFactsForMatch(ctx context.Context, matchID sharedtypes.MatchID) ([]factdomain.PlayerMatchFact, error)
	GetFactsForPlayer(ctx context.Context, playerID sharedtypes.PlayerID, tournamentID *sharedtypes.TournamentID, roundID *sharedtypes.RoundID) ([]factdomain.PlayerMatchFact, error)
}

var _ Service = (*FactService)(nil)
