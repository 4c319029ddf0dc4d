package tournamentservice

import (
	"context"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// Service is the interface for the tournament/round context service.
type Service interface {
	CreateTournament(ctx context.Context, t *tournamentdomain.Tournament) (*tournamentdomain.Tournament, error)
	GetTournament(ctx context.Context, id sharedtypes.TournamentID) (*tournamentdomain.Tournament, error)
	UpdateRoster(ctx context.Context, id sharedtypes.TournamentID, roster []tournamentdomain.RosterEntry) error

	// CreateRound inserts the round and links it into the tournament's
	// round list in one transaction.
	CreateRound(ctx context.Context, round *tournamentdomain.Round) (*tournamentdomain.Round, error)
	GetRound(ctx context.Context, id sharedtypes.RoundID) (*tournamentdomain.Round, error)
	GetRoundsForTournament(ctx context.Context, id sharedtypes.TournamentID) ([]*tournamentdomain.Round, error)

	// RegisterMatch links a match into the round's match list.
	RegisterMatch(ctx context.Context, roundID sharedtypes.RoundID, matchID sharedtypes.MatchID) error

	// BuildFactContext assembles the read-only context a fact build over the
	// round's matches needs. Missing pieces degrade to the fact builder's
	// defaults rather than failing.
	BuildFactContext(ctx context.Context, roundID sharedtypes.RoundID) (factdomain.FactContext, error)

	// AllocateRoundStrokes spins the named players down against each other on
	// the round's course and returns per-player stroke holes, input order
	// preserved.
	AllocateRoundStrokes(ctx context.Context, roundID sharedtypes.RoundID, playerIDs []sharedtypes.PlayerID) ([][sharedtypes.HolesPerRound]int, error)

	// CourseHandicapsForRound computes every rostered player's unrounded
	// course handicap on the round's course. The skins game feeds these into
	// its allowance-based allocation.
	CourseHandicapsForRound(ctx context.Context, roundID sharedtypes.RoundID) (map[sharedtypes.PlayerID]float64, error)
}

var _ Service = (*TournamentService)(nil)
