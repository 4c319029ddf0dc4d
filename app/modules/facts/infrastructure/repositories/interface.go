package factdb

import (
	"context"

	"github.com/uptrace/bun"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// Repository is the contract for fact persistence. Facts are replaced
// wholesale per match; there is no partial update.
type Repository interface {
	// ReplaceForMatch deletes the match's existing fact set and inserts the
	// new one. Callers pass a transaction so readers never observe the gap.
	ReplaceForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, facts []factdomain.PlayerMatchFact) error

	// DeleteForMatch removes the match's fact set and reports which players
	// had facts, so downstream stats know whose scopes are stale.
	DeleteForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]sharedtypes.PlayerID, error)

	GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]factdomain.PlayerMatchFact, error)

	// GetForPlayer returns a player's facts filtered to an optional
	// tournament or round window; both nil means the whole series.
	GetForPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, tournamentID *sharedtypes.TournamentID, roundID *sharedtypes.RoundID) ([]factdomain.PlayerMatchFact, error)
}
