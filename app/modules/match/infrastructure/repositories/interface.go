package matchdb

import (
	"context"

	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// Repository is the contract for match persistence. Every method accepts a
// bun.IDB so service-level transactions can thread through; a nil db falls
// back to the repository's own connection.
//
// Error semantics:
//   - ErrNotFound: the match row does not exist
//   - ErrNoRowsAffected: an update or delete matched no rows
//   - other errors: infrastructure failures
type Repository interface {
	CreateMatch(ctx context.Context, db bun.IDB, match *matchdomain.Match) error
	GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchdomain.Match, string, error)
	GetMatchesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error)
	UpdateHoles(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, match *matchdomain.Match) error
	UpdateDerivedState(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, status matchdomain.MatchStatus, result matchdomain.MatchResult, inputsHash string) error
	DeleteMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error
}
