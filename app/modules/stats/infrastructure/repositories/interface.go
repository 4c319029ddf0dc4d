package statdb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// ErrNotFound means no aggregate exists for the player/scope pair.
var ErrNotFound = errors.New("player stats not found")

// Repository is the contract for stat-aggregate persistence. An aggregate
// whose fact set folds to empty is deleted, never stored as zeros.
type Repository interface {
	Upsert(ctx context.Context, db bun.IDB, stats statdomain.PlayerStats) error
	Delete(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, scope statdomain.Scope) error
	Get(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, scope statdomain.Scope) (*statdomain.PlayerStats, error)

	// ListForScope returns every player's aggregate in one scope, for
	// standings and leaderboards.
	ListForScope(ctx context.Context, db bun.IDB, scope statdomain.Scope) ([]statdomain.PlayerStats, error)
}
