package statservice

import (
	"context"

	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// RefoldRequest names the players whose scopes went stale and the windows
// the triggering match belonged to.
type RefoldRequest struct {
	RoundID      sharedtypes.RoundID
	TournamentID sharedtypes.TournamentID
	PlayerIDs    []sharedtypes.PlayerID
}

// PlayerRefold reports what happened to one player's scopes. Labels are
// "kind:id" strings for the recomputed event.
type PlayerRefold struct {
	PlayerID   sharedtypes.PlayerID
	Recomputed []string
	Deleted    []string
}

// Service is the interface for the stats service.
type Service interface {
	// RefoldScopes rebuilds every dirty scope for every named player from
	// the surviving facts. Scopes whose fact set is empty are deleted.
	RefoldScopes(ctx context.Context, req RefoldRequest) ([]PlayerRefold, error)

	GetPlayerStats(ctx context.Context, playerID sharedtypes.PlayerID, scope statdomain.Scope) (*statdomain.PlayerStats, error)
	GetStandings(ctx context.Context, scope statdomain.Scope) ([]statdomain.PlayerStats, error)
}

var _ Service = (*StatService)(nil)
