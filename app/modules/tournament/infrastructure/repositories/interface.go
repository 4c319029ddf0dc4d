package tournamentdb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

var (
	// ErrNotFound means the tournament or round row does not exist.
	ErrNotFound = errors.New("tournament record not found")
)

// Repository is the contract for tournament and round persistence.
//
// AppendRoundID and AppendMatchID are the two read-modify-write hot spots in
// the system: concurrent writers can race on the JSONB list. Both take the
// row lock before reading, so they must run inside a transaction (pass a
// bun.Tx) to be effective.
type Repository interface {
	CreateTournament(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error
	GetTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdomain.Tournament, error)
	CreateRound(ctx context.Context, db bun.IDB, r *tournamentdomain.Round) error
	GetRound(ctx context.Context, db bun.IDB, id sharedtypes.RoundID) (*tournamentdomain.Round, error)
	GetRoundsForTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) ([]*tournamentdomain.Round, error)
	AppendRoundID(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roundID sharedtypes.RoundID) (bool, error)
	AppendMatchID(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, matchID sharedtypes.MatchID) (bool, error)
	UpdateRoster(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roster []tournamentdomain.RosterEntry) error
}
