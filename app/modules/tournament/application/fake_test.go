package tournamentservice

import (
	"context"

	"github.com/uptrace/bun"

	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	tournamentdb "github.com/copperhead-cup/cup-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// FakeTournamentRepository is a programmable stub for tournamentdb.Repository.
type FakeTournamentRepository struct {
	trace []string

	CreateTournamentFunc       func(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error
	GetTournamentFunc          func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdomain.Tournament, error)
	CreateRoundFunc            func(ctx context.Context, db bun.IDB, r *tournamentdomain.Round) error
	GetRoundFunc               func(ctx context.Context, db bun.IDB, id sharedtypes.RoundID) (*tournamentdomain.Round, error)
	GetRoundsForTournamentFunc func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) ([]*tournamentdomain.Round, error)
	AppendRoundIDFunc          func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roundID sharedtypes.RoundID) (bool, error)
	AppendMatchIDFunc          func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, matchID sharedtypes.MatchID) (bool, error)
	UpdateRosterFunc           func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roster []tournamentdomain.RosterEntry) error
}

func NewFakeTournamentRepository() *FakeTournamentRepository {
	return &FakeTournamentRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeTournamentRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTournamentRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTournamentRepository) CreateTournament(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, db, t)
	}
	return nil
}

func (f *FakeTournamentRepository) GetTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdomain.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, db, id)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepository) CreateRound(ctx context.Context, db bun.IDB, r *tournamentdomain.Round) error {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, db, r)
	}
	return nil
}

func (f *FakeTournamentRepository) GetRound(ctx context.Context, db bun.IDB, id sharedtypes.RoundID) (*tournamentdomain.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, db, id)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepository) GetRoundsForTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) ([]*tournamentdomain.Round, error) {
	f.record("GetRoundsForTournament")
	if f.GetRoundsForTournamentFunc != nil {
		return f.GetRoundsForTournamentFunc(ctx, db, id)
	}
	return nil, nil
}

func (f *FakeTournamentRepository) AppendRoundID(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roundID sharedtypes.RoundID) (bool, error) {
	f.record("AppendRoundID")
	if f.AppendRoundIDFunc != nil {
		return f.AppendRoundIDFunc(ctx, db, tournamentID, roundID)
	}
	return true, nil
}

func (f *FakeTournamentRepository) AppendMatchID(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, matchID sharedtypes.MatchID) (bool, error) {
	f.record("AppendMatchID")
	if f.AppendMatchIDFunc != nil {
		return f.AppendMatchIDFunc(ctx, db, roundID, matchID)
	}
	return true, nil
}

func (f *FakeTournamentRepository) UpdateRoster(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roster []tournamentdomain.RosterEntry) error {
	f.record("UpdateRoster")
	if f.UpdateRosterFunc != nil {
		return f.UpdateRosterFunc(ctx, db, tournamentID, roster)
	}
	return nil
}

var _ tournamentdb.Repository = (*FakeTournamentRepository)(nil)
