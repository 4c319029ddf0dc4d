package factservice

import (
	"context"

	"github.com/uptrace/bun"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	factdb "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/repositories"
	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// FakeFactRepository is a programmable stub for factdb.Repository.
type FakeFactRepository struct {
	trace []string

	ReplaceForMatchFunc func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, facts []factdomain.PlayerMatchFact) error
	DeleteForMatchFunc  func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]sharedtypes.PlayerID, error)
	GetForMatchFunc     func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]factdomain.PlayerMatchFact, error)
	GetForPlayerFunc    func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, tournamentID *sharedtypes.TournamentID, roundID *sharedtypes.RoundID) ([]factdomain.PlayerMatchFact, error)

	LastReplaced []factdomain.PlayerMatchFact
}

func NewFakeFactRepository() *FakeFactRepository {
	return &FakeFactRepository{trace: []string{}}
}

func (f *FakeFactRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeFactRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeFactRepository) ReplaceForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, facts []factdomain.PlayerMatchFact) error {
	f.record("ReplaceForMatch")
	f.LastReplaced = facts
	if f.ReplaceForMatchFunc != nil {
		return f.ReplaceForMatchFunc(ctx, db, matchID, facts)
	}
	return nil
}

func (f *FakeFactRepository) DeleteForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]sharedtypes.PlayerID, error) {
	f.record("DeleteForMatch")
	if f.DeleteForMatchFunc != nil {
		return f.DeleteForMatchFunc(ctx, db, matchID)
	}
	return nil, nil
}

func (f *FakeFactRepository) GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]factdomain.PlayerMatchFact, error) {
	f.record("GetForMatch")
	if f.GetForMatchFunc != nil {
		return f.GetForMatchFunc(ctx, db, matchID)
	}
	return nil, nil
}

func (f *FakeFactRepository) GetForPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, tournamentID *sharedtypes.TournamentID, roundID *sharedtypes.RoundID) ([]factdomain.PlayerMatchFact, error) {
	f.record("GetForPlayer")
	if f.GetForPlayerFunc != nil {
		return f.GetForPlayerFunc(ctx, db, playerID, tournamentID, roundID)
	}
	return nil, nil
}

var _ factdb.Repository = (*FakeFactRepository)(nil)

// fakeMatchRepo serves a single stored match; writes are not expected here.
type fakeMatchRepo struct {
	match *matchdomain.Match
	err   error
}

func (f *fakeMatchRepo) CreateMatch(ctx context.Context, db bun.IDB, match *matchdomain.Match) error {
	return nil
}

func (f *fakeMatchRepo) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchdomain.Match, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.match, "", nil
}

func (f *fakeMatchRepo) GetMatchesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error) {
	return nil, nil
}

func (f *fakeMatchRepo) UpdateHoles(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, match *matchdomain.Match) error {
	return nil
}

func (f *fakeMatchRepo) UpdateDerivedState(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, status matchdomain.MatchStatus, result matchdomain.MatchResult, inputsHash string) error {
	return nil
}

func (f *fakeMatchRepo) DeleteMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error {
	return nil
}

var _ matchdb.Repository = (*fakeMatchRepo)(nil)

// fakeContexts returns a fixed context or an error.
type fakeContexts struct {
	fc  factdomain.FactContext
	err error
}

func (f *fakeContexts) BuildFactContext(ctx context.Context, roundID sharedtypes.RoundID) (factdomain.FactContext, error) {
	if f.err != nil {
		return factdomain.FactContext{}, f.err
	}
	return f.fc, nil
}
