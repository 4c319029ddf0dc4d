package matchservice

import (
	"context"

	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// FakeMatchRepository is a programmable stub for matchdb.Repository.
type FakeMatchRepository struct {
	trace []string

	CreateMatchFunc        func(ctx context.Context, db bun.IDB, match *matchdomain.Match) error
	GetMatchFunc           func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchdomain.Match, string, error)
	GetMatchesForRoundFunc func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error)
	UpdateHolesFunc        func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, match *matchdomain.Match) error
	UpdateDerivedStateFunc func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, status matchdomain.MatchStatus, result matchdomain.MatchResult, inputsHash string) error
	DeleteMatchFunc        func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error

	LastPersistedStatus *matchdomain.MatchStatus
	LastPersistedResult *matchdomain.MatchResult
	LastPersistedHash   string
	LastPersistedHoles  *matchdomain.Match
}

func NewFakeMatchRepository() *FakeMatchRepository {
	return &FakeMatchRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeMatchRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMatchRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMatchRepository) CreateMatch(ctx context.Context, db bun.IDB, match *matchdomain.Match) error {
	f.record("CreateMatch")
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchdomain.Match, string, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, "", matchdb.ErrNotFound
}

func (f *FakeMatchRepository) GetMatchesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error) {
	f.record("GetMatchesForRound")
	if f.GetMatchesForRoundFunc != nil {
		return f.GetMatchesForRoundFunc(ctx, db, roundID)
	}
	return nil, nil
}

func (f *FakeMatchRepository) UpdateHoles(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, match *matchdomain.Match) error {
	f.record("UpdateHoles")
	f.LastPersistedHoles = match
	if f.UpdateHolesFunc != nil {
		return f.UpdateHolesFunc(ctx, db, matchID, match)
	}
	return nil
}

func (f *FakeMatchRepository) UpdateDerivedState(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, status matchdomain.MatchStatus, result matchdomain.MatchResult, inputsHash string) error {
	f.record("UpdateDerivedState")
	f.LastPersistedStatus = &status
	f.LastPersistedResult = &result
	f.LastPersistedHash = inputsHash
	if f.UpdateDerivedStateFunc != nil {
		return f.UpdateDerivedStateFunc(ctx, db, matchID, status, result, inputsHash)
	}
	return nil
}

func (f *FakeMatchRepository) DeleteMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error {
	f.record("DeleteMatch")
	if f.DeleteMatchFunc != nil {
		return f.DeleteMatchFunc(ctx, db, matchID)
	}
	return nil
}

var _ matchdb.Repository = (*FakeMatchRepository)(nil)
