package matchhandlers

import (
	"context"

	matchservice "github.com/copperhead-cup/cup-bot/app/modules/match/application"
	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// FakeMatchService is a programmable stub for matchservice.Service.
type FakeMatchService struct {
	CreateMatchFunc        func(ctx context.Context, match *matchdomain.Match) (*matchdomain.Match, error)
	GetMatchFunc           func(ctx context.Context, matchID sharedtypes.MatchID) (*matchdomain.Match, error)
	GetMatchesForRoundFunc func(ctx context.Context, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error)
	UpsertHoleScoreFunc    func(ctx context.Context, matchID sharedtypes.MatchID, holeNumber int, entry matchservice.HoleEntry) (matchservice.UpsertHoleResult, error)
	ImportScorecardFunc    func(ctx context.Context, matchID sharedtypes.MatchID, fileName string, fileData []byte) (matchservice.UpsertHoleResult, error)
	RecomputeMatchFunc     func(ctx context.Context, matchID sharedtypes.MatchID, force bool) (matchservice.RecomputeResult, error)
	DeleteMatchFunc        func(ctx context.Context, matchID sharedtypes.MatchID) (matchservice.DeleteResult, error)
}

func (f *FakeMatchService) CreateMatch(ctx context.Context, match *matchdomain.Match) (*matchdomain.Match, error) {
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, match)
	}
	return match, nil
}

func (f *FakeMatchService) GetMatch(ctx context.Context, matchID sharedtypes.MatchID) (*matchdomain.Match, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, matchID)
	}
	return nil, nil
}

func (f *FakeMatchService) GetMatchesForRound(ctx context.Context, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error) {
	if f.GetMatchesForRoundFunc != nil {
		return f.GetMatchesForRoundFunc(ctx, roundID)
	}
	return nil, nil
}

func (f *FakeMatchService) UpsertHoleScore(ctx context.Context, matchID sharedtypes.MatchID, holeNumber int, entry matchservice.HoleEntry) (matchservice.UpsertHoleResult, error) {
	if f.UpsertHoleScoreFunc != nil {
		return f.UpsertHoleScoreFunc(ctx, matchID, holeNumber, entry)
	}
	return matchservice.UpsertHoleResult{}, nil
}

func (f *FakeMatchService) ImportScorecard(ctx context.Context, matchID sharedtypes.MatchID, fileName string, fileData []byte) (matchservice.UpsertHoleResult, error) {
	if f.ImportScorecardFunc != nil {
		return f.ImportScorecardFunc(ctx, matchID, fileName, fileData)
	}
	return matchservice.UpsertHoleResult{}, nil
}

func (f *FakeMatchService) RecomputeMatch(ctx context.Context, matchID sharedtypes.MatchID, force bool) (matchservice.RecomputeResult, error) {
	if f.RecomputeMatchFunc != nil {
		return f.RecomputeMatchFunc(ctx, matchID, force)
	}
	return matchservice.RecomputeResult{}, nil
}

func (f *FakeMatchService) DeleteMatch(ctx context.Context, matchID sharedtypes.MatchID) (matchservice.DeleteResult, error) {
	if f.DeleteMatchFunc != nil {
		return f.DeleteMatchFunc(ctx, matchID)
	}
	return matchservice.DeleteResult{}, nil
}

var _ matchservice.Service = (*FakeMatchService)(nil)
