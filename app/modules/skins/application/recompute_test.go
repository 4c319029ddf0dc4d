package skinsservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	skinsdomain "github.com/copperhead-cup/cup-bot/app/modules/skins/domain"
	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

func intp(v int) *int { return &v }

// fakeRounds serves a fixed round and handicap map.
type fakeRounds struct {
	round     *tournamentdomain.Round
	handicaps map[sharedtypes.PlayerID]float64
}

func (f *fakeRounds) GetRound(ctx context.Context, id sharedtypes.RoundID) (*tournamentdomain.Round, error) {
	return f.round, nil
}

func (f *fakeRounds) CourseHandicapsForRound(ctx context.Context, roundID sharedtypes.RoundID) (map[sharedtypes.PlayerID]float64, error) {
	return f.handicaps, nil
}

// fakeMatches serves a fixed match list.
type fakeMatches struct {
	matches []*matchdomain.Match
}

func (f *fakeMatches) CreateMatch(ctx context.Context, db bun.IDB, match *matchdomain.Match) error {
	return nil
}

func (f *fakeMatches) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchdomain.Match, string, error) {
	return nil, "", matchdb.ErrNotFound
}

func (f *fakeMatches) GetMatchesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error) {
	return f.matches, nil
}

func (f *fakeMatches) UpdateHoles(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, match *matchdomain.Match) error {
	return nil
}

func (f *fakeMatches) UpdateDerivedState(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, status matchdomain.MatchStatus, result matchdomain.MatchResult, inputsHash string) error {
	return nil
}

func (f *fakeMatches) DeleteMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error {
	return nil
}

var _ matchdb.Repository = (*fakeMatches)(nil)

// fakeSkinsRepo records the last stored result.
type fakeSkinsRepo struct {
	stored *skinsdomain.Result
}

func (f *fakeSkinsRepo) UpsertRoundSkins(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, result skinsdomain.Result) error {
	f.stored = &result
	return nil
}

func (f *fakeSkinsRepo) GetRoundSkins(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (*skinsdomain.Result, error) {
	return f.stored, nil
}

func newTestService(repo *fakeSkinsRepo, matches *fakeMatches, rounds *fakeRounds) *SkinsService {
	return NewSkinsService(
		repo,
		matches,
		rounds,
		observability.NoOpLogger,
		metrics.NoOpSkinsMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}

func skinsRound(enabled bool, pot float64) *tournamentdomain.Round {
	return &tournamentdomain.Round{
		ID:     sharedtypes.RoundID(uuid.New()),
		Format: sharedtypes.FormatSingles,
		Skins:  tournamentdomain.SkinsSettings{Enabled: enabled, Pot: pot, Mode: "gross"},
	}
}

func TestRecomputeRoundSkins_StoresResult(t *testing.T) {
	round := skinsRound(true, 100)

	// amos wins hole 1 outright; hole 2 pushes.
	match := &matchdomain.Match{
		Format: sharedtypes.FormatSingles,
		TeamA:  []matchdomain.PlayerSide{{PlayerID: "amos"}},
		TeamB:  []matchdomain.PlayerSide{{PlayerID: "bert"}},
	}
	match.Holes[0] = matchdomain.SinglesHole{AGross: intp(3), BGross: intp(4)}
	match.Holes[1] = matchdomain.SinglesHole{AGross: intp(4), BGross: intp(4)}

	repo := &fakeSkinsRepo{}
	outcome, err := newTestService(repo, &fakeMatches{matches: []*matchdomain.Match{match}}, &fakeRounds{round: round}).
		RecomputeRoundSkins(context.Background(), round.ID)
	require.NoError(t, err)
	require.True(t, outcome.Enabled)
	require.Len(t, outcome.Result.Skins, 1)
	require.Equal(t, sharedtypes.PlayerID("amos"), outcome.Result.Skins[0].Winner)
	require.Equal(t, 100.0, outcome.Result.SkinValue)

	require.NotNil(t, repo.stored)
	require.Len(t, repo.stored.Skins, 1)
}

func TestRecomputeRoundSkins_DisabledDoesNothing(t *testing.T) {
	round := skinsRound(false, 0)
	repo := &fakeSkinsRepo{}

	outcome, err := newTestService(repo, &fakeMatches{}, &fakeRounds{round: round}).
		RecomputeRoundSkins(context.Background(), round.ID)
	require.NoError(t, err)
	require.False(t, outcome.Enabled)
	require.Nil(t, repo.stored)
}

func TestRecomputeRoundSkins_NetModeUsesHandicaps(t *testing.T) {
	round := skinsRound(true, 90)
	round.Skins.Mode = "net"
	round.Skins.Allowance = 1

	// bert's stroke on hole 1 turns a gross tie into a net win.
	match := &matchdomain.Match{
		Format: sharedtypes.FormatSingles,
		TeamA:  []matchdomain.PlayerSide{{PlayerID: "amos"}},
		TeamB:  []matchdomain.PlayerSide{{PlayerID: "bert"}},
	}
	match.Holes[0] = matchdomain.SinglesHole{AGross: intp(4), BGross: intp(4)}

	rounds := &fakeRounds{
		round:     round,
		handicaps: map[sharedtypes.PlayerID]float64{"amos": 0, "bert": 2},
	}

	repo := &fakeSkinsRepo{}
	outcome, err := newTestService(repo, &fakeMatches{matches: []*matchdomain.Match{match}}, rounds).
		RecomputeRoundSkins(context.Background(), round.ID)
	require.NoError(t, err)
	require.Len(t, outcome.Result.Skins, 1)
	require.Equal(t, sharedtypes.PlayerID("bert"), outcome.Result.Skins[0].Winner)
	require.Equal(t, 3, outcome.Result.Skins[0].Net)
}
