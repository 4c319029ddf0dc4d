package statservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// fakeFactReader serves facts keyed by the filters it was called with.
type fakeFactReader struct {
	byPlayer map[sharedtypes.PlayerID][]factdomain.PlayerMatchFact
}

func (f *fakeFactReader) ReplaceForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, facts []factdomain.PlayerMatchFact) error {
	return nil
}

func (f *fakeFactReader) DeleteForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]sharedtypes.PlayerID, error) {
	return nil, nil
}

func (f *fakeFactReader) GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]factdomain.PlayerMatchFact, error) {
	return nil, nil
}

func (f *fakeFactReader) GetForPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, tournamentID *sharedtypes.TournamentID, roundID *sharedtypes.RoundID) ([]factdomain.PlayerMatchFact, error) {
	var out []factdomain.PlayerMatchFact
	for _, fact := range f.byPlayer[playerID] {
		if tournamentID != nil && fact.TournamentID != *tournamentID {
			continue
		}
		if roundID != nil && fact.RoundID != *roundID {
			continue
		}
		out = append(out, fact)
	}
	return out, nil
}

// fakeStatRepository stores aggregates in memory.
type fakeStatRepository struct {
	upserts map[string]statdomain.PlayerStats
	deletes []string
}

func newFakeStatRepository() *fakeStatRepository {
	return &fakeStatRepository{upserts: map[string]statdomain.PlayerStats{}}
}

func statKey(playerID sharedtypes.PlayerID, scope statdomain.Scope) string {
	return string(playerID) + "/" + string(scope.Kind) + "/" + scope.ID
}

func (f *fakeStatRepository) Upsert(ctx context.Context, db bun.IDB, stats statdomain.PlayerStats) error {
	f.upserts[statKey(stats.PlayerID, stats.Scope)] = stats
	return nil
}

func (f *fakeStatRepository) Delete(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, scope statdomain.Scope) error {
	f.deletes = append(f.deletes, statKey(playerID, scope))
	return nil
}

func (f *fakeStatRepository) Get(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, scope statdomain.Scope) (*statdomain.PlayerStats, error) {
	return nil, nil
}

func (f *fakeStatRepository) ListForScope(ctx context.Context, db bun.IDB, scope statdomain.Scope) ([]statdomain.PlayerStats, error) {
	return nil, nil
}

func newTestService(repo *fakeStatRepository, facts *fakeFactReader) *StatService {
	return NewStatService(
		repo,
		facts,
		observability.NoOpLogger,
		metrics.NoOpStatMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}

func winFact(playerID sharedtypes.PlayerID, tournamentID sharedtypes.TournamentID, roundID sharedtypes.RoundID) factdomain.PlayerMatchFact {
	return factdomain.PlayerMatchFact{
		MatchID:      sharedtypes.MatchID(uuid.New()),
		RoundID:      roundID,
		TournamentID: tournamentID,
		PlayerID:     playerID,
		Outcome:      sharedtypes.OutcomeWin,
		Points:       1,
	}
}

func TestRefoldScopes_UpsertsAllThreeWindows(t *testing.T) {
	tournamentID := sharedtypes.TournamentID(uuid.New())
	roundID := sharedtypes.RoundID(uuid.New())
	otherRound := sharedtypes.RoundID(uuid.New())

	facts := &fakeFactReader{byPlayer: map[sharedtypes.PlayerID][]factdomain.PlayerMatchFact{
		"amos": {
			winFact("amos", tournamentID, roundID),
			winFact("amos", tournamentID, otherRound),
		},
	}}
	repo := newFakeStatRepository()

	refolds, err := newTestService(repo, facts).RefoldScopes(context.Background(), RefoldRequest{
		RoundID:      roundID,
		TournamentID: tournamentID,
		PlayerIDs:    []sharedtypes.PlayerID{"amos"},
	})
	require.NoError(t, err)
	require.Len(t, refolds, 1)
	require.Len(t, refolds[0].Recomputed, 3)
	require.Empty(t, refolds[0].Deleted)

	series := repo.upserts[statKey("amos", statdomain.Scope{Kind: statdomain.ScopeSeries, ID: statdomain.SeriesScopeID})]
	require.Equal(t, 2, series.MatchesPlayed)
	require.Equal(t, 2, series.Wins)

	round := repo.upserts[statKey("amos", statdomain.Scope{Kind: statdomain.ScopeRound, ID: roundID.String()})]
	require.Equal(t, 1, round.MatchesPlayed)
}

func TestRefoldScopes_EmptyScopeIsDeleted(t *testing.T) {
	tournamentID := sharedtypes.TournamentID(uuid.New())
	roundID := sharedtypes.RoundID(uuid.New())

	// No surviving facts anywhere: every scope collapses.
	facts := &fakeFactReader{byPlayer: map[sharedtypes.PlayerID][]factdomain.PlayerMatchFact{}}
	repo := newFakeStatRepository()

	refolds, err := newTestService(repo, facts).RefoldScopes(context.Background(), RefoldRequest{
		RoundID:      roundID,
		TournamentID: tournamentID,
		PlayerIDs:    []sharedtypes.PlayerID{"amos"},
	})
	require.NoError(t, err)
	require.Len(t, refolds, 1)
	require.Empty(t, refolds[0].Recomputed)
	require.Len(t, refolds[0].Deleted, 3)
	require.Empty(t, repo.upserts)
	require.Len(t, repo.deletes, 3)
}

func TestRefoldScopes_PartialSurvival(t *testing.T) {
	tournamentID := sharedtypes.TournamentID(uuid.New())
	deletedRound := sharedtypes.RoundID(uuid.New())
	otherRound := sharedtypes.RoundID(uuid.New())

	// The player's only remaining fact is in another round, so the round
	// scope dies while series and tournament survive.
	facts := &fakeFactReader{byPlayer: map[sharedtypes.PlayerID][]factdomain.PlayerMatchFact{
		"amos": {winFact("amos", tournamentID, otherRound)},
	}}
	repo := newFakeStatRepository()

	refolds, err := newTestService(repo, facts).RefoldScopes(context.Background(), RefoldRequest{
		RoundID:      deletedRound,
		TournamentID: tournamentID,
		PlayerIDs:    []sharedtypes.PlayerID{"amos"},
	})
	require.NoError(t, err)
	require.Len(t, refolds[0].Recomputed, 2)
	require.Equal(t, []string{"round:" + deletedRound.String()}, refolds[0].Deleted)
}

func TestRefoldScopes_ZeroIDsSkipNarrowScopes(t *testing.T) {
	facts := &fakeFactReader{byPlayer: map[sharedtypes.PlayerID][]factdomain.PlayerMatchFact{}}
	repo := newFakeStatRepository()

	refolds, err := newTestService(repo, facts).RefoldScopes(context.Background(), RefoldRequest{
		PlayerIDs: []sharedtypes.PlayerID{"amos"},
	})
	require.NoError(t, err)
	require.Len(t, refolds[0].Deleted, 1, "only the series scope is touched")
}
