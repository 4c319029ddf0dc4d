package tournamentservice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

func newTestService(repo *FakeTournamentRepository) *TournamentService {
	return NewTournamentService(
		repo,
		observability.NoOpLogger,
		metrics.NoOpTournamentMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}

func testContextRepo(t *testing.T) (*FakeTournamentRepository, sharedtypes.RoundID) {
	t.Helper()
	tournamentID := sharedtypes.TournamentID(uuid.New())
	roundID := sharedtypes.RoundID(uuid.New())

	tournament := &tournamentdomain.Tournament{
		ID:          tournamentID,
		Name:        "Copperhead Cup 2026",
		PointsValue: 2,
		Roster: []tournamentdomain.RosterEntry{
			{PlayerID: "amos", Team: sharedtypes.TeamA, Tier: "A", HandicapIndex: 0},
			{PlayerID: "bert", Team: sharedtypes.TeamB, Tier: "B", HandicapIndex: 10},
			{PlayerID: "carl", Team: sharedtypes.TeamB, Tier: "C", HandicapIndex: 18.4},
		},
		Captains: tournamentdomain.Captains{
			CaptainA:   "amos",
			CaptainB:   "bert",
			CoCaptainB: "carl",
		},
	}
	round := &tournamentdomain.Round{
		ID:           roundID,
		TournamentID: tournamentID,
		Format:       sharedtypes.FormatSingles,
		Course: tournamentdomain.Course{
			Name:   "Copperhead",
			Par:    72,
			Slope:  113,
			Rating: 72,
		},
	}
	for i := range round.Course.HolePars {
		round.Course.HolePars[i] = 4
	}

	repo := NewFakeTournamentRepository()
	repo.GetRoundFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.RoundID) (*tournamentdomain.Round, error) {
		return round, nil
	}
	repo.GetTournamentFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdomain.Tournament, error) {
		return tournament, nil
	}
	return repo, roundID
}

func TestBuildFactContext_AssemblesLookups(t *testing.T) {
	repo, roundID := testContextRepo(t)

	fc, err := newTestService(repo).BuildFactContext(context.Background(), roundID)
	require.NoError(t, err)

	require.Equal(t, roundID, fc.RoundID)
	require.Equal(t, 72, fc.CoursePar)
	require.Equal(t, 2.0, fc.PointsValue)
	require.Equal(t, sharedtypes.Tier("B"), fc.TierByPlayer["bert"])
	require.Equal(t, 18.4, fc.HandicapIndexByPlayer["carl"])
	require.Equal(t, sharedtypes.PlayerID("amos"), fc.CaptainByTeam[sharedtypes.TeamA])
	require.Equal(t, sharedtypes.PlayerID("bert"), fc.CaptainByTeam[sharedtypes.TeamB])
	require.Equal(t, sharedtypes.PlayerID("carl"), fc.CoCaptainByTeam[sharedtypes.TeamB])

	// No co-captain named for team A.
	_, ok := fc.CoCaptainByTeam[sharedtypes.TeamA]
	require.False(t, ok)
}

func TestAllocateRoundStrokes_SpinsDownLineup(t *testing.T) {
	repo, roundID := testContextRepo(t)

	// Slope 113 and rating equal to par make course handicap equal the index,
	// so bert plays off 10 against scratch amos.
	strokes, err := newTestService(repo).AllocateRoundStrokes(
		context.Background(), roundID,
		[]sharedtypes.PlayerID{"amos", "bert"},
	)
	require.NoError(t, err)
	require.Len(t, strokes, 2)

	for hole := 0; hole < sharedtypes.HolesPerRound; hole++ {
		require.Equal(t, 0, strokes[0][hole])
	}
	// Zeroed hole handicaps rank holes in play order: strokes land on 1-10.
	for hole := 0; hole < 10; hole++ {
		require.Equal(t, 1, strokes[1][hole], "hole %d", hole+1)
	}
	for hole := 10; hole < sharedtypes.HolesPerRound; hole++ {
		require.Equal(t, 0, strokes[1][hole], "hole %d", hole+1)
	}
}

func TestCourseHandicapsForRound_CoversRoster(t *testing.T) {
	repo, roundID := testContextRepo(t)

	chs, err := newTestService(repo).CourseHandicapsForRound(context.Background(), roundID)
	require.NoError(t, err)
	require.Len(t, chs, 3)
	require.InDelta(t, 0, chs["amos"], 1e-9)
	require.InDelta(t, 10, chs["bert"], 1e-9)
	require.InDelta(t, 18.4, chs["carl"], 1e-9)
}

func TestCreateRound_LinksIntoTournament(t *testing.T) {
	repo := NewFakeTournamentRepository()
	round := &tournamentdomain.Round{
		ID:           sharedtypes.RoundID(uuid.New()),
		TournamentID: sharedtypes.TournamentID(uuid.New()),
		Name:         "Day One",
		Format:       sharedtypes.FormatTwoManBestBall,
	}

	_, err := newTestService(repo).CreateRound(context.Background(), round)
	require.NoError(t, err)
	require.Equal(t, []string{"CreateRound", "AppendRoundID"}, repo.Trace())
}

func TestCreateRound_AppendFailureRollsUp(t *testing.T) {
	repo := NewFakeTournamentRepository()
	repo.AppendRoundIDFunc = func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roundID sharedtypes.RoundID) (bool, error) {
		return false, errors.New("boom")
	}

	_, err := newTestService(repo).CreateRound(context.Background(), &tournamentdomain.Round{
		TournamentID: sharedtypes.TournamentID(uuid.New()),
	})
	require.Error(t, err)
}

func TestRegisterMatch_DuplicateIsIdempotent(t *testing.T) {
	repo := NewFakeTournamentRepository()
	repo.AppendMatchIDFunc = func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, matchID sharedtypes.MatchID) (bool, error) {
		return false, nil
	}

	err := newTestService(repo).RegisterMatch(
		context.Background(),
		sharedtypes.RoundID(uuid.New()),
		sharedtypes.MatchID(uuid.New()),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"AppendMatchID"}, repo.Trace())
}
