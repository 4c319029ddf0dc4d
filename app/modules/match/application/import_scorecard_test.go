package matchservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

func TestImportScorecard_Singles(t *testing.T) {
	ctx := context.Background()
	matchID := sharedtypes.MatchID(uuid.New())
	stored := &matchdomain.Match{
		ID:     matchID,
		Format: sharedtypes.FormatSingles,
		TeamA:  []matchdomain.PlayerSide{{PlayerID: "amos"}},
		TeamB:  []matchdomain.PlayerSide{{PlayerID: "bert"}},
	}

	repo := NewFakeMatchRepository()
	repo.GetMatchFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*matchdomain.Match, string, error) {
		return stored, "", nil
	}

	// A round-wide export: carl plays a different match and is ignored.
	csv := []byte("player,1,2,3\namos,4,5,3\nbert,5,4,4\ncarl,3,3,3\n")

	res, err := newTestService(repo).ImportScorecard(ctx, matchID, "round.csv", csv)
	require.NoError(t, err)
	require.NotNil(t, res.Success)

	hole1, ok := repo.LastPersistedHoles.Holes[0].(matchdomain.SinglesHole)
	require.True(t, ok)
	require.Equal(t, 4, *hole1.AGross)
	require.Equal(t, 5, *hole1.BGross)
	require.Nil(t, repo.LastPersistedHoles.Holes[3])
}

func TestImportScorecard_PairSeats(t *testing.T) {
	ctx := context.Background()
	matchID := sharedtypes.MatchID(uuid.New())
	stored := &matchdomain.Match{
		ID:     matchID,
		Format: sharedtypes.FormatTwoManBestBall,
		TeamA:  []matchdomain.PlayerSide{{PlayerID: "p1"}, {PlayerID: "p2"}},
		TeamB:  []matchdomain.PlayerSide{{PlayerID: "p3"}, {PlayerID: "p4"}},
	}

	repo := NewFakeMatchRepository()
	repo.GetMatchFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*matchdomain.Match, string, error) {
		return stored, "", nil
	}

	csv := []byte("player,1\np1,4\np2,6\np3,5\n")

	res, err := newTestService(repo).ImportScorecard(ctx, matchID, "round.csv", csv)
	require.NoError(t, err)
	require.NotNil(t, res.Success)

	hole1, ok := repo.LastPersistedHoles.Holes[0].(matchdomain.PairHole)
	require.True(t, ok)
	require.Equal(t, 4, *hole1.AGross[0])
	require.Equal(t, 6, *hole1.AGross[1])
	require.Equal(t, 5, *hole1.BGross[0])
	require.Nil(t, hole1.BGross[1], "absent partner stays unentered")
}

func TestImportScorecard_ScrambleRejected(t *testing.T) {
	ctx := context.Background()
	matchID := sharedtypes.MatchID(uuid.New())
	stored := &matchdomain.Match{
		ID:     matchID,
		Format: sharedtypes.FormatTwoManScramble,
		TeamA:  []matchdomain.PlayerSide{{PlayerID: "p1"}, {PlayerID: "p2"}},
		TeamB:  []matchdomain.PlayerSide{{PlayerID: "p3"}, {PlayerID: "p4"}},
	}

	repo := NewFakeMatchRepository()
	repo.GetMatchFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*matchdomain.Match, string, error) {
		return stored, "", nil
	}

	res, err := newTestService(repo).ImportScorecard(ctx, matchID, "round.csv", []byte("player,1\np1,4\n"))
	require.NoError(t, err)
	require.NotNil(t, res.Failure)
	require.NotContains(t, repo.Trace(), "UpdateHoles")
}

func TestImportScorecard_UnsupportedExtension(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeMatchRepository()

	res, err := newTestService(repo).ImportScorecard(ctx, sharedtypes.MatchID(uuid.New()), "round.pdf", nil)
	require.NoError(t, err)
	require.NotNil(t, res.Failure)
	require.Empty(t, repo.Trace())
}

func TestImportScorecard_NoMatchingRows(t *testing.T) {
	ctx := context.Background()
	matchID := sharedtypes.MatchID(uuid.New())
	stored := &matchdomain.Match{
		ID:     matchID,
		Format: sharedtypes.FormatSingles,
		TeamA:  []matchdomain.PlayerSide{{PlayerID: "amos"}},
		TeamB:  []matchdomain.PlayerSide{{PlayerID: "bert"}},
	}

	repo := NewFakeMatchRepository()
	repo.GetMatchFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.MatchID) (*matchdomain.Match, string, error) {
		return stored, "", nil
	}

	res, err := newTestService(repo).ImportScorecard(ctx, matchID, "round.csv", []byte("player,1\nstranger,4\n"))
	require.NoError(t, err)
	require.NotNil(t, res.Failure)
	require.NotContains(t, repo.Trace(), "UpdateHoles")
}
