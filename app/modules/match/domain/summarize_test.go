package matchdomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// singlesHoles builds a singles hole array from per-hole outcomes:
// 'A' teamA wins, 'B' teamB wins, '=' halved, '.' not entered.
func singlesHoles(pattern string) [sharedtypes.HolesPerRound]HoleInput {
	var holes [sharedtypes.HolesPerRound]HoleInput
	for i, c := range pattern {
		if i >= sharedtypes.HolesPerRound {
			break
		}
		switch c {
		case 'A':
			holes[i] = SinglesHole{AGross: intp(3), BGross: intp(4)}
		case 'B':
			holes[i] = SinglesHole{AGross: intp(4), BGross: intp(3)}
		case '=':
			holes[i] = SinglesHole{AGross: intp(4), BGross: intp(4)}
		}
	}
	return holes
}

func singlesSides() ([]PlayerSide, []PlayerSide) {
	return []PlayerSide{{PlayerID: "amos"}}, []PlayerSide{{PlayerID: "bert"}}
}

func TestSummarize_EarlyClose3And1(t *testing.T) {
	// 7-7 through 14, then teamA wins 15, 16, 17: margin 3 with 1 to play.
	teamA, teamB := singlesSides()
	holes := singlesHoles("ABABABABABABABAAA")

	summary := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)

	require.True(t, summary.Status.Closed)
	require.Equal(t, 3, summary.Status.Margin)
	require.Equal(t, 17, summary.Status.Thru)
	require.Equal(t, sharedtypes.WinnerTeamA, summary.Result.Winner)
	require.Equal(t, 10, summary.Result.HolesWonA)
	require.Equal(t, 7, summary.Result.HolesWonB)
	require.Equal(t, "3&1", summary.Result.Scoreline)
	require.NotNil(t, summary.WinningHole)
	require.Equal(t, 17, *summary.WinningHole)
}

func TestSummarize_PostClosureHolesAreInertForStatus(t *testing.T) {
	teamA, teamB := singlesSides()
	closed := singlesHoles("ABABABABABABABAAA")
	withExtra := closed
	// Hole 18 entered after the match ended; teamB wins it for the record.
	withExtra[17] = SinglesHole{AGross: intp(5), BGross: intp(3)}

	base := Summarize(sharedtypes.FormatSingles, closed, teamA, teamB)
	extra := Summarize(sharedtypes.FormatSingles, withExtra, teamA, teamB)

	if diff := cmp.Diff(base.Status, extra.Status); diff != "" {
		t.Errorf("status changed by post-closure hole (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(base.Result, extra.Result); diff != "" {
		t.Errorf("result changed by post-closure hole (-want +got):\n%s", diff)
	}
	// The raw hole result is still visible to the fact builder.
	require.NotNil(t, extra.HoleResults[17])
	require.Equal(t, sharedtypes.HoleWonByTeamB, *extra.HoleResults[17])
}

func TestSummarize_Idempotent(t *testing.T) {
	teamA, teamB := singlesSides()
	holes := singlesHoles("A=B=A=B=A=B=")

	first := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)
	second := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("summarizer not idempotent (-first +second):\n%s", diff)
	}
}

func TestSummarize_Dormie(t *testing.T) {
	// teamA 3 up with 3 to play: dormie, not closed.
	teamA, teamB := singlesSides()
	holes := singlesHoles("AAA============")

	summary := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)

	require.False(t, summary.Status.Closed)
	require.True(t, summary.Status.Dormie)
	require.Equal(t, 3, summary.Status.Margin)
	require.Equal(t, 15, summary.Status.Thru)
	require.NotNil(t, summary.Status.Leader)
	require.Equal(t, sharedtypes.TeamA, *summary.Status.Leader)
	require.Equal(t, sharedtypes.WinnerNone, summary.Result.Winner)
}

func TestSummarize_GapsDoNotBlockThru(t *testing.T) {
	// Hole 5 never entered; a decided hole 7 still advances thru to 7.
	teamA, teamB := singlesSides()
	holes := singlesHoles("AA=A.=A")

	summary := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)

	require.Equal(t, 7, summary.Status.Thru)
	require.False(t, summary.Status.Closed)
	require.Equal(t, 4, summary.Result.HolesWonA)
}

func TestSummarize_FullMatchHalved(t *testing.T) {
	teamA, teamB := singlesSides()
	holes := singlesHoles("ABABABABAB========")

	summary := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)

	require.True(t, summary.Status.Closed)
	require.Equal(t, 18, summary.Status.Thru)
	require.Equal(t, 0, summary.Status.Margin)
	require.Nil(t, summary.Status.Leader)
	require.Equal(t, sharedtypes.WinnerAllSquare, summary.Result.Winner)
	require.Equal(t, "AS", summary.Result.Scoreline)
	require.Nil(t, summary.WinningHole)
}

func TestSummarize_WinAtTheLast(t *testing.T) {
	teamA, teamB := singlesSides()
	holes := singlesHoles("ABABABABAB=======A")

	summary := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)

	require.True(t, summary.Status.Closed)
	require.Equal(t, sharedtypes.WinnerTeamA, summary.Result.Winner)
	require.Equal(t, "1 up", summary.Result.Scoreline)
}

func TestSummarize_Back9MomentumFlags(t *testing.T) {
	// teamB takes the first three, everything else halved: teamA stands
	// 3 down through every back-nine sample point.
	teamA, teamB := singlesSides()
	holes := singlesHoles("BBB===============")

	summary := Summarize(sharedtypes.FormatSingles, holes, teamA, teamB)

	require.True(t, summary.Status.TeamADown3PlusBack9)
	require.False(t, summary.Status.TeamAUp3PlusBack9)

	mirror := Summarize(sharedtypes.FormatSingles, singlesHoles("AAA==============="), teamA, teamB)
	require.True(t, mirror.Status.TeamAUp3PlusBack9)
	require.False(t, mirror.Status.TeamADown3PlusBack9)
}

func TestSummarize_ClosedInvariant(t *testing.T) {
	patterns := []string{
		"ABABABABABABABAAA",
		"AAAAAAAAAA",
		"ABABABABAB========",
		"===============AAA",
	}
	teamA, teamB := singlesSides()
	for _, p := range patterns {
		summary := Summarize(sharedtypes.FormatSingles, singlesHoles(p), teamA, teamB)
		st := summary.Status
		require.Equal(t, abs(summary.Result.HolesWonA-summary.Result.HolesWonB), st.Margin, p)
		if st.Closed {
			require.True(t, st.Margin > sharedtypes.HolesPerRound-st.Thru || st.Thru == sharedtypes.HolesPerRound, p)
		}
	}
}
