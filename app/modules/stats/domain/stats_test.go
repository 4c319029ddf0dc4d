package statdomain

import (
	"testing"

	"github.com/stretchr/testify/require"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

func intp(v int) *int { return &v }

func roundScope() Scope { return Scope{Kind: ScopeRound, ID: "round-1"} }

func TestFold_EmptySetMeansDelete(t *testing.T) {
	_, ok := Fold("amos", roundScope(), nil)
	require.False(t, ok, "empty scope must signal deletion, not a zero stub")

	_, ok = Fold("amos", roundScope(), []factdomain.PlayerMatchFact{
		{PlayerID: "someone-else"},
	})
	require.False(t, ok, "facts for other players do not keep the aggregate alive")
}

func TestFold_SumsOutcomesAndBadges(t *testing.T) {
	facts := []factdomain.PlayerMatchFact{
		{
			PlayerID:       "amos",
			Outcome:        sharedtypes.OutcomeWin,
			Points:         1,
			HolesWonByTeam: 5, HolesLostByTeam: 2, HolesHalved: 9,
			ComebackWin:    true,
			WasNeverBehind: false,
			LeadChanges:    2,
			DecidedOn18:    true,
			Won18thHole:    true,
			HamAndEggCount: 3,
			JekyllAndHyde:  true,
			IsCaptain:      true,
			TotalGross:     intp(74),
			TotalNet:       intp(70),
		},
		{
			PlayerID:   "amos",
			Outcome:    sharedtypes.OutcomeHalved,
			Points:     0.5,
			TotalGross: intp(80),
			TotalNet:   intp(77),
		},
		{
			PlayerID:       "amos",
			Outcome:        sharedtypes.OutcomeWin,
			Points:         1,
			WasNeverBehind: true,
		},
		// Another player's fact in the same scope is ignored.
		{PlayerID: "bert", Outcome: sharedtypes.OutcomeLoss},
	}

	stats, ok := Fold("amos", roundScope(), facts)
	require.True(t, ok)

	require.Equal(t, 3, stats.MatchesPlayed)
	require.Equal(t, 2, stats.Wins)
	require.Equal(t, 0, stats.Losses)
	require.Equal(t, 1, stats.Halves)
	require.Equal(t, 2.5, stats.Points)
	require.Equal(t, 5, stats.HolesWon)
	require.Equal(t, 1, stats.ComebackWins)
	require.Equal(t, 1, stats.NeverBehindWins)
	require.Equal(t, 2, stats.LeadChanges)
	require.Equal(t, 1, stats.DecidedOn18Count)
	require.Equal(t, 1, stats.Won18thHoleCount)
	require.Equal(t, 3, stats.HamAndEggCount)
	require.Equal(t, 1, stats.JekyllAndHydeCount)
	require.Equal(t, 1, stats.CaptainMatches)

	require.Equal(t, 2, stats.ScoredMatches)
	require.Equal(t, 154, stats.TotalGross)
	require.Equal(t, 147, stats.TotalNet)
	require.InDelta(t, 77.0, stats.AverageGross(), 1e-9)
	require.InDelta(t, 73.5, stats.AverageNet(), 1e-9)
}

func TestFold_TeamScoredFormatsCountSeparately(t *testing.T) {
	facts := []factdomain.PlayerMatchFact{
		{PlayerID: "amos", Outcome: sharedtypes.OutcomeWin, TeamTotalGross: intp(66)},
		{PlayerID: "amos", Outcome: sharedtypes.OutcomeLoss, TotalGross: intp(78), TotalNet: intp(75)},
	}

	stats, ok := Fold("amos", roundScope(), facts)
	require.True(t, ok)

	require.Equal(t, 1, stats.TeamScoredMatches)
	require.Equal(t, 66, stats.TeamTotalGross)
	require.Equal(t, 1, stats.ScoredMatches)
	require.InDelta(t, 78.0, stats.AverageGross(), 1e-9)
}

func TestAverages_ZeroWhenUnscored(t *testing.T) {
	stats, ok := Fold("amos", roundScope(), []factdomain.PlayerMatchFact{
		{PlayerID: "amos", Outcome: sharedtypes.OutcomeWin, TeamTotalGross: intp(64)},
	})
	require.True(t, ok)
	require.Zero(t, stats.AverageGross())
	require.Zero(t, stats.AverageNet())
}

func TestScopesOf_CoversAllThreeWindows(t *testing.T) {
	f := factdomain.PlayerMatchFact{PlayerID: "amos"}
	scopes := ScopesOf(f)

	require.Len(t, scopes, 3)
	require.Equal(t, ScopeSeries, scopes[0].Kind)
	require.Equal(t, SeriesScopeID, scopes[0].ID)
	require.Equal(t, ScopeTournament, scopes[1].Kind)
	require.Equal(t, ScopeRound, scopes[2].Kind)
}
