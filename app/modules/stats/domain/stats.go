// Package statdomain folds player match facts into per-scope aggregates.
// Aggregates are always rebuilt in full from the fact set; there is no
// incremental merge.
package statdomain

import (
	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// ScopeKind selects the aggregation window.
type ScopeKind string

const (
	// ScopeSeries spans every tournament the player has appeared in.
	ScopeSeries ScopeKind = "series"
	// ScopeTournament spans one tournament.
	ScopeTournament ScopeKind = "tournament"
	// ScopeRound spans one round.
	ScopeRound ScopeKind = "round"
)

// SeriesScopeID is the fixed scope identifier for the all-time series scope.
const SeriesScopeID = "all"

// Scope is the aggregation key paired with a player ID.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	// ID is the tournament or round UUID string, or SeriesScopeID.
	ID string `json:"id"`
}

// PlayerStats is the rolled-up view of one player within one scope. Every
// field is a straight sum or count over the scope's facts; averages are
// derived on read.
type PlayerStats struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Scope    Scope                `json:"scope"`

	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Halves        int     `json:"halves"`
	Points        float64 `json:"points"`

	HolesWon    int `json:"holes_won"`
	HolesLost   int `json:"holes_lost"`
	HolesHalved int `json:"holes_halved"`

	ComebackWins     int `json:"comeback_wins"`
	BlownLeads       int `json:"blown_leads"`
	NeverBehindWins  int `json:"never_behind_wins"`
	LeadChanges      int `json:"lead_changes"`
	DecidedOn18Count int `json:"decided_on_18_count"`
	Won18thHoleCount int `json:"won_18th_hole_count"`

	BallsUsed       int `json:"balls_used"`
	BallsUsedSolo   int `json:"balls_used_solo"`
	BallsUsedShared int `json:"balls_used_shared"`
	SoloBallWonHole int `json:"solo_ball_won_hole"`
	SoloBallPush    int `json:"solo_ball_push"`
	DrivesUsed      int `json:"drives_used"`

	HamAndEggCount     int `json:"ham_and_egg_count"`
	JekyllAndHydeCount int `json:"jekyll_and_hyde_count"`

	CaptainMatches          int `json:"captain_matches"`
	CaptainVsCaptainMatches int `json:"captain_vs_captain_matches"`

	// Scoring sums cover only matches where the format produced a
	// per-player gross; ScoredMatches is the divisor for averages.
	ScoredMatches     int `json:"scored_matches"`
	TotalGross        int `json:"total_gross"`
	TotalNet          int `json:"total_net"`
	VsParGross        int `json:"vs_par_gross"`
	VsParNet          int `json:"vs_par_net"`
	TeamScoredMatches int `json:"team_scored_matches"`
	TeamTotalGross    int `json:"team_total_gross"`
}

// AverageGross is the mean per-player gross per scored match; zero when the
// player has no individually scored matches in the scope.
func (s PlayerStats) AverageGross() float64 {
	if s.ScoredMatches == 0 {
		return 0
	}
	return float64(s.TotalGross) / float64(s.ScoredMatches)
}

// AverageNet is the mean per-player net per scored match.
func (s PlayerStats) AverageNet() float64 {
	if s.ScoredMatches == 0 {
		return 0
	}
	return float64(s.TotalNet) / float64(s.ScoredMatches)
}

// Fold rebuilds the aggregate for one (player, scope) pair from its fact
// set. The second return is false when the set is empty, which callers must
// treat as "delete the aggregate", never as "store zeros".
func Fold(playerID sharedtypes.PlayerID, scope Scope, facts []factdomain.PlayerMatchFact) (PlayerStats, bool) {
	stats := PlayerStats{PlayerID: playerID, Scope: scope}
	folded := false

	for _, f := range facts {
		if f.PlayerID != playerID {
			continue
		}
		folded = true
		stats.add(f)
	}
	return stats, folded
}

func (s *PlayerStats) add(f factdomain.PlayerMatchFact) {
	s.MatchesPlayed++
	s.Points += f.Points
	switch f.Outcome {
	case sharedtypes.OutcomeWin:
		s.Wins++
		if f.WasNeverBehind {
			s.NeverBehindWins++
		}
	case sharedtypes.OutcomeLoss:
		s.Losses++
	case sharedtypes.OutcomeHalved:
		s.Halves++
	}

	s.HolesWon += f.HolesWonByTeam
	s.HolesLost += f.HolesLostByTeam
	s.HolesHalved += f.HolesHalved

	if f.ComebackWin {
		s.ComebackWins++
	}
	if f.BlownLead {
		s.BlownLeads++
	}
	s.LeadChanges += f.LeadChanges
	if f.DecidedOn18 {
		s.DecidedOn18Count++
	}
	if f.Won18thHole {
		s.Won18thHoleCount++
	}

	s.BallsUsed += f.BallsUsed
	s.BallsUsedSolo += f.BallsUsedSolo
	s.BallsUsedShared += f.BallsUsedShared
	s.SoloBallWonHole += f.SoloBallWonHole
	s.SoloBallPush += f.SoloBallPush
	s.DrivesUsed += f.DrivesUsed

	s.HamAndEggCount += f.HamAndEggCount
	if f.JekyllAndHyde {
		s.JekyllAndHydeCount++
	}

	if f.IsCaptain {
		s.CaptainMatches++
	}
	if f.CaptainVsCaptain {
		s.CaptainVsCaptainMatches++
	}

	if f.TotalGross != nil {
		s.ScoredMatches++
		s.TotalGross += *f.TotalGross
	}
	if f.TotalNet != nil {
		s.TotalNet += *f.TotalNet
	}
	if f.StrokesVsParGross != nil {
		s.VsParGross += *f.StrokesVsParGross
	}
	if f.StrokesVsParNet != nil {
		s.VsParNet += *f.StrokesVsParNet
	}
	if f.TeamTotalGross != nil {
		s.TeamScoredMatches++
		s.TeamTotalGross += *f.TeamTotalGross
	}
}

// ScopesOf lists every scope a single fact contributes to. A fact write or
// delete dirties exactly these aggregates for its player.
func ScopesOf(f factdomain.PlayerMatchFact) []Scope {
	return []Scope{
		{Kind: ScopeSeries, ID: SeriesScopeID},
		{Kind: ScopeTournament, ID: f.TournamentID.String()},
		{Kind: ScopeRound, ID: f.RoundID.String()},
	}
}
