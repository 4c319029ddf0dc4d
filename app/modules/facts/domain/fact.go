package factdomain

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// HolePerformance is one row of a player's per-hole ledger. Every entered
// hole appears, including post-closure "for the record" holes.
type HolePerformance struct {
	Hole int `json:"hole"`
	Par  int `json:"par"`

	// Gross is the player's own ball in individual-score formats and the
	// team ball in a scramble. Net is only present where strokes apply.
	Gross   *int `json:"gross,omitempty"`
	Strokes int  `json:"strokes"`
	Net     *int `json:"net,omitempty"`

	// Result is the team outcome of the hole, nil while undecided.
	Result *sharedtypes.HoleResult `json:"result,omitempty"`

	// Partner comparison, pair formats only.
	PartnerGross *int  `json:"partner_gross,omitempty"`
	BallUsed     bool  `json:"ball_used"`
	BallShared   bool  `json:"ball_shared"`
	BeatPartner  *bool `json:"beat_partner,omitempty"`

	DriveUsed bool `json:"drive_used"`
}

// PlayerMatchFact is the immutable derived record for one player in one
// closed match. It is recomputed wholesale (same key) whenever the match's
// hole inputs change while closed, and deleted when the match reopens.
type PlayerMatchFact struct {
	MatchID      sharedtypes.MatchID      `json:"match_id"`
	RoundID      sharedtypes.RoundID      `json:"round_id"`
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	PlayerID     sharedtypes.PlayerID     `json:"player_id"`
	Team         sharedtypes.TeamSide     `json:"team"`
	Format       sharedtypes.Format       `json:"format"`

	// Outcome and points.
	Outcome   sharedtypes.MatchOutcome `json:"outcome"`
	Points    float64                  `json:"points"`
	Margin    int                      `json:"margin"`
	Scoreline string                   `json:"scoreline"`

	// Identity snapshots, frozen at build time.
	PlayerTier          sharedtypes.Tier       `json:"player_tier"`
	PlayerHandicapIndex float64                `json:"player_handicap_index"`
	PartnerID           *sharedtypes.PlayerID  `json:"partner_id,omitempty"`
	PartnerTier         sharedtypes.Tier       `json:"partner_tier,omitempty"`
	PartnerHandicap     float64                `json:"partner_handicap,omitempty"`
	OpponentIDs         []sharedtypes.PlayerID `json:"opponent_ids"`
	OpponentTiers       []sharedtypes.Tier     `json:"opponent_tiers"`
	OpponentHandicaps   []float64              `json:"opponent_handicaps"`

	// Hole-count breakdown, bounded by the winning hole.
	HolesWonByTeam  int `json:"holes_won_by_team"`
	HolesLostByTeam int `json:"holes_lost_by_team"`
	HolesHalved     int `json:"holes_halved"`

	// WinningHole is the 1-based hole that mathematically ended the match;
	// nil when it went the distance.
	WinningHole *int `json:"winning_hole,omitempty"`

	// Momentum badges.
	ComebackWin    bool `json:"comeback_win"`
	BlownLead      bool `json:"blown_lead"`
	WasNeverBehind bool `json:"was_never_behind"`
	LeadChanges    int  `json:"lead_changes"`

	// Ball usage, best ball and shamble only.
	BallsUsed       int `json:"balls_used"`
	BallsUsedSolo   int `json:"balls_used_solo"`
	BallsUsedShared int `json:"balls_used_shared"`
	SoloBallWonHole int `json:"solo_ball_won_hole"`
	SoloBallPush    int `json:"solo_ball_push"`

	// Drive usage, scramble and shamble only.
	DrivesUsed int `json:"drives_used"`

	// Partnership badges, pair formats only.
	HamAndEggCount int  `json:"ham_and_egg_count"`
	JekyllAndHyde  bool `json:"jekyll_and_hyde"`
	BestBallTotal  *int `json:"best_ball_total,omitempty"`
	WorstBallTotal *int `json:"worst_ball_total,omitempty"`

	// Scoring totals over every entered hole, post-closure included.
	TotalGross        *int `json:"total_gross,omitempty"`
	TotalNet          *int `json:"total_net,omitempty"`
	StrokesVsParGross *int `json:"strokes_vs_par_gross,omitempty"`
	StrokesVsParNet   *int `json:"strokes_vs_par_net,omitempty"`
	TeamTotalGross    *int `json:"team_total_gross,omitempty"`

	// 18th-hole decision flags.
	DecidedOn18 bool `json:"decided_on_18"`
	Won18thHole bool `json:"won_18th_hole"`

	// Captain badges.
	IsCaptain        bool `json:"is_captain"`
	IsCoCaptain      bool `json:"is_co_captain"`
	CaptainVsCaptain bool `json:"captain_vs_captain"`

	HolePerformance [sharedtypes.HolesPerRound]*HolePerformance `json:"hole_performance"`
}
