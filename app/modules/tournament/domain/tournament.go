// Package tournamentdomain holds the tournament/round context types: rosters,
// courses, captains and the per-round settings the scoring engine reads.
package tournamentdomain

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// RosterEntry is one player's standing membership in a tournament.
type RosterEntry struct {
	PlayerID      sharedtypes.PlayerID `json:"player_id"`
	Team          sharedtypes.TeamSide `json:"team"`
	Tier          sharedtypes.Tier     `json:"tier"`
	HandicapIndex float64              `json:"handicap_index"`
}

// Captains records each team's captain and co-captain.
type Captains struct {
	CaptainA   sharedtypes.PlayerID `json:"captain_a"`
	CaptainB   sharedtypes.PlayerID `json:"captain_b"`
	CoCaptainA sharedtypes.PlayerID `json:"co_captain_a"`
	CoCaptainB sharedtypes.PlayerID `json:"co_captain_b"`
}

// Tournament is a trip or season of rounds between two standing teams.
type Tournament struct {
	ID          sharedtypes.TournamentID
	Name        string
	PointsValue float64
	Roster      []RosterEntry
	Captains    Captains
	// RoundIDs is append-only and guarded by a row lock; see the
	// repository's AppendRoundID.
	RoundIDs []sharedtypes.RoundID
}

// Course is the card the stroke allocator and fact builder read.
type Course struct {
	Name          string                         `json:"name"`
	Par           int                            `json:"par"`
	Slope         float64                        `json:"slope"`
	Rating        float64                        `json:"rating"`
	HolePars      [sharedtypes.HolesPerRound]int `json:"hole_pars"`
	HoleHandicaps [sharedtypes.HolesPerRound]int `json:"hole_handicaps"`
}

// SkinsSettings is a round's optional skins side game.
type SkinsSettings struct {
	Enabled   bool    `json:"enabled"`
	Pot       float64 `json:"pot"`
	Mode      string  `json:"mode"`
	Allowance float64 `json:"allowance"`
}

// Round is one session of matches played in a single format on one course.
type Round struct {
	ID           sharedtypes.RoundID
	TournamentID sharedtypes.TournamentID
	Name         string
	Format       sharedtypes.Format
	Course       Course
	Skins        SkinsSettings
	// MatchIDs is append-only, guarded like Tournament.RoundIDs.
	MatchIDs []sharedtypes.MatchID
}

// TierOf looks a player up in the roster; absent players are Unknown.
func (t *Tournament) TierOf(id sharedtypes.PlayerID) sharedtypes.Tier {
	for _, e := range t.Roster {
		if e.PlayerID == id && e.Tier != "" {
			return e.Tier
		}
	}
	return sharedtypes.TierUnknown
}

// HandicapIndexOf looks a player's index up in the roster; absent players
// play to scratch.
func (t *Tournament) HandicapIndexOf(id sharedtypes.PlayerID) float64 {
	for _, e := range t.Roster {
		if e.PlayerID == id {
			return e.HandicapIndex
		}
	}
	return 0
}
