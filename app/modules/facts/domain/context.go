// Package factdomain derives per-player fact records from closed matches.
// It is pure: no I/O, no errors — missing context degrades to safe defaults
// rather than failing a batch.
package factdomain

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// FactContext is the read-only tournament/round context a fact build needs.
// It is assembled once per invocation by the tournament module and injected;
// the builder never reaches out for ambient state.
type FactContext struct {
	TournamentID sharedtypes.TournamentID
	RoundID      sharedtypes.RoundID

	CoursePar int
	HolePars  [sharedtypes.HolesPerRound]int

	TierByPlayer          map[sharedtypes.PlayerID]sharedtypes.Tier
	HandicapIndexByPlayer map[sharedtypes.PlayerID]float64

	CaptainByTeam   map[sharedtypes.TeamSide]sharedtypes.PlayerID
	CoCaptainByTeam map[sharedtypes.TeamSide]sharedtypes.PlayerID

	// PointsValue is the team points awarded for a win; a halved match
	// pays half. Defaults to 1.
	PointsValue float64
}

// normalized fills the defaults the builder relies on: par 72, par-4 holes,
// empty lookup maps, one point per match.
func (c FactContext) normalized() FactContext {
	if c.CoursePar <= 0 {
		c.CoursePar = 72
	}
	for i, par := range c.HolePars {
		if par <= 0 {
			c.HolePars[i] = 4
		}
	}
	if c.TierByPlayer == nil {
		c.TierByPlayer = map[sharedtypes.PlayerID]sharedtypes.Tier{}
	}
	if c.HandicapIndexByPlayer == nil {
		c.HandicapIndexByPlayer = map[sharedtypes.PlayerID]float64{}
	}
	if c.CaptainByTeam == nil {
		c.CaptainByTeam = map[sharedtypes.TeamSide]sharedtypes.PlayerID{}
	}
	if c.CoCaptainByTeam == nil {
		c.CoCaptainByTeam = map[sharedtypes.TeamSide]sharedtypes.PlayerID{}
	}
	if c.PointsValue <= 0 {
		c.PointsValue = 1
	}
	return c
}

func (c FactContext) tier(id sharedtypes.PlayerID) sharedtypes.Tier {
	if t, ok := c.TierByPlayer[id]; ok && t != "" {
		return t
	}
	return sharedtypes.TierUnknown
}

func (c FactContext) handicapIndex(id sharedtypes.PlayerID) float64 {
	return c.HandicapIndexByPlayer[id]
}
