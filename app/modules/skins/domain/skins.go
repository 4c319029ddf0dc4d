// Package skinsdomain computes the skins side game for a round. Skins run
// across the whole round's field, independent of match-play results: the
// outright lowest score on a hole wins that hole's skin, ties push with no
// carryover, and the pot splits evenly over skins actually won.
package skinsdomain

import (
	"sort"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// Mode selects the comparison scale.
type Mode string

const (
	ModeGross Mode = "gross"
	ModeNet   Mode = "net"
)

// Config is the round's skins setup. Rounds without a pot simply never run
// the computation.
type Config struct {
	Pot  float64 `json:"pot"`
	Mode Mode    `json:"mode"`
	// Allowance is the handicap percentage applied in net mode, typically
	// 0.8. Zero or negative means full handicap.
	Allowance float64 `json:"allowance"`
}

// Entrant is one player's round-long card: raw gross per hole, with nil for
// holes not yet entered, plus the unrounded course handicap used for the
// net-mode allocation.
type Entrant struct {
	PlayerID       sharedtypes.PlayerID
	CourseHandicap float64
	Gross          [sharedtypes.HolesPerRound]*int
}

// HoleSkin is one awarded skin.
type HoleSkin struct {
	Hole   int                  `json:"hole"`
	Winner sharedtypes.PlayerID `json:"winner"`
	Gross  int                  `json:"gross"`
	Net    int                  `json:"net"`
	Value  float64              `json:"value"`
}

// PlayerSkins is one player's line on the skins leaderboard.
type PlayerSkins struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Skins    int                  `json:"skins"`
	Earnings float64              `json:"earnings"`
	Holes    []int                `json:"holes"`
}

// Result is the full skins state for a round.
type Result struct {
	Skins       []HoleSkin    `json:"skins"`
	Leaderboard []PlayerSkins `json:"leaderboard"`
	SkinValue   float64       `json:"skin_value"`
}

// Compute resolves the round's skins. holeHandicaps is the course's
// hole-handicap ranking used for the net-mode stroke allocation; entrants
// with missing scores simply cannot win those holes. The computation is
// total and reentrant, recomputed wholesale whenever any underlying match
// changes.
func Compute(cfg Config, entrants []Entrant, holeHandicaps [sharedtypes.HolesPerRound]int) Result {
	if len(entrants) == 0 {
		return Result{SkinValue: 0}
	}

	strokes := make([][sharedtypes.HolesPerRound]int, len(entrants))
	if cfg.Mode == ModeNet {
		handicaps := make([]float64, len(entrants))
		for i, e := range entrants {
			handicaps[i] = e.CourseHandicap
		}
		strokes = matchdomain.AllocateWithAllowance(handicaps, cfg.Allowance, holeHandicaps)
	}

	var skins []HoleSkin
	for hole := 0; hole < sharedtypes.HolesPerRound; hole++ {
		winner := -1
		best := 0
		outright := false
		for i, e := range entrants {
			gross := e.Gross[hole]
			if gross == nil {
				continue
			}
			score := *gross
			if cfg.Mode == ModeNet {
				score -= strokes[i][hole]
			}
			switch {
			case winner < 0 || score < best:
				winner, best, outright = i, score, true
			case score == best:
				outright = false
			}
		}
		if winner < 0 || !outright {
			continue
		}
		e := entrants[winner]
		skins = append(skins, HoleSkin{
			Hole:   hole + 1,
			Winner: e.PlayerID,
			Gross:  *e.Gross[hole],
			Net:    best,
		})
	}

	value := 0.0
	if len(skins) > 0 && cfg.Pot > 0 {
		value = cfg.Pot / float64(len(skins))
	}
	byPlayer := map[sharedtypes.PlayerID]*PlayerSkins{}
	for i := range skins {
		skins[i].Value = value
		line, ok := byPlayer[skins[i].Winner]
		if !ok {
			line = &PlayerSkins{PlayerID: skins[i].Winner}
			byPlayer[skins[i].Winner] = line
		}
		line.Skins++
		line.Earnings += value
		line.Holes = append(line.Holes, skins[i].Hole)
	}

	leaderboard := make([]PlayerSkins, 0, len(byPlayer))
	for _, line := range byPlayer {
		leaderboard = append(leaderboard, *line)
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].Skins != leaderboard[j].Skins {
			return leaderboard[i].Skins > leaderboard[j].Skins
		}
		return leaderboard[i].PlayerID < leaderboard[j].PlayerID
	})

	return Result{Skins: skins, Leaderboard: leaderboard, SkinValue: value}
}

// EntrantsFromMatches flattens a round's matches into skins entrants. Only
// singles and best-ball matches feed skins: those are the formats where a
// player holes out their own ball tee to green. Shamble balls start from a
// picked drive and scramble sides share one ball, so both stay out of the
// pot.
func EntrantsFromMatches(matches []*matchdomain.Match, courseHandicapByPlayer map[sharedtypes.PlayerID]float64) []Entrant {
	var entrants []Entrant
	for _, m := range matches {
		if m.Format != sharedtypes.FormatSingles && m.Format != sharedtypes.FormatTwoManBestBall {
			continue
		}
		entrants = append(entrants, sideEntrants(m, sharedtypes.TeamA, courseHandicapByPlayer)...)
		entrants = append(entrants, sideEntrants(m, sharedtypes.TeamB, courseHandicapByPlayer)...)
	}
	return entrants
}

func sideEntrants(m *matchdomain.Match, team sharedtypes.TeamSide, handicaps map[sharedtypes.PlayerID]float64) []Entrant {
	side := m.TeamA
	if team == sharedtypes.TeamB {
		side = m.TeamB
	}
	side = matchdomain.NormalizeSide(side, m.Format)

	entrants := make([]Entrant, 0, len(side))
	for seat, player := range side {
		if player.PlayerID == "" {
			continue
		}
		e := Entrant{
			PlayerID:       player.PlayerID,
			CourseHandicap: handicaps[player.PlayerID],
		}
		for i := 0; i < sharedtypes.HolesPerRound; i++ {
			e.Gross[i] = grossAt(m.Holes[i], m.Format, team, seat)
		}
		entrants = append(entrants, e)
	}
	return entrants
}

func grossAt(input matchdomain.HoleInput, format sharedtypes.Format, team sharedtypes.TeamSide, seat int) *int {
	if input == nil {
		return nil
	}
	switch in := input.(type) {
	case matchdomain.SinglesHole:
		if team == sharedtypes.TeamA {
			return in.AGross
		}
		return in.BGross
	case matchdomain.PairHole:
		if team == sharedtypes.TeamA {
			return in.AGross[seat]
		}
		return in.BGross[seat]
	default:
		return nil
	}
}
