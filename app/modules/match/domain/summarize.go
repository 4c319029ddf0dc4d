package matchdomain

import (
	"fmt"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// MatchStatus is the running state of a match, recomputed wholesale from the
// hole inputs on every change. It has no independent lifecycle.
type MatchStatus struct {
	Leader *sharedtypes.TeamSide `json:"leader"`
	Margin int                   `json:"margin"`
	Thru   int                   `json:"thru"`
	Dormie bool                  `json:"dormie"`
	Closed bool                  `json:"closed"`

	// Back-9 momentum flags, sampled while the match is still open going
	// into each back-nine hole. The fact builder turns these into
	// comeback-win and blown-lead badges.
	TeamADown3PlusBack9 bool `json:"team_a_down_3_plus_back_9"`
	TeamAUp3PlusBack9   bool `json:"team_a_up_3_plus_back_9"`
}

// MatchResult is the final outcome. Winner stays empty while the match is
// open.
type MatchResult struct {
	Winner    sharedtypes.Winner `json:"winner"`
	HolesWonA int                `json:"holes_won_a"`
	HolesWonB int                `json:"holes_won_b"`
	Scoreline string             `json:"scoreline"`
}

// Summary is the full output of one summarizer run. Status and Result are
// persisted; HoleResults and WinningHole feed the fact builder.
type Summary struct {
	Status      MatchStatus
	Result      MatchResult
	HoleResults [sharedtypes.HolesPerRound]*sharedtypes.HoleResult
	// WinningHole is the 1-based hole at which the margin first exceeded
	// the holes remaining; nil when the match went the distance or is
	// still open.
	WinningHole *int
}

// ResolveHoles runs the hole resolver over every entered hole.
func ResolveHoles(
	format sharedtypes.Format,
	holes [sharedtypes.HolesPerRound]HoleInput,
	teamA, teamB []PlayerSide,
) [sharedtypes.HolesPerRound]*sharedtypes.HoleResult {
	sideA := NormalizeSide(teamA, format)
	sideB := NormalizeSide(teamB, format)

	var results [sharedtypes.HolesPerRound]*sharedtypes.HoleResult
	for i := range holes {
		results[i] = DecideHole(format, i+1, holes[i], sideA, sideB)
	}
	return results
}

// Summarize folds the hole results into match status and final result,
// strictly in hole-number order. It is a pure function of its inputs:
// re-running it on an unchanged hole set yields an identical Summary.
//
// Once the cumulative margin exceeds the holes remaining the match is
// mathematically over; later entries are still recorded as raw data for
// post-match stats but no longer move the status.
func Summarize(
	format sharedtypes.Format,
	holes [sharedtypes.HolesPerRound]HoleInput,
	teamA, teamB []PlayerSide,
) Summary {
	results := ResolveHoles(format, holes, teamA, teamB)

	var (
		wonA, wonB  int
		thru        int
		closed      bool
		winningHole *int
		down3, up3  bool
	)

	for i, r := range results {
		if closed || r == nil {
			continue
		}
		holeNumber := i + 1

		switch *r {
		case sharedtypes.HoleWonByTeamA:
			wonA++
		case sharedtypes.HoleWonByTeamB:
			wonB++
		}
		thru = holeNumber

		margin := abs(wonA - wonB)
		if margin > sharedtypes.HolesPerRound-holeNumber {
			closed = true
			h := holeNumber
			winningHole = &h
			continue
		}

		// Standing going into a back-nine hole, match still open.
		if holeNumber >= 9 && holeNumber <= 17 {
			if wonA-wonB <= -3 {
				down3 = true
			}
			if wonA-wonB >= 3 {
				up3 = true
			}
		}
	}

	margin := abs(wonA - wonB)
	if thru == sharedtypes.HolesPerRound {
		closed = true
	}

	var leader *sharedtypes.TeamSide
	switch {
	case wonA > wonB:
		side := sharedtypes.TeamA
		leader = &side
	case wonB > wonA:
		side := sharedtypes.TeamB
		leader = &side
	}

	status := MatchStatus{
		Leader:              leader,
		Margin:              margin,
		Thru:                thru,
		Closed:              closed,
		Dormie:              !closed && leader != nil && margin == sharedtypes.HolesPerRound-thru,
		TeamADown3PlusBack9: down3,
		TeamAUp3PlusBack9:   up3,
	}

	result := MatchResult{HolesWonA: wonA, HolesWonB: wonB}
	if closed {
		switch {
		case wonA == wonB:
			result.Winner = sharedtypes.WinnerAllSquare
		case wonA > wonB:
			result.Winner = sharedtypes.WinnerTeamA
		default:
			result.Winner = sharedtypes.WinnerTeamB
		}
		result.Scoreline = scoreline(margin, thru)
	}

	return Summary{
		Status:      status,
		Result:      result,
		HoleResults: results,
		WinningHole: winningHole,
	}
}

// scoreline renders the traditional match-play result: "3&2" for an early
// close, "2 up" at the last, "AS" for a halved match.
func scoreline(margin, thru int) string {
	if margin == 0 {
		return "AS"
	}
	remaining := sharedtypes.HolesPerRound - thru
	if remaining > 0 {
		return fmt.Sprintf("%d&%d", margin, remaining)
	}
	return fmt.Sprintf("%d up", margin)
}

// MarginAfterHole returns teamA's signed hole lead after the given 1-based
// hole number, counting only decided holes.
func MarginAfterHole(results [sharedtypes.HolesPerRound]*sharedtypes.HoleResult, holeNumber int) int {
	margin := 0
	for i := 0; i < holeNumber && i < sharedtypes.HolesPerRound; i++ {
		if results[i] == nil {
			continue
		}
		switch *results[i] {
		case sharedtypes.HoleWonByTeamA:
			margin++
		case sharedtypes.HoleWonByTeamB:
			margin--
		}
	}
	return margin
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
