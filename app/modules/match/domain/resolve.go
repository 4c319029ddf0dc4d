package matchdomain

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// DecideHole returns the winner of one hole under the format's rules, or nil
// when any required score is missing. holeNumber is 1-based.
//
// The stroke asymmetry between shamble and best ball is deliberate: shamble
// compares raw gross even when strokes are stored, best ball nets each
// player individually before taking the better ball.
func DecideHole(
	format sharedtypes.Format,
	holeNumber int,
	input HoleInput,
	sideA, sideB []PlayerSide,
) *sharedtypes.HoleResult {
	if input == nil {
		return nil
	}

	switch in := input.(type) {
	case SinglesHole:
		if format != sharedtypes.FormatSingles {
			return nil
		}
		if in.AGross == nil || in.BGross == nil {
			return nil
		}
		netA := *in.AGross - strokeAt(sideA, 0, holeNumber)
		netB := *in.BGross - strokeAt(sideB, 0, holeNumber)
		return compare(netA, netB)

	case ScrambleHole:
		if format != sharedtypes.FormatTwoManScramble {
			return nil
		}
		if in.AGross == nil || in.BGross == nil {
			return nil
		}
		return compare(*in.AGross, *in.BGross)

	case PairHole:
		switch format {
		case sharedtypes.FormatTwoManShamble:
			bestA, okA := bestGross(in.AGross)
			bestB, okB := bestGross(in.BGross)
			if !okA || !okB {
				return nil
			}
			return compare(bestA, bestB)

		case sharedtypes.FormatTwoManBestBall:
			bestA, okA := bestNet(in.AGross, sideA, holeNumber)
			bestB, okB := bestNet(in.BGross, sideB, holeNumber)
			if !okA || !okB {
				return nil
			}
			return compare(bestA, bestB)
		}
		return nil
	}
	return nil
}

// bestGross needs both of a side's scores; partial entry leaves the hole
// undecided.
func bestGross(scores [2]*int) (int, bool) {
	if scores[0] == nil || scores[1] == nil {
		return 0, false
	}
	best := *scores[0]
	if *scores[1] < best {
		best = *scores[1]
	}
	return best, true
}

func bestNet(scores [2]*int, side []PlayerSide, holeNumber int) (int, bool) {
	if scores[0] == nil || scores[1] == nil {
		return 0, false
	}
	net0 := *scores[0] - strokeAt(side, 0, holeNumber)
	net1 := *scores[1] - strokeAt(side, 1, holeNumber)
	if net1 < net0 {
		return net1, true
	}
	return net0, true
}

func compare(a, b int) *sharedtypes.HoleResult {
	var r sharedtypes.HoleResult
	switch {
	case a < b:
		r = sharedtypes.HoleWonByTeamA
	case b < a:
		r = sharedtypes.HoleWonByTeamB
	default:
		r = sharedtypes.HoleHalved
	}
	return &r
}
