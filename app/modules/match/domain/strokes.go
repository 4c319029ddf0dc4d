package matchdomain

import (
	"math"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

const (
	neutralSlope = 113.0
	defaultPar   = 72
)

// CourseHandicap converts a handicap index to an unrounded course handicap
// using the standard slope formula. Malformed inputs fall back to a neutral
// slope and par-72 so the allocator never fails.
func CourseHandicap(handicapIndex, slope, courseRating float64, par int) float64 {
	if slope <= 0 {
		slope = neutralSlope
	}
	if par <= 0 {
		par = defaultPar
	}
	if courseRating <= 0 {
		courseRating = float64(par)
	}
	return handicapIndex*(slope/neutralSlope) + (courseRating - float64(par))
}

// SpinDown re-bases every course handicap against the lowest in the field,
// rounding once. The lowest-handicap player receives zero strokes; nobody
// goes negative.
func SpinDown(courseHandicaps []float64) []int {
	if len(courseHandicaps) == 0 {
		return nil
	}
	low := courseHandicaps[0]
	for _, ch := range courseHandicaps[1:] {
		if ch < low {
			low = ch
		}
	}
	out := make([]int, len(courseHandicaps))
	for i, ch := range courseHandicaps {
		adjusted := int(math.Round(ch - low))
		if adjusted < 0 {
			adjusted = 0
		}
		out[i] = adjusted
	}
	return out
}

// AllocateStrokes distributes an adjusted handicap across the 18 holes by
// hole handicap rank (1 = hardest). A hole receives exactly one stroke when
// its rank is within the allowance; there are no multi-stroke holes.
func AllocateStrokes(adjusted int, holeHandicaps [sharedtypes.HolesPerRound]int) [sharedtypes.HolesPerRound]int {
	ranks := normalizeHoleHandicaps(holeHandicaps)
	var out [sharedtypes.HolesPerRound]int
	for i, rank := range ranks {
		if rank <= adjusted {
			out[i] = 1
		}
	}
	return out
}

// AllocateField spins the field down and allocates strokes for every player,
// preserving input order.
func AllocateField(courseHandicaps []float64, holeHandicaps [sharedtypes.HolesPerRound]int) [][sharedtypes.HolesPerRound]int {
	adjusted := SpinDown(courseHandicaps)
	out := make([][sharedtypes.HolesPerRound]int, len(adjusted))
	for i, adj := range adjusted {
		out[i] = AllocateStrokes(adj, holeHandicaps)
	}
	return out
}

// AllocateWithAllowance applies a percentage allowance to each raw course
// handicap (no spin-down) and distributes by hole handicap rank. The skins
// game uses this with its configured allowance.
func AllocateWithAllowance(courseHandicaps []float64, allowance float64, holeHandicaps [sharedtypes.HolesPerRound]int) [][sharedtypes.HolesPerRound]int {
	if allowance <= 0 {
		allowance = 1
	}
	out := make([][sharedtypes.HolesPerRound]int, len(courseHandicaps))
	for i, ch := range courseHandicaps {
		adjusted := int(math.Round(ch * allowance))
		if adjusted < 0 {
			adjusted = 0
		}
		out[i] = AllocateStrokes(adjusted, holeHandicaps)
	}
	return out
}

// normalizeHoleHandicaps returns a usable 1..18 ranking. A course with
// missing or zeroed hole handicaps ranks holes in play order.
func normalizeHoleHandicaps(holeHandicaps [sharedtypes.HolesPerRound]int) [sharedtypes.HolesPerRound]int {
	for _, rank := range holeHandicaps {
		if rank > 0 {
			return holeHandicaps
		}
	}
	var out [sharedtypes.HolesPerRound]int
	for i := range out {
		out[i] = i + 1
	}
	return out
}
