package matchdomain

import (
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// PlayerSide is one player's seat on a side: identity plus the per-hole
// stroke allowance the allocator computed for them. Entries are strictly
// 0 or 1.
type PlayerSide struct {
	PlayerID        sharedtypes.PlayerID           `json:"player_id"`
	StrokesReceived [sharedtypes.HolesPerRound]int `json:"strokes_received"`
}

// NormalizeSide pads or truncates a side's lineup to the player count the
// format requires. Missing seats become empty placeholder players with zero
// strokes, so downstream logic never indexes out of range.
func NormalizeSide(players []PlayerSide, format sharedtypes.Format) []PlayerSide {
	want := format.PlayersPerSide()
	out := make([]PlayerSide, want)
	for i := 0; i < want && i < len(players); i++ {
		out[i] = players[i]
	}
	return out
}

// strokeAt returns the stroke allowance for the player seat on a 1-based
// hole number; out-of-range seats get zero.
func strokeAt(side []PlayerSide, seat, holeNumber int) int {
	if seat < 0 || seat >= len(side) {
		return 0
	}
	if holeNumber < 1 || holeNumber > sharedtypes.HolesPerRound {
		return 0
	}
	return side[seat].StrokesReceived[holeNumber-1]
}
