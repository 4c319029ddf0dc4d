// Package matchdomain holds the pure match-play scoring core: hole inputs,
// stroke allocation, hole resolution, and the match summarizer. Nothing in
// this package performs I/O or returns errors; malformed input degrades to
// "undecided" so live scoring survives partial data entry.
package matchdomain

import (
	"encoding/json"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// HoleInput is the raw entry for one hole. It is a sealed union; the variant
// must agree with the round's format. A nil HoleInput means the hole has not
// been entered at all.
type HoleInput interface {
	isHoleInput()
}

// SinglesHole carries one gross score per side.
type SinglesHole struct {
	AGross *int
	BGross *int
}

// ScrambleHole carries one team gross score per side plus whose drive the
// team played.
type ScrambleHole struct {
	AGross *int
	BGross *int
	ADrive *int
	BDrive *int
}

// PairHole carries two individual gross scores per side. Best ball ignores
// the drive fields; shamble records them.
type PairHole struct {
	AGross [2]*int
	BGross [2]*int
	ADrive *int
	BDrive *int
}

func (SinglesHole) isHoleInput()  {}
func (ScrambleHole) isHoleInput() {}
func (PairHole) isHoleInput()     {}

// holeRecord is the storage/wire shape of a hole entry. One neutral record
// covers all variants; the format picks which fields are read back.
type holeRecord struct {
	TeamAGross        *int   `json:"team_a_gross,omitempty"`
	TeamBGross        *int   `json:"team_b_gross,omitempty"`
	TeamAPlayersGross []*int `json:"team_a_players_gross,omitempty"`
	TeamBPlayersGross []*int `json:"team_b_players_gross,omitempty"`
	TeamADrive        *int   `json:"team_a_drive,omitempty"`
	TeamBDrive        *int   `json:"team_b_drive,omitempty"`
}

// EncodeHoles serializes the 18-hole array to JSON for storage. Unentered
// holes become null elements so hole position survives round-trips.
func EncodeHoles(holes [sharedtypes.HolesPerRound]HoleInput) ([]byte, error) {
	records := make([]*holeRecord, sharedtypes.HolesPerRound)
	for i, h := range holes {
		switch in := h.(type) {
		case SinglesHole:
			records[i] = &holeRecord{TeamAGross: in.AGross, TeamBGross: in.BGross}
		case ScrambleHole:
			records[i] = &holeRecord{
				TeamAGross: in.AGross, TeamBGross: in.BGross,
				TeamADrive: in.ADrive, TeamBDrive: in.BDrive,
			}
		case PairHole:
			records[i] = &holeRecord{
				TeamAPlayersGross: []*int{in.AGross[0], in.AGross[1]},
				TeamBPlayersGross: []*int{in.BGross[0], in.BGross[1]},
				TeamADrive:        in.ADrive,
				TeamBDrive:        in.BDrive,
			}
		}
	}
	return json.Marshal(records)
}

// DecodeHoles deserializes a stored hole array for the given format. Decoding
// is lenient: short arrays, extra entries and missing fields all degrade to
// unentered holes rather than failing the match.
func DecodeHoles(format sharedtypes.Format, data []byte) [sharedtypes.HolesPerRound]HoleInput {
	var holes [sharedtypes.HolesPerRound]HoleInput
	if len(data) == 0 {
		return holes
	}

	var records []*holeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return holes
	}

	for i := 0; i < len(records) && i < sharedtypes.HolesPerRound; i++ {
		rec := records[i]
		if rec == nil {
			continue
		}
		switch format {
		case sharedtypes.FormatSingles:
			holes[i] = SinglesHole{AGross: rec.TeamAGross, BGross: rec.TeamBGross}
		case sharedtypes.FormatTwoManScramble:
			holes[i] = ScrambleHole{
				AGross: rec.TeamAGross, BGross: rec.TeamBGross,
				ADrive: rec.TeamADrive, BDrive: rec.TeamBDrive,
			}
		case sharedtypes.FormatTwoManBestBall, sharedtypes.FormatTwoManShamble:
			holes[i] = PairHole{
				AGross: pairScores(rec.TeamAPlayersGross),
				BGross: pairScores(rec.TeamBPlayersGross),
				ADrive: rec.TeamADrive,
				BDrive: rec.TeamBDrive,
			}
		}
	}
	return holes
}

func pairScores(scores []*int) [2]*int {
	var out [2]*int
	for i := 0; i < len(scores) && i < 2; i++ {
		out[i] = scores[i]
	}
	return out
}
