package matchdomain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// Match is the aggregate the scoring engine operates on. Status and Result
// are derived fields, always overwritten by the summarizer.
type Match struct {
	ID           sharedtypes.MatchID
	RoundID      sharedtypes.RoundID
	TournamentID sharedtypes.TournamentID
	Format       sharedtypes.Format
	TeamA        []PlayerSide
	TeamB        []PlayerSide
	Holes        [sharedtypes.HolesPerRound]HoleInput
	Status       MatchStatus
	Result       MatchResult
}

// Summarize recomputes the match state from the current hole inputs.
func (m *Match) Summarize() Summary {
	return Summarize(m.Format, m.Holes, m.TeamA, m.TeamB)
}

// InputsHash fingerprints everything the summarizer reads: format, lineups,
// stroke allowances and hole entries. The recompute entry point skips work
// (and event emission) when the hash matches the last computed one, which
// makes redundant triggers cheap no-ops.
func (m *Match) InputsHash() string {
	holes, _ := EncodeHoles(m.Holes)
	sides, _ := json.Marshal(struct {
		Format sharedtypes.Format `json:"format"`
		TeamA  []PlayerSide       `json:"team_a"`
		TeamB  []PlayerSide       `json:"team_b"`
	}{m.Format, m.TeamA, m.TeamB})

	sum := sha256.New()
	sum.Write(sides)
	sum.Write(holes)
	return hex.EncodeToString(sum.Sum(nil))
}
