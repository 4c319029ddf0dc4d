package matchdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// Match is the bun model for one match row. Teams, holes, status and result
// are stored as JSONB; the domain package owns their shapes.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID           uuid.UUID       `bun:"id,pk,type:uuid"`
	RoundID      uuid.UUID       `bun:"round_id,notnull,type:uuid"`
	TournamentID uuid.UUID       `bun:"tournament_id,notnull,type:uuid"`
	Format       string          `bun:"format,notnull"`
	TeamA        json.RawMessage `bun:"team_a,type:jsonb"`
	TeamB        json.RawMessage `bun:"team_b,type:jsonb"`
	Holes        json.RawMessage `bun:"holes,type:jsonb"`
	Status       json.RawMessage `bun:"status,type:jsonb"`
	Result       json.RawMessage `bun:"result,type:jsonb"`

	// LastInputsHash is the fingerprint of the inputs behind the stored
	// status/result; the recompute short-circuit compares against it.
	LastInputsHash string `bun:"last_inputs_hash"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// toDomain rehydrates the domain aggregate. Malformed JSONB degrades to
// empty holes/teams, consistent with the domain's lenient decoding.
func (m *Match) toDomain() *matchdomain.Match {
	format := sharedtypes.Format(m.Format)

	out := &matchdomain.Match{
		ID:           sharedtypes.MatchID(m.ID),
		RoundID:      sharedtypes.RoundID(m.RoundID),
		TournamentID: sharedtypes.TournamentID(m.TournamentID),
		Format:       format,
		Holes:        matchdomain.DecodeHoles(format, m.Holes),
	}
	_ = json.Unmarshal(m.TeamA, &out.TeamA)
	_ = json.Unmarshal(m.TeamB, &out.TeamB)
	_ = json.Unmarshal(m.Status, &out.Status)
	_ = json.Unmarshal(m.Result, &out.Result)
	return out
}

func fromDomain(match *matchdomain.Match, lastInputsHash string) (*Match, error) {
	holes, err := matchdomain.EncodeHoles(match.Holes)
	if err != nil {
		return nil, err
	}
	teamA, err := json.Marshal(match.TeamA)
	if err != nil {
		return nil, err
	}
	teamB, err := json.Marshal(match.TeamB)
	if err != nil {
		return nil, err
	}
	status, err := json.Marshal(match.Status)
	if err != nil {
		return nil, err
	}
	result, err := json.Marshal(match.Result)
	if err != nil {
		return nil, err
	}

	return &Match{
		ID:             uuid.UUID(match.ID),
		RoundID:        uuid.UUID(match.RoundID),
		TournamentID:   uuid.UUID(match.TournamentID),
		Format:         string(match.Format),
		TeamA:          teamA,
		TeamB:          teamB,
		Holes:          holes,
		Status:         status,
		Result:         result,
		LastInputsHash: lastInputsHash,
	}, nil
}
