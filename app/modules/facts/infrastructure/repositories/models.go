package factdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
)

// PlayerMatchFact is the bun model for one player's derived record in one
// closed match. The payload column carries the full fact document; the
// scalar columns exist for scope queries.
type PlayerMatchFact struct {
	bun.BaseModel `bun:"table:player_match_facts,alias:f"`

	MatchID      uuid.UUID       `bun:"match_id,pk,type:uuid"`
	PlayerID     string          `bun:"player_id,pk"`
	RoundID      uuid.UUID       `bun:"round_id,notnull,type:uuid"`
	TournamentID uuid.UUID       `bun:"tournament_id,notnull,type:uuid"`
	Payload      json.RawMessage `bun:"payload,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (m *PlayerMatchFact) toDomain() (factdomain.PlayerMatchFact, error) {
	var fact factdomain.PlayerMatchFact
	if err := json.Unmarshal(m.Payload, &fact); err != nil {
		return factdomain.PlayerMatchFact{}, err
	}
	return fact, nil
}

func fromDomain(fact factdomain.PlayerMatchFact) (*PlayerMatchFact, error) {
	payload, err := json.Marshal(fact)
	if err != nil {
		return nil, err
	}
	return &PlayerMatchFact{
		MatchID:      uuid.UUID(fact.MatchID),
		PlayerID:     string(fact.PlayerID),
		RoundID:      uuid.UUID(fact.RoundID),
		TournamentID: uuid.UUID(fact.TournamentID),
		Payload:      payload,
	}, nil
}
