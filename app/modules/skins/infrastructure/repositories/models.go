package skinsdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	skinsdomain "github.com/copperhead-cup/cup-bot/app/modules/skins/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// RoundSkins is the bun model for one round's skins state, replaced
// wholesale on every recompute.
type RoundSkins struct {
	bun.BaseModel `bun:"table:round_skins,alias:sk"`

	RoundID uuid.UUID       `bun:"round_id,pk,type:uuid"`
	Payload json.RawMessage `bun:"payload,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (m *RoundSkins) toDomain() (skinsdomain.Result, error) {
	var result skinsdomain.Result
	if err := json.Unmarshal(m.Payload, &result); err != nil {
		return skinsdomain.Result{}, err
	}
	return result, nil
}

func fromDomain(roundID sharedtypes.RoundID, result skinsdomain.Result) (*RoundSkins, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &RoundSkins{
		RoundID: uuid.UUID(roundID),
		Payload: payload,
	}, nil
}
