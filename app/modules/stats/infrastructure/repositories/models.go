package statdb

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
)

// PlayerStats is the bun model for one player's aggregate in one scope.
type PlayerStats struct {
	bun.BaseModel `bun:"table:player_stats,alias:s"`

	PlayerID  string          `bun:"player_id,pk"`
	ScopeKind string          `bun:"scope_kind,pk"`
	ScopeID   string          `bun:"scope_id,pk"`
	Payload   json.RawMessage `bun:"payload,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (m *PlayerStats) toDomain() (statdomain.PlayerStats, error) {
	var stats statdomain.PlayerStats
	if err := json.Unmarshal(m.Payload, &stats); err != nil {
		return statdomain.PlayerStats{}, err
	}
	return stats, nil
}

func fromDomain(stats statdomain.PlayerStats) (*PlayerStats, error) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}
	return &PlayerStats{
		PlayerID:  string(stats.PlayerID),
		ScopeKind: string(stats.Scope.Kind),
		ScopeID:   stats.Scope.ID,
		Payload:   payload,
	}, nil
}
