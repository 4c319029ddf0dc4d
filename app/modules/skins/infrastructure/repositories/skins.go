package skinsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	skinsdomain "github.com/copperhead-cup/cup-bot/app/modules/skins/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// ErrNotFound means no skins state exists for the round.
var ErrNotFound = errors.New("round skins not found")

// Repository is the contract for skins persistence.
type Repository interface {
	UpsertRoundSkins(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, result skinsdomain.Result) error
	GetRoundSkins(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (*skinsdomain.Result, error)
}

// SkinsDBImpl is the bun-backed Repository implementation.
type SkinsDBImpl struct {
	DB *bun.DB
}

func NewRepository(db *bun.DB) *SkinsDBImpl {
	return &SkinsDBImpl{DB: db}
}

func (r *SkinsDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *SkinsDBImpl) UpsertRoundSkins(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, result skinsdomain.Result) error {
	model, err := fromDomain(roundID, result)
	if err != nil {
		return fmt.Errorf("failed to encode skins for round %s: %w", roundID, err)
	}
	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	_, err = r.conn(db).NewInsert().
		Model(model).
		On("CONFLICT (round_id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert skins for round %s: %w", roundID, err)
	}
	return nil
}

func (r *SkinsDBImpl) GetRoundSkins(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (*skinsdomain.Result, error) {
	var model RoundSkins
	err := r.conn(db).NewSelect().
		Model(&model).
		Where("round_id = ?", uuid.UUID(roundID)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch skins for round %s: %w", roundID, err)
	}

	result, err := model.toDomain()
	if err != nil {
		return nil, fmt.Errorf("failed to decode skins for round %s: %w", roundID, err)
	}
	return &result, nil
}
