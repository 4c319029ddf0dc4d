package statdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	statdomain "github.com/copperhead-cup/cup-bot/app/modules/stats/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// StatDBImpl is the bun-backed Repository implementation.
type StatDBImpl struct {
	DB *bun.DB
}

func NewRepository(db *bun.DB) *StatDBImpl {
	return &StatDBImpl{DB: db}
}

func (r *StatDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *StatDBImpl) Upsert(ctx context.Context, db bun.IDB, stats statdomain.PlayerStats) error {
	model, err := fromDomain(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats for player %s: %w", stats.PlayerID, err)
	}
	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	_, err = r.conn(db).NewInsert().
		Model(model).
		On("CONFLICT (player_id, scope_kind, scope_id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert stats for player %s: %w", stats.PlayerID, err)
	}
	return nil
}

func (r *StatDBImpl) Delete(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, scope statdomain.Scope) error {
	_, err := r.conn(db).NewDelete().
		Model((*PlayerStats)(nil)).
		Where("player_id = ?", string(playerID)).
		Where("scope_kind = ?", string(scope.Kind)).
		Where("scope_id = ?", scope.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete stats for player %s: %w", playerID, err)
	}
	return nil
}

func (r *StatDBImpl) Get(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, scope statdomain.Scope) (*statdomain.PlayerStats, error) {
	var model PlayerStats
	err := r.conn(db).NewSelect().
		Model(&model).
		Where("player_id = ?", string(playerID)).
		Where("scope_kind = ?", string(scope.Kind)).
		Where("scope_id = ?", scope.ID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch stats for player %s: %w", playerID, err)
	}

	stats, err := model.toDomain()
	if err != nil {
		return nil, fmt.Errorf("failed to decode stats for player %s: %w", playerID, err)
	}
	return &stats, nil
}

func (r *StatDBImpl) ListForScope(ctx context.Context, db bun.IDB, scope statdomain.Scope) ([]statdomain.PlayerStats, error) {
	var models []PlayerStats
	err := r.conn(db).NewSelect().
		Model(&models).
		Where("scope_kind = ?", string(scope.Kind)).
		Where("scope_id = ?", scope.ID).
		Order("player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats for scope %s/%s: %w", scope.Kind, scope.ID, err)
	}

	out := make([]statdomain.PlayerStats, len(models))
	for i := range models {
		stats, err := models[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode stats for player %s: %w", models[i].PlayerID, err)
		}
		out[i] = stats
	}
	return out, nil
}
