package factdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	factdomain "github.com/copperhead-cup/cup-bot/app/modules/facts/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// FactDBImpl is the bun-backed Repository implementation.
type FactDBImpl struct {
	DB *bun.DB
}

func NewRepository(db *bun.DB) *FactDBImpl {
	return &FactDBImpl{DB: db}
}

func (r *FactDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *FactDBImpl) ReplaceForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, facts []factdomain.PlayerMatchFact) error {
	conn := r.conn(db)

	if _, err := conn.NewDelete().
		Model((*PlayerMatchFact)(nil)).
		Where("match_id = ?", uuid.UUID(matchID)).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear facts for match %s: %w", matchID, err)
	}

	if len(facts) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*PlayerMatchFact, len(facts))
	for i, fact := range facts {
		model, err := fromDomain(fact)
		if err != nil {
			return fmt.Errorf("failed to encode fact for player %s: %w", fact.PlayerID, err)
		}
		model.CreatedAt = now
		model.UpdatedAt = now
		models[i] = model
	}

	if _, err := conn.NewInsert().Model(&models).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert facts for match %s: %w", matchID, err)
	}
	return nil
}

func (r *FactDBImpl) DeleteForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]sharedtypes.PlayerID, error) {
	conn := r.conn(db)

	var playerIDs []string
	err := conn.NewSelect().
		Model((*PlayerMatchFact)(nil)).
		Column("player_id").
		Where("match_id = ?", uuid.UUID(matchID)).
		Scan(ctx, &playerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list fact players for match %s: %w", matchID, err)
	}
	if len(playerIDs) == 0 {
		return nil, nil
	}

	if _, err := conn.NewDelete().
		Model((*PlayerMatchFact)(nil)).
		Where("match_id = ?", uuid.UUID(matchID)).
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete facts for match %s: %w", matchID, err)
	}

	out := make([]sharedtypes.PlayerID, len(playerIDs))
	for i, id := range playerIDs {
		out[i] = sharedtypes.PlayerID(id)
	}
	return out, nil
}

func (r *FactDBImpl) GetForMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) ([]factdomain.PlayerMatchFact, error) {
	var models []PlayerMatchFact
	err := r.conn(db).NewSelect().
		Model(&models).
		Where("match_id = ?", uuid.UUID(matchID)).
		Order("player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facts for match %s: %w", matchID, err)
	}
	return decodeAll(models)
}

func (r *FactDBImpl) GetForPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, tournamentID *sharedtypes.TournamentID, roundID *sharedtypes.RoundID) ([]factdomain.PlayerMatchFact, error) {
	var models []PlayerMatchFact
	q := r.conn(db).NewSelect().
		Model(&models).
		Where("player_id = ?", string(playerID))
	if tournamentID != nil {
		q = q.Where("tournament_id = ?", uuid.UUID(*tournamentID))
	}
	if roundID != nil {
		q = q.Where("round_id = ?", uuid.UUID(*roundID))
	}

	if err := q.Order("created_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch facts for player %s: %w", playerID, err)
	}
	return decodeAll(models)
}

func decodeAll(models []PlayerMatchFact) ([]factdomain.PlayerMatchFact, error) {
	facts := make([]factdomain.PlayerMatchFact, len(models))
	for i := range models {
		fact, err := models[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode fact for player %s: %w", models[i].PlayerID, err)
		}
		facts[i] = fact
	}
	return facts, nil
}
