package matchdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// MatchDBImpl is the bun-backed Repository implementation.
type MatchDBImpl struct {
	DB *bun.DB
}

func NewRepository(db *bun.DB) *MatchDBImpl {
	return &MatchDBImpl{DB: db}
}

func (r *MatchDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *MatchDBImpl) CreateMatch(ctx context.Context, db bun.IDB, match *matchdomain.Match) error {
	model, err := fromDomain(match, "")
	if err != nil {
		return fmt.Errorf("failed to encode match %s: %w", match.ID, err)
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
		match.ID = sharedtypes.MatchID(model.ID)
	}
	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	if _, err := r.conn(db).NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}
	return nil
}

// GetMatch returns the domain aggregate plus the stored inputs hash the
// recompute short-circuit compares against.
func (r *MatchDBImpl) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*matchdomain.Match, string, error) {
	var model Match
	err := r.conn(db).NewSelect().
		Model(&model).
		Where("id = ?", uuid.UUID(matchID)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	return model.toDomain(), model.LastInputsHash, nil
}

func (r *MatchDBImpl) GetMatchesForRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]*matchdomain.Match, error) {
	var models []Match
	err := r.conn(db).NewSelect().
		Model(&models).
		Where("round_id = ?", uuid.UUID(roundID)).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for round %s: %w", roundID, err)
	}

	matches := make([]*matchdomain.Match, len(models))
	for i := range models {
		matches[i] = models[i].toDomain()
	}
	return matches, nil
}

// UpdateHoles persists the hole entries and lineups. Derived state is not
// touched here; the recompute path owns it.
func (r *MatchDBImpl) UpdateHoles(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, match *matchdomain.Match) error {
	holes, err := matchdomain.EncodeHoles(match.Holes)
	if err != nil {
		return fmt.Errorf("failed to encode holes for match %s: %w", matchID, err)
	}
	teamA, err := json.Marshal(match.TeamA)
	if err != nil {
		return fmt.Errorf("failed to encode team A for match %s: %w", matchID, err)
	}
	teamB, err := json.Marshal(match.TeamB)
	if err != nil {
		return fmt.Errorf("failed to encode team B for match %s: %w", matchID, err)
	}

	res, err := r.conn(db).NewUpdate().
		Model((*Match)(nil)).
		Set("holes = ?", holes).
		Set("team_a = ?", teamA).
		Set("team_b = ?", teamB).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", uuid.UUID(matchID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update holes for match %s: %w", matchID, err)
	}
	return requireRows(res)
}

func (r *MatchDBImpl) UpdateDerivedState(
	ctx context.Context,
	db bun.IDB,
	matchID sharedtypes.MatchID,
	status matchdomain.MatchStatus,
	result matchdomain.MatchResult,
	inputsHash string,
) error {
	statusJSON, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode status for match %s: %w", matchID, err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result for match %s: %w", matchID, err)
	}

	res, err := r.conn(db).NewUpdate().
		Model((*Match)(nil)).
		Set("status = ?", statusJSON).
		Set("result = ?", resultJSON).
		Set("last_inputs_hash = ?", inputsHash).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", uuid.UUID(matchID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update derived state for match %s: %w", matchID, err)
	}
	return requireRows(res)
}

func (r *MatchDBImpl) DeleteMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) error {
	res, err := r.conn(db).NewDelete().
		Model((*Match)(nil)).
		Where("id = ?", uuid.UUID(matchID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	return requireRows(res)
}

func requireRows(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return nil
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
