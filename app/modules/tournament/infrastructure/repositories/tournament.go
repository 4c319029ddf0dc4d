package tournamentdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// TournamentDBImpl is the bun-backed Repository implementation.
type TournamentDBImpl struct {
	DB *bun.DB
}

func NewRepository(db *bun.DB) *TournamentDBImpl {
	return &TournamentDBImpl{DB: db}
}

func (r *TournamentDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *TournamentDBImpl) CreateTournament(ctx context.Context, db bun.IDB, t *tournamentdomain.Tournament) error {
	model, err := tournamentFromDomain(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
		t.ID = sharedtypes.TournamentID(model.ID)
	}
	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	if _, err := r.conn(db).NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert tournament %s: %w", t.ID, err)
	}
	return nil
}

func (r *TournamentDBImpl) GetTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdomain.Tournament, error) {
	var model Tournament
	err := r.conn(db).NewSelect().
		Model(&model).
		Where("id = ?", uuid.UUID(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch tournament %s: %w", id, err)
	}
	return model.toDomain(), nil
}

func (r *TournamentDBImpl) CreateRound(ctx context.Context, db bun.IDB, round *tournamentdomain.Round) error {
	model, err := roundFromDomain(round)
	if err != nil {
		return fmt.Errorf("failed to encode round %s: %w", round.ID, err)
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
		round.ID = sharedtypes.RoundID(model.ID)
	}
	now := time.Now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	if _, err := r.conn(db).NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert round %s: %w", round.ID, err)
	}
	return nil
}

func (r *TournamentDBImpl) GetRound(ctx context.Context, db bun.IDB, id sharedtypes.RoundID) (*tournamentdomain.Round, error) {
	var model Round
	err := r.conn(db).NewSelect().
		Model(&model).
		Where("id = ?", uuid.UUID(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch round %s: %w", id, err)
	}
	return model.toDomain(), nil
}

func (r *TournamentDBImpl) GetRoundsForTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) ([]*tournamentdomain.Round, error) {
	var models []Round
	err := r.conn(db).NewSelect().
		Model(&models).
		Where("tournament_id = ?", uuid.UUID(id)).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rounds for tournament %s: %w", id, err)
	}

	rounds := make([]*tournamentdomain.Round, len(models))
	for i := range models {
		rounds[i] = models[i].toDomain()
	}
	return rounds, nil
}

// AppendRoundID adds a round to the tournament's list under a row lock. The
// lock only outlives this call when db is a transaction, so callers must pass
// one; otherwise a concurrent append can still drop an entry. Returns false
// when the round was already listed (a concurrent writer got there first).
func (r *TournamentDBImpl) AppendRoundID(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roundID sharedtypes.RoundID) (bool, error) {
	conn := r.conn(db)

	var model Tournament
	err := conn.NewSelect().
		Model(&model).
		Column("id", "round_ids").
		Where("id = ?", uuid.UUID(tournamentID)).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to lock tournament %s: %w", tournamentID, err)
	}

	var ids []sharedtypes.RoundID
	if len(model.RoundIDs) > 0 {
		if err := json.Unmarshal(model.RoundIDs, &ids); err != nil {
			return false, fmt.Errorf("failed to decode round list for tournament %s: %w", tournamentID, err)
		}
	}
	for _, id := range ids {
		if id == roundID {
			return false, nil
		}
	}
	ids = append(ids, roundID)

	encoded, err := json.Marshal(ids)
	if err != nil {
		return false, fmt.Errorf("failed to encode round list for tournament %s: %w", tournamentID, err)
	}

	res, err := conn.NewUpdate().
		Model((*Tournament)(nil)).
		Set("round_ids = ?", encoded).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", uuid.UUID(tournamentID)).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to append round to tournament %s: %w", tournamentID, err)
	}
	return true, requireRows(res)
}

// AppendMatchID adds a match to the round's list under a row lock, same
// contract as AppendRoundID.
func (r *TournamentDBImpl) AppendMatchID(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, matchID sharedtypes.MatchID) (bool, error) {
	conn := r.conn(db)

	var model Round
	err := conn.NewSelect().
		Model(&model).
		Column("id", "match_ids").
		Where("id = ?", uuid.UUID(roundID)).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to lock round %s: %w", roundID, err)
	}

	var ids []sharedtypes.MatchID
	if len(model.MatchIDs) > 0 {
		if err := json.Unmarshal(model.MatchIDs, &ids); err != nil {
			return false, fmt.Errorf("failed to decode match list for round %s: %w", roundID, err)
		}
	}
	for _, id := range ids {
		if id == matchID {
			return false, nil
		}
	}
	ids = append(ids, matchID)

	encoded, err := json.Marshal(ids)
	if err != nil {
		return false, fmt.Errorf("failed to encode match list for round %s: %w", roundID, err)
	}

	res, err := conn.NewUpdate().
		Model((*Round)(nil)).
		Set("match_ids = ?", encoded).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", uuid.UUID(roundID)).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to append match to round %s: %w", roundID, err)
	}
	return true, requireRows(res)
}

func (r *TournamentDBImpl) UpdateRoster(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, roster []tournamentdomain.RosterEntry) error {
	encoded, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("failed to encode roster for tournament %s: %w", tournamentID, err)
	}

	res, err := r.conn(db).NewUpdate().
		Model((*Tournament)(nil)).
		Set("roster = ?", encoded).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", uuid.UUID(tournamentID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update roster for tournament %s: %w", tournamentID, err)
	}
	return requireRows(res)
}

func requireRows(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return nil
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
