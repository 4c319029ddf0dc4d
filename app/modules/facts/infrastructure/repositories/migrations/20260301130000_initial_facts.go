package factmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	factdb "github.com/copperhead-cup/cup-bot/app/modules/facts/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*factdb.PlayerMatchFact)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create player_match_facts table: %w", err)
		}

		// Scope queries hit player + tournament and player + round.
		_, err = db.NewCreateIndex().
			Model((*factdb.PlayerMatchFact)(nil)).
			Index("idx_facts_player_tournament").
			Column("player_id", "tournament_id").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create facts player/tournament index: %w", err)
		}

		_, err = db.NewCreateIndex().
			Model((*factdb.PlayerMatchFact)(nil)).
			Index("idx_facts_player_round").
			Column("player_id", "round_id").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create facts player/round index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*factdb.PlayerMatchFact)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop player_match_facts table: %w", err)
		}
		return nil
	})
}
