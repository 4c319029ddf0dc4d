package tournamentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	tournamentdb "github.com/copperhead-cup/cup-bot/app/modules/tournament/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*tournamentdb.Tournament)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create tournaments table: %w", err)
		}

		_, err = db.NewCreateTable().Model((*tournamentdb.Round)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create rounds table: %w", err)
		}

		_, err = db.NewCreateIndex().
			Model((*tournamentdb.Round)(nil)).
			Index("idx_rounds_tournament_id").
			Column("tournament_id").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create rounds tournament index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*tournamentdb.Round)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop rounds table: %w", err)
		}
		_, err = db.NewDropTable().Model((*tournamentdb.Tournament)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop tournaments table: %w", err)
		}
		return nil
	})
}
