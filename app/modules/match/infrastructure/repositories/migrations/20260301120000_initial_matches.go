package matchmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*matchdb.Match)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create matches table: %w", err)
		}

		_, err = db.NewCreateIndex().
			Model((*matchdb.Match)(nil)).
			Index("idx_matches_round_id").
			Column("round_id").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create matches round index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*matchdb.Match)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop matches table: %w", err)
		}
		return nil
	})
}
