package statmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	statdb "github.com/copperhead-cup/cup-bot/app/modules/stats/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*statdb.PlayerStats)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create player_stats table: %w", err)
		}

		// Standings read whole scopes at once.
		_, err = db.NewCreateIndex().
			Model((*statdb.PlayerStats)(nil)).
			Index("idx_stats_scope").
			Column("scope_kind", "scope_id").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create stats scope index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*statdb.PlayerStats)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop player_stats table: %w", err)
		}
		return nil
	})
}
