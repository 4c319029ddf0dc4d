package skinsmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	skinsdb "github.com/copperhead-cup/cup-bot/app/modules/skins/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*skinsdb.RoundSkins)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create round_skins table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*skinsdb.RoundSkins)(nil)).IfExists().Cascade().Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop round_skins table: %w", err)
		}
		return nil
	})
}
