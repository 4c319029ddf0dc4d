package matchmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Migration IDs derive from the registering file's name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
