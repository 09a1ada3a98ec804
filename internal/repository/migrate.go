package repository

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies the embedded schema migrations for the given driver
// ("postgres" or "sqlite") and returns how many were applied.
func Migrate(db *sql.DB, driver string) (int, error) {
	dialect := driver
	if driver == "sqlite" {
		dialect = "sqlite3"
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations/" + driver,
	}

	n, err := migrate.Exec(db, dialect, source, migrate.Up)
	if err != nil {
		return 0, fmt.Errorf("failed to apply %s migrations: %w", driver, err)
	}
	return n, nil
}
