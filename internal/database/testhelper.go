package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// NewInMemory opens a private in-memory database. Migrations are not applied;
// callers run NewMigrator(db).MigrateUp when they need the schema.
func NewInMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// A second connection would see a different, empty database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &DB{DB: sqlDB, path: ":memory:"}, nil
}
