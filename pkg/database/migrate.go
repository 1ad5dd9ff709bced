package database

import (
	"database/sql"
	"fmt"
	"os"
)

func Migrate(db *sql.DB) error {
	return MigrateFrom(db, "docs/schema.sql")
}

// MigrateFrom applies the schema at the given path. Tools and tests running
// outside the repo root pass their own path.
func MigrateFrom(db *sql.DB, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
