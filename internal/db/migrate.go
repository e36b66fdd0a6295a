package db

import (
	"database/sql"
	"embed"
	"fmt"
)

//go:embed schema/*.sql
var schemas embed.FS

// Migrate applies the schema for driver. Every statement is idempotent.
func Migrate(db *sql.DB, driver string) error {
	b, err := schemas.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return fmt.Errorf("db: no schema for driver %q: %w", driver, err)
	}
	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
