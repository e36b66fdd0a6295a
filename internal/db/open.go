package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Open opens the database for the given driver and checks the connection.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// one connection: pragmas stick and writers never contend
		db.SetMaxOpenConns(1)
		_, _ = db.Exec(`PRAGMA journal_mode=WAL;`)
		_, _ = db.Exec(`PRAGMA busy_timeout=3000;`)
		_, _ = db.Exec(`PRAGMA foreign_keys=ON;`)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: ping %s: %w", driver, err)
	}
	return db, nil
}
