package db

import "testing"

func TestOpenAndMigrateSQLite(t *testing.T) {
	d, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if err := Migrate(d, DriverSQLite); err != nil {
		t.Fatal(err)
	}
	// running twice must be harmless
	if err := Migrate(d, DriverSQLite); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var fk int
	if err := d.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	for _, table := range []string{"users", "sessions", "posts", "tags", "assigned_tags", "comments", "reports", "votes"} {
		var n int
		if err := d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestMigrateUnknownDriver(t *testing.T) {
	d, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if err := Migrate(d, "oracle"); err == nil {
		t.Fatal("expected error for missing schema")
	}
}
