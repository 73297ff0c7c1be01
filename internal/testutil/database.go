// Package testutil provides utilities for testing.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database"
)

// TestDB is a migrated in-memory database that closes itself at test end.
type TestDB struct {
	*database.DB
}

// NewTestDB opens an in-memory database and applies every embedded migration.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	migrator, err := database.NewMigrator(db)
	if err != nil {
		t.Fatalf("failed to create migrator: %v", err)
	}
	if _, err := migrator.MigrateUp(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{DB: db}
}

// AssertRowCount fails the test unless table holds exactly expected rows.
func (tdb *TestDB) AssertRowCount(t *testing.T, table string, expected int) {
	t.Helper()

	var count int
	if err := tdb.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	if count != expected {
		t.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
}

// ExecSQL runs setup SQL and fails the test on error.
func (tdb *TestDB) ExecSQL(t *testing.T, query string, args ...any) {
	t.Helper()

	if _, err := tdb.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v\nSQL: %s", err, query)
	}
}

// Names returns the sorted item column of a membership or inventory table.
func (tdb *TestDB) Names(t *testing.T, table string) []string {
	t.Helper()

	rows, err := tdb.Query(fmt.Sprintf("SELECT item FROM %s", table))
	if err != nil {
		t.Fatalf("failed to query %s: %v", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			t.Fatalf("failed to scan %s: %v", table, err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to read %s: %v", table, err)
	}
	sort.Strings(names)
	return names
}

// Quantity returns the stored quantity of item, or -1 when it has no row.
func (tdb *TestDB) Quantity(t *testing.T, item string) int {
	t.Helper()

	var q int
	err := tdb.QueryRow("SELECT quantity FROM inventory WHERE item = ?", item).Scan(&q)
	if err != nil {
		return -1
	}
	return q
}
