// Package repository holds the SQL for the four pantry tables. Every method
// is a single statement that commits on its own.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a keyed row does not exist.
var ErrNotFound = errors.New("not found")

// Querier is satisfied by *sql.DB, *sql.Tx and *database.DB.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nameSet backs the two membership tables, core_items and shopping_list.
type nameSet struct {
	db    Querier
	table string
}

func (s nameSet) add(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO "+s.table+" (item) VALUES (?)", name)
	return err
}

func (s nameSet) remove(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+s.table+" WHERE item = ?", name)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s nameSet) contains(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM "+s.table+" WHERE item = ?", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s nameSet) list(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT item FROM "+s.table+" ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s nameSet) clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+s.table)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
