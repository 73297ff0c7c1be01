package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
)

// InventoryRepository reads and writes the inventory table.
type InventoryRepository struct {
	db Querier
}

// NewInventoryRepository creates a new inventory repository.
func NewInventoryRepository(db Querier) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Upsert inserts item or replaces the stored category and quantity.
func (r *InventoryRepository) Upsert(ctx context.Context, item models.InventoryItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory (item, category, quantity) VALUES (?, ?, ?)
		 ON CONFLICT(item) DO UPDATE SET category = excluded.category, quantity = excluded.quantity`,
		item.Name, string(item.Category), item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upserting inventory item %q: %w", item.Name, err)
	}
	return nil
}

// Get returns the item with the given name or ErrNotFound.
func (r *InventoryRepository) Get(ctx context.Context, name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	var category string
	err := r.db.QueryRowContext(ctx,
		"SELECT item, category, quantity FROM inventory WHERE item = ?", name,
	).Scan(&item.Name, &category, &item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inventory item %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading inventory item %q: %w", name, err)
	}
	item.Category = models.Category(category)
	return &item, nil
}

// List returns every item in insertion order.
func (r *InventoryRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT item, category, quantity FROM inventory ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		var category string
		if err := rows.Scan(&item.Name, &category, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scanning inventory: %w", err)
		}
		item.Category = models.Category(category)
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetQuantity overwrites the quantity of an existing item.
func (r *InventoryRepository) SetQuantity(ctx context.Context, name string, quantity int) error {
	res, err := r.db.ExecContext(ctx, "UPDATE inventory SET quantity = ? WHERE item = ?", quantity, name)
	if err != nil {
		return fmt.Errorf("updating quantity of %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("inventory item %q: %w", name, ErrNotFound)
	}
	return nil
}

// Receive adds amount to the named item, creating it under category
// Others when it does not exist yet. It returns the resulting quantity.
func (r *InventoryRepository) Receive(ctx context.Context, name string, amount int) (int, error) {
	var quantity int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO inventory (item, category, quantity) VALUES (?, ?, ?)
		 ON CONFLICT(item) DO UPDATE SET quantity = quantity + excluded.quantity
		 RETURNING quantity`,
		name, string(models.CategoryOthers), amount,
	).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("receiving %d of %q: %w", amount, name, err)
	}
	return quantity, nil
}

// Delete removes the named item. Deleting a missing item is not an error.
func (r *InventoryRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM inventory WHERE item = ?", name); err != nil {
		return fmt.Errorf("deleting inventory item %q: %w", name, err)
	}
	return nil
}

// Names returns every item name in insertion order.
func (r *InventoryRepository) Names(ctx context.Context) ([]string, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names, nil
}
