package repository

import (
	"context"
	"fmt"
)

// CoreItemRepository manages the core_items set.
type CoreItemRepository struct {
	set nameSet
}

// NewCoreItemRepository creates a new core item repository.
func NewCoreItemRepository(db Querier) *CoreItemRepository {
	return &CoreItemRepository{set: nameSet{db: db, table: "core_items"}}
}

// Add flags name as core. Flagging twice is a no-op.
func (r *CoreItemRepository) Add(ctx context.Context, name string) error {
	if err := r.set.add(ctx, name); err != nil {
		return fmt.Errorf("flagging %q as core: %w", name, err)
	}
	return nil
}

// Remove clears the core flag.
func (r *CoreItemRepository) Remove(ctx context.Context, name string) error {
	if _, err := r.set.remove(ctx, name); err != nil {
		return fmt.Errorf("clearing core flag of %q: %w", name, err)
	}
	return nil
}

// Contains reports whether name is flagged core.
func (r *CoreItemRepository) Contains(ctx context.Context, name string) (bool, error) {
	ok, err := r.set.contains(ctx, name)
	if err != nil {
		return false, fmt.Errorf("checking core flag of %q: %w", name, err)
	}
	return ok, nil
}

// List returns all core names, including ones with no inventory row.
func (r *CoreItemRepository) List(ctx context.Context) ([]string, error) {
	names, err := r.set.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing core items: %w", err)
	}
	return names, nil
}

// ShoppingRepository manages the shopping_list set.
type ShoppingRepository struct {
	set nameSet
}

// NewShoppingRepository creates a new shopping list repository.
func NewShoppingRepository(db Querier) *ShoppingRepository {
	return &ShoppingRepository{set: nameSet{db: db, table: "shopping_list"}}
}

// Add puts name on the list. Adding twice keeps one entry.
func (r *ShoppingRepository) Add(ctx context.Context, name string) error {
	if err := r.set.add(ctx, name); err != nil {
		return fmt.Errorf("adding %q to shopping list: %w", name, err)
	}
	return nil
}

// Remove takes name off the list and reports whether it was there.
func (r *ShoppingRepository) Remove(ctx context.Context, name string) (bool, error) {
	ok, err := r.set.remove(ctx, name)
	if err != nil {
		return false, fmt.Errorf("removing %q from shopping list: %w", name, err)
	}
	return ok, nil
}

// Contains reports whether name is on the list.
func (r *ShoppingRepository) Contains(ctx context.Context, name string) (bool, error) {
	ok, err := r.set.contains(ctx, name)
	if err != nil {
		return false, fmt.Errorf("checking shopping list for %q: %w", name, err)
	}
	return ok, nil
}

// List returns the list in the order entries were added.
func (r *ShoppingRepository) List(ctx context.Context) ([]string, error) {
	names, err := r.set.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shopping list: %w", err)
	}
	return names, nil
}

// Clear empties the list and returns how many entries were removed.
func (r *ShoppingRepository) Clear(ctx context.Context) (int64, error) {
	n, err := r.set.clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clearing shopping list: %w", err)
	}
	return n, nil
}
