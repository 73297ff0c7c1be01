// Package pantry implements the inventory side of the app: adding items,
// reconciling an edited inventory grid against the stored state, and
// moving purchased shopping-list entries into stock.
package pantry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/repository"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/validation"
)

// Service provides the pantry operations. It keeps no state between calls:
// every read goes to the store.
type Service struct {
	inventory *repository.InventoryRepository
	core      *repository.CoreItemRepository
	shopping  *repository.ShoppingRepository
	validate  *validation.Validator
}

// NewService creates a pantry service over db.
func NewService(db repository.Querier) *Service {
	return &Service{
		inventory: repository.NewInventoryRepository(db),
		core:      repository.NewCoreItemRepository(db),
		shopping:  repository.NewShoppingRepository(db),
		validate:  validation.New(),
	}
}

// Snapshot reads the inventory grid: every item with its core flag, in
// insertion order, with Remove cleared.
func (s *Service) Snapshot(ctx context.Context) ([]models.InventoryRow, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	coreNames, err := s.core.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading core items: %w", err)
	}

	core := make(map[string]bool, len(coreNames))
	for _, n := range coreNames {
		core[n] = true
	}

	rows := make([]models.InventoryRow, len(items))
	for i, item := range items {
		rows[i] = models.InventoryRow{
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			IsCore:   core[item.Name],
		}
	}
	return rows, nil
}

// CoreItems returns every core name, including flags whose item was removed.
func (s *Service) CoreItems(ctx context.Context) ([]string, error) {
	return s.core.List(ctx)
}

// AddItem stores a new item, or replaces the category and quantity of an
// existing one, and flags it core when asked. Unflagging is left to the grid.
func (s *Service) AddItem(ctx context.Context, in AddItemInput) (*models.InventoryItem, error) {
	in.Name = models.NormalizeName(in.Name)
	if c, err := models.ParseCategory(in.Category); err == nil {
		in.Category = string(c)
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	item := models.InventoryItem{Name: in.Name, Category: models.Category(in.Category), Quantity: in.Quantity}
	if err := s.inventory.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("adding item: %w", err)
	}
	if in.Core {
		if err := s.core.Add(ctx, item.Name); err != nil {
			return nil, fmt.Errorf("adding item: %w", err)
		}
	}

	stored, err := s.inventory.Get(ctx, item.Name)
	if err != nil {
		return nil, fmt.Errorf("adding item: %w", err)
	}

	slog.Debug("inventory item added", "item", stored.Name, "category", stored.Category, "quantity", stored.Quantity, "core", in.Core)
	return stored, nil
}

// ShoppingList returns the pending names in the order they were added.
func (s *Service) ShoppingList(ctx context.Context) ([]string, error) {
	return s.shopping.List(ctx)
}

// AddShoppingItem puts a name on the shopping list by hand.
func (s *Service) AddShoppingItem(ctx context.Context, in AddShoppingInput) (string, error) {
	in.Name = models.NormalizeName(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return "", err
	}
	if err := s.shopping.Add(ctx, in.Name); err != nil {
		return "", err
	}
	slog.Debug("shopping entry added", "item", in.Name)
	return in.Name, nil
}

// ClearShoppingList empties the shopping list and nothing else.
func (s *Service) ClearShoppingList(ctx context.Context) (int64, error) {
	n, err := s.shopping.Clear(ctx)
	if err != nil {
		return 0, err
	}
	slog.Info("shopping list cleared", "removed", n)
	return n, nil
}
