package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
)

// FixtureItem creates an inventory item with a unique name.
func FixtureItem(overrides ...func(*models.InventoryItem)) models.InventoryItem {
	item := models.InventoryItem{
		Name:     "item-" + uuid.NewString()[:8],
		Category: models.CategoryOthers,
		Quantity: 1,
	}
	for _, override := range overrides {
		override(&item)
	}
	return item
}

// FixtureMealEntry creates a meal plan entry for Monday lunch.
func FixtureMealEntry(overrides ...func(*models.MealPlanEntry)) models.MealPlanEntry {
	entry := models.MealPlanEntry{
		Day:         models.Monday,
		MealType:    models.MealLunch,
		MealName:    "Tomato soup",
		Ingredients: []string{"Tomatoes", "Onion"},
	}
	for _, override := range overrides {
		override(&entry)
	}
	return entry
}

// Stock writes items straight into inventory, and the core flag for names in core.
func (tdb *TestDB) Stock(t *testing.T, items []models.InventoryItem, core ...string) {
	t.Helper()

	ctx := context.Background()
	for _, item := range items {
		_, err := tdb.ExecContext(ctx,
			"INSERT INTO inventory (item, category, quantity) VALUES (?, ?, ?)",
			item.Name, string(item.Category), item.Quantity)
		if err != nil {
			t.Fatalf("failed to stock %q: %v", item.Name, err)
		}
	}
	for _, name := range core {
		tdb.ExecSQL(t, "INSERT INTO core_items (item) VALUES (?)", name)
	}
}

// Shop puts names on the shopping list.
func (tdb *TestDB) Shop(t *testing.T, names ...string) {
	t.Helper()

	for _, name := range names {
		tdb.ExecSQL(t, "INSERT INTO shopping_list (item) VALUES (?)", name)
	}
}
