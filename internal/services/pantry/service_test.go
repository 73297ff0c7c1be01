package pantry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/testutil"
)

func setup(t *testing.T) (*Service, *testutil.TestDB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewService(db), db
}

func snapshot(t *testing.T, svc *Service) []models.InventoryRow {
	t.Helper()
	rows, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	return rows
}

// edit copies rows and applies fn to the row named name.
func edit(rows []models.InventoryRow, name string, fn func(*models.InventoryRow)) []models.InventoryRow {
	out := append([]models.InventoryRow(nil), rows...)
	for i := range out {
		if out[i].Name == name {
			fn(&out[i])
		}
	}
	return out
}

func TestSnapshot(t *testing.T) {
	svc, db := setup(t)
	db.Stock(t, []models.InventoryItem{
		{Name: "Milk", Category: models.CategoryDairy, Quantity: 2},
		{Name: "Rice", Category: models.CategoryGrains, Quantity: 1},
	}, "Milk", "Saffron")

	rows := snapshot(t, svc)
	require.Len(t, rows, 2)
	assert.Equal(t, models.InventoryRow{Name: "Milk", Category: models.CategoryDairy, Quantity: 2, IsCore: true}, rows[0])
	assert.Equal(t, models.InventoryRow{Name: "Rice", Category: models.CategoryGrains, Quantity: 1}, rows[1])
}

func TestReconcile_MilkScenario(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 2}}, "Milk")

	before := snapshot(t, svc)
	after := edit(before, "Milk", func(r *models.InventoryRow) { r.Quantity = 0 })

	res, err := svc.Reconcile(ctx, before, after)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk"}, res.Updated)
	assert.Equal(t, []string{"Milk"}, res.Shopping)
	assert.Equal(t, 0, db.Quantity(t, "Milk"))
	assert.Equal(t, []string{"Milk"}, db.Names(t, "shopping_list"))

	ir, err := svc.Intake(ctx, []IntakeLine{{Name: "Milk", Quantity: 3, Add: true}})
	require.NoError(t, err)
	require.Len(t, ir.Received, 1)
	assert.Equal(t, 3, ir.Received[0].Total)

	item, err := svc.inventory.Get(ctx, "Milk")
	require.NoError(t, err)
	assert.Equal(t, models.InventoryItem{Name: "Milk", Category: models.CategoryDairy, Quantity: 3}, *item)
	assert.Empty(t, db.Names(t, "shopping_list"))
}

func TestReconcile_Remove(t *testing.T) {
	t.Run("core item goes to shopping list", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Eggs", Category: models.CategoryOthers, Quantity: 4}}, "Eggs")

		before := snapshot(t, svc)
		after := edit(before, "Eggs", func(r *models.InventoryRow) { r.Remove = true })

		res, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"Eggs"}, res.Removed)
		assert.Equal(t, []string{"Eggs"}, db.Names(t, "shopping_list"))
		db.AssertRowCount(t, "inventory", 0)
		db.AssertRowCount(t, "core_items", 0)
	})

	t.Run("non-core item never goes to shopping list", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Chips", Category: models.CategoryOthers, Quantity: 0}})

		before := snapshot(t, svc)
		after := edit(before, "Chips", func(r *models.InventoryRow) { r.Remove = true })

		res, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Empty(t, res.Shopping)
		db.AssertRowCount(t, "shopping_list", 0)
		db.AssertRowCount(t, "inventory", 0)
	})

	t.Run("removal wins over other edits", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Ham", Category: models.CategoryMeat, Quantity: 2}})

		before := snapshot(t, svc)
		after := edit(before, "Ham", func(r *models.InventoryRow) {
			r.Remove = true
			r.IsCore = true
			r.Quantity = 0
		})

		res, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ham"}, res.Removed)
		assert.Empty(t, res.Updated)
		assert.Empty(t, res.CoreAdded)
		db.AssertRowCount(t, "core_items", 0)
		db.AssertRowCount(t, "shopping_list", 0)
	})
}

func TestReconcile_Quantity(t *testing.T) {
	t.Run("non-core hitting zero stays off the list", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Jam", Category: models.CategoryOthers, Quantity: 1}})

		before := snapshot(t, svc)
		after := edit(before, "Jam", func(r *models.InventoryRow) { r.Quantity = 0 })

		_, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, 0, db.Quantity(t, "Jam"))
		db.AssertRowCount(t, "shopping_list", 0)
	})

	t.Run("core item above zero stays off the list", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 1}}, "Milk")

		before := snapshot(t, svc)
		after := edit(before, "Milk", func(r *models.InventoryRow) { r.Quantity = 5 })

		_, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, 5, db.Quantity(t, "Milk"))
		db.AssertRowCount(t, "shopping_list", 0)
	})

	t.Run("already listed stays listed once", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 1}}, "Milk")
		db.Shop(t, "Milk")

		before := snapshot(t, svc)
		after := edit(before, "Milk", func(r *models.InventoryRow) { r.Quantity = 0 })

		_, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"Milk"}, db.Names(t, "shopping_list"))
	})

	t.Run("negative quantity rejected before writing", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 1}})

		before := snapshot(t, svc)
		after := edit(before, "Milk", func(r *models.InventoryRow) { r.Quantity = -2 })

		res, err := svc.Reconcile(context.Background(), before, after)
		require.Error(t, err)
		assert.True(t, models.IsValidation(err))
		require.Len(t, res.Failures, 1)
		assert.Equal(t, RuleInput, res.Failures[0].Rule)
		assert.Equal(t, 1, db.Quantity(t, "Milk"))
	})

	t.Run("row with an unknown category rejected before writing", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Fudge", Category: "Candy", Quantity: 1}}, "Fudge")

		before := snapshot(t, svc)
		after := edit(before, "Fudge", func(r *models.InventoryRow) { r.Quantity = 0 })

		res, err := svc.Reconcile(context.Background(), before, after)
		require.Error(t, err)
		assert.True(t, models.IsValidation(err))
		require.Len(t, res.Failures, 1)
		assert.Equal(t, RuleInput, res.Failures[0].Rule)
		assert.Equal(t, 1, db.Quantity(t, "Fudge"))
		db.AssertRowCount(t, "shopping_list", 0)
	})
}

func TestReconcile_CoreToggle(t *testing.T) {
	t.Run("becoming core at zero adds to shopping list", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Salt", Category: models.CategoryOthers, Quantity: 0}})

		before := snapshot(t, svc)
		after := edit(before, "Salt", func(r *models.InventoryRow) { r.IsCore = true })

		res, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"Salt"}, res.CoreAdded)
		assert.Equal(t, []string{"Salt"}, db.Names(t, "core_items"))
		assert.Equal(t, []string{"Salt"}, db.Names(t, "shopping_list"))
	})

	t.Run("becoming core while driven to zero lists once", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Oil", Category: models.CategoryOthers, Quantity: 3}})

		before := snapshot(t, svc)
		after := edit(before, "Oil", func(r *models.InventoryRow) {
			r.IsCore = true
			r.Quantity = 0
		})

		res, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"Oil"}, res.Shopping)
		assert.Equal(t, []string{"Oil"}, db.Names(t, "shopping_list"))
		assert.Equal(t, 0, db.Quantity(t, "Oil"))
	})

	t.Run("becoming core with stock does not list", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Flour", Category: models.CategoryGrains, Quantity: 2}})

		before := snapshot(t, svc)
		after := edit(before, "Flour", func(r *models.InventoryRow) { r.IsCore = true })

		_, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		db.AssertRowCount(t, "shopping_list", 0)
		db.AssertRowCount(t, "core_items", 1)
	})

	t.Run("leaving core keeps shopping entry", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 0}}, "Milk")
		db.Shop(t, "Milk")

		before := snapshot(t, svc)
		after := edit(before, "Milk", func(r *models.InventoryRow) { r.IsCore = false })

		res, err := svc.Reconcile(context.Background(), before, after)
		require.NoError(t, err)
		assert.Equal(t, []string{"Milk"}, res.CoreRemoved)
		db.AssertRowCount(t, "core_items", 0)
		assert.Equal(t, []string{"Milk"}, db.Names(t, "shopping_list"))
	})
}

func TestReconcile_MatchesByName(t *testing.T) {
	svc, db := setup(t)
	db.Stock(t, []models.InventoryItem{
		{Name: "Apples", Category: models.CategoryFruits, Quantity: 4},
		{Name: "Bread", Category: models.CategoryGrains, Quantity: 1},
	}, "Bread")

	before := snapshot(t, svc)
	// Grid shows Bread first and the user edits the Bread row.
	after := []models.InventoryRow{before[1], before[0]}
	after[0].Quantity = 0

	_, err := svc.Reconcile(context.Background(), before, after)
	require.NoError(t, err)
	assert.Equal(t, 0, db.Quantity(t, "Bread"))
	assert.Equal(t, 4, db.Quantity(t, "Apples"))
	assert.Equal(t, []string{"Bread"}, db.Names(t, "shopping_list"))
}

func TestReconcile_UnknownAndDuplicateRows(t *testing.T) {
	svc, db := setup(t)
	db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 1}})

	before := snapshot(t, svc)
	after := []models.InventoryRow{
		{Name: "Ghost", Category: models.CategoryOthers, Quantity: 3},
		{Name: "Milk", Category: models.CategoryDairy, Quantity: 2},
		{Name: "Milk", Category: models.CategoryDairy, Quantity: 9},
	}

	res, err := svc.Reconcile(context.Background(), before, after)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInSnapshot))
	assert.True(t, errors.Is(err, ErrDuplicateRow))
	assert.Equal(t, []string{"Milk"}, res.Updated)
	assert.Equal(t, 2, db.Quantity(t, "Milk"))
	assert.Equal(t, -1, db.Quantity(t, "Ghost"))
}

func TestReconcile_FailureIsolatedToItem(t *testing.T) {
	svc, db := setup(t)
	db.Stock(t, []models.InventoryItem{
		{Name: "Broken", Category: models.CategoryOthers, Quantity: 2},
		{Name: "Milk", Category: models.CategoryDairy, Quantity: 2},
	}, "Broken", "Milk")
	db.ExecSQL(t, `CREATE TRIGGER reject_broken BEFORE UPDATE ON inventory
		WHEN NEW.item = 'Broken' BEGIN SELECT RAISE(ABORT, 'disk on fire'); END`)

	before := snapshot(t, svc)
	after := edit(before, "Broken", func(r *models.InventoryRow) {
		r.Quantity = 0
		r.IsCore = false
	})
	after = edit(after, "Milk", func(r *models.InventoryRow) { r.Quantity = 0 })

	res, err := svc.Reconcile(context.Background(), before, after)
	require.Error(t, err)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "Broken", res.Failures[0].Name)
	assert.Equal(t, RuleQuantity, res.Failures[0].Rule)

	// The failed item kept its state, including the core flag rule 3 would have cleared.
	assert.Equal(t, 2, db.Quantity(t, "Broken"))
	assert.Contains(t, db.Names(t, "core_items"), "Broken")

	// The other item was fully applied.
	assert.Equal(t, 0, db.Quantity(t, "Milk"))
	assert.Equal(t, []string{"Milk"}, db.Names(t, "shopping_list"))
}

func TestReconcile_NoChanges(t *testing.T) {
	svc, db := setup(t)
	db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 1}}, "Milk")

	before := snapshot(t, svc)
	res, err := svc.Reconcile(context.Background(), before, before)
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, "no changes", res.Summary())
}

func TestIntake(t *testing.T) {
	t.Run("creates missing item as Others", func(t *testing.T) {
		svc, db := setup(t)
		db.Shop(t, "Basil")

		res, err := svc.Intake(context.Background(), []IntakeLine{{Name: "Basil", Quantity: 2, Add: true}})
		require.NoError(t, err)
		require.Len(t, res.Received, 1)

		item, err := svc.inventory.Get(context.Background(), "Basil")
		require.NoError(t, err)
		assert.Equal(t, models.CategoryOthers, item.Category)
		assert.Equal(t, 2, item.Quantity)
		db.AssertRowCount(t, "shopping_list", 0)
	})

	t.Run("unflagged or non-positive lines are no-ops", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 1}})
		db.Shop(t, "Milk", "Bread", "Eggs")

		res, err := svc.Intake(context.Background(), []IntakeLine{
			{Name: "Milk", Quantity: 0, Add: true},
			{Name: "Bread", Quantity: 3, Add: false},
			{Name: "Eggs", Quantity: -1, Add: true},
		})
		require.NoError(t, err)
		assert.Empty(t, res.Received)
		assert.Len(t, res.Skipped, 3)
		assert.Equal(t, 1, db.Quantity(t, "Milk"))
		assert.Equal(t, -1, db.Quantity(t, "Bread"))
		assert.Equal(t, []string{"Bread", "Eggs", "Milk"}, db.Names(t, "shopping_list"))
	})

	t.Run("mixed lines", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Rice", Category: models.CategoryGrains, Quantity: 1}})
		db.Shop(t, "Rice", "Tea")

		res, err := svc.Intake(context.Background(), []IntakeLine{
			{Name: "Rice", Quantity: 4, Add: true},
			{Name: "Tea", Quantity: 1, Add: false},
		})
		require.NoError(t, err)
		require.Len(t, res.Received, 1)
		assert.Equal(t, Received{Name: "Rice", Total: 5, Received: 4}, res.Received[0])
		assert.Equal(t, []string{"Tea"}, db.Names(t, "shopping_list"))
	})

	t.Run("only listed names are received, once", func(t *testing.T) {
		svc, db := setup(t)
		db.Stock(t, []models.InventoryItem{{Name: "Eggs", Category: models.CategoryDairy, Quantity: 0}})
		db.Shop(t, "Eggs")

		res, err := svc.Intake(context.Background(), []IntakeLine{
			{Name: "Eggs", Quantity: 2, Add: true},
			{Name: "Eggs", Quantity: 5, Add: true},
			{Name: "Ghost", Quantity: 1, Add: true},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateRow))
		assert.True(t, errors.Is(err, ErrNotOnShoppingList))
		require.Len(t, res.Received, 1)
		require.Len(t, res.Failures, 2)

		assert.Equal(t, 2, db.Quantity(t, "Eggs"))
		assert.Equal(t, -1, db.Quantity(t, "Ghost"))
		db.AssertRowCount(t, "shopping_list", 0)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("trims name and flags core", func(t *testing.T) {
		svc, db := setup(t)

		item, err := svc.AddItem(ctx, AddItemInput{Name: "  Milk ", Category: "dairy", Quantity: 2, Core: true})
		require.NoError(t, err)
		assert.Equal(t, "Milk", item.Name)
		assert.Equal(t, models.CategoryDairy, item.Category)
		assert.Equal(t, []string{"Milk"}, db.Names(t, "core_items"))
	})

	t.Run("re-adding replaces category and quantity", func(t *testing.T) {
		svc, db := setup(t)

		_, err := svc.AddItem(ctx, AddItemInput{Name: "Beans", Category: "Vegetables", Quantity: 2})
		require.NoError(t, err)
		stored, err := svc.AddItem(ctx, AddItemInput{Name: "Beans", Category: "Others", Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, models.InventoryItem{Name: "Beans", Category: models.CategoryOthers, Quantity: 5}, *stored)

		db.AssertRowCount(t, "inventory", 1)
		item, err := svc.inventory.Get(ctx, "Beans")
		require.NoError(t, err)
		assert.Equal(t, models.CategoryOthers, item.Category)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("malformed input writes nothing", func(t *testing.T) {
		svc, db := setup(t)

		cases := []AddItemInput{
			{Name: "   ", Category: "Dairy", Quantity: 1},
			{Name: "Milk", Category: "Candy", Quantity: 1},
			{Name: "Milk", Category: "Dairy", Quantity: 0},
		}
		for _, in := range cases {
			_, err := svc.AddItem(ctx, in)
			assert.True(t, models.IsValidation(err), "expected validation error for %+v, got %v", in, err)
		}
		db.AssertRowCount(t, "inventory", 0)
		db.AssertRowCount(t, "core_items", 0)
	})
}

func TestShoppingList(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)

	name, err := svc.AddShoppingItem(ctx, AddShoppingInput{Name: " Coffee "})
	require.NoError(t, err)
	assert.Equal(t, "Coffee", name)

	_, err = svc.AddShoppingItem(ctx, AddShoppingInput{Name: "Coffee"})
	require.NoError(t, err)

	_, err = svc.AddShoppingItem(ctx, AddShoppingInput{Name: ""})
	assert.True(t, models.IsValidation(err))

	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee"}, list)

	db.Stock(t, []models.InventoryItem{{Name: "Milk", Category: models.CategoryDairy, Quantity: 1}}, "Milk")
	n, err := svc.ClearShoppingList(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	db.AssertRowCount(t, "shopping_list", 0)
	db.AssertRowCount(t, "inventory", 1)
	db.AssertRowCount(t, "core_items", 1)
}
