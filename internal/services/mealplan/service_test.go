package mealplan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/llm"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/testutil"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/util"
)

// stubGenerator records every prompt and answers with reply or err.
type stubGenerator struct {
	reply   string
	err     error
	prompts []llm.Prompt
	reqIDs  []string
}

func (g *stubGenerator) Generate(ctx context.Context, p llm.Prompt) (string, error) {
	g.prompts = append(g.prompts, p)
	g.reqIDs = append(g.reqIDs, util.RequestID(ctx))
	return g.reply, g.err
}

func setup(t *testing.T, gen llm.TextGenerator) (*Service, *testutil.TestDB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewService(db, gen, "Slovak"), db
}

func TestAddEntry(t *testing.T) {
	svc, db := setup(t, nil)
	ctx := context.Background()

	entry, err := svc.AddEntry(ctx, EntryInput{
		Day:         "monday",
		MealType:    "lunch",
		MealName:    "  Tomato soup ",
		Ingredients: []string{"Tomatoes", " ", " Onion "},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Monday, entry.Day)
	assert.Equal(t, models.MealLunch, entry.MealType)
	assert.Equal(t, "Tomato soup", entry.MealName)
	assert.Equal(t, []string{"Tomatoes", "Onion"}, entry.Ingredients)
	assert.False(t, entry.HasRecipe())

	var stored string
	require.NoError(t, db.QueryRow("SELECT ingredients FROM meal_plan").Scan(&stored))
	assert.Equal(t, "Tomatoes, Onion", stored)
}

func TestAddEntry_Validation(t *testing.T) {
	svc, db := setup(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    EntryInput
		field string
	}{
		{"Missing meal name", EntryInput{Day: "Monday", MealType: "Lunch", MealName: "  "}, "meal"},
		{"Unknown day", EntryInput{Day: "Someday", MealType: "Lunch", MealName: "Soup"}, "day"},
		{"Any is not storable", EntryInput{Day: "Monday", MealType: "Any", MealName: "Soup"}, "meal_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddEntry(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, models.IsValidation(err))
			assert.NotEmpty(t, models.FieldMessage(err, tt.field), "expected a message for %s, got %v", tt.field, err)
		})
	}
	db.AssertRowCount(t, "meal_plan", 0)
}

func TestAddEntry_DuplicatesAllowed(t *testing.T) {
	svc, db := setup(t, nil)
	ctx := context.Background()
	in := EntryInput{Day: "Friday", MealType: "Dinner", MealName: "Pizza"}

	_, err := svc.AddEntry(ctx, in)
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, in)
	require.NoError(t, err)

	db.AssertRowCount(t, "meal_plan", 2)
}

func TestDraft(t *testing.T) {
	gen := &stubGenerator{reply: "\n  Shakshuka\n1. Fry onion.\n2. Add eggs.  \n"}
	svc, db := setup(t, gen)
	ctx := context.Background()

	entry, err := svc.Draft(ctx, EntryInput{
		Day:         "Sunday",
		MealType:    "Breakfast",
		Ingredients: []string{"Eggs", "Onion"},
	})
	require.NoError(t, err)

	assert.Equal(t, "AI Meal - Breakfast", entry.MealName)
	assert.Equal(t, "Shakshuka\n1. Fry onion.\n2. Add eggs.", entry.Recipe)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0].User, "Eggs, Onion")
	assert.Contains(t, gen.prompts[0].User, "Breakfast")
	assert.Contains(t, gen.prompts[0].System, "Slovak")
	assert.NotEmpty(t, gen.reqIDs[0])

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, *entry, entries[0])
	db.AssertRowCount(t, "meal_plan", 1)
}

func TestDraft_KeepsGivenName(t *testing.T) {
	gen := &stubGenerator{reply: "Steps"}
	svc, _ := setup(t, gen)

	entry, err := svc.Draft(context.Background(), EntryInput{Day: "Monday", MealType: "Dinner", MealName: "Goulash"})
	require.NoError(t, err)
	assert.Equal(t, "Goulash", entry.MealName)
}

func TestDraft_BlankReplyStoredAsEmptyRecipe(t *testing.T) {
	gen := &stubGenerator{reply: "  \n "}
	svc, db := setup(t, gen)

	entry, err := svc.Draft(context.Background(), EntryInput{Day: "Friday", MealType: "Snack"})
	require.NoError(t, err)
	assert.Equal(t, "", entry.Recipe)
	assert.False(t, entry.HasRecipe())
	db.AssertRowCount(t, "meal_plan", 1)
}

func TestDraft_FailureStoresNothing(t *testing.T) {
	boom := errors.New("rate limited")
	gen := &stubGenerator{err: boom}
	svc, db := setup(t, gen)

	_, err := svc.Draft(context.Background(), EntryInput{Day: "Monday", MealType: "Dinner"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "rate limited")
	assert.True(t, IsGenerationError(err))
	db.AssertRowCount(t, "meal_plan", 0)
}

func TestDraft_InvalidInputSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "Steps"}
	svc, _ := setup(t, gen)

	_, err := svc.Draft(context.Background(), EntryInput{Day: "Blursday", MealType: "Dinner"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.False(t, IsGenerationError(err))
	assert.Empty(t, gen.prompts)
}

func TestDraft_Unconfigured(t *testing.T) {
	svc, db := setup(t, nil)

	_, err := svc.Draft(context.Background(), EntryInput{Day: "Monday", MealType: "Dinner"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	db.AssertRowCount(t, "meal_plan", 0)
}

func TestSuggest(t *testing.T) {
	gen := &stubGenerator{reply: "  Fried rice  "}
	svc, db := setup(t, gen)
	ctx := context.Background()
	db.Stock(t, []models.InventoryItem{
		{Name: "Rice", Category: models.CategoryGrains, Quantity: 1},
		{Name: "Eggs", Category: models.CategoryOthers, Quantity: 6},
	}, "Eggs", "Salt")

	out, err := svc.Suggest(ctx, "any")
	require.NoError(t, err)
	assert.Equal(t, "Fried rice", out)

	require.Len(t, gen.prompts, 1)
	user := gen.prompts[0].User
	assert.Contains(t, user, "Available ingredients: Rice, Eggs")
	assert.Contains(t, user, "always be in stock: Eggs, Salt")
	assert.Contains(t, user, "meal type: Any")

	db.AssertRowCount(t, "meal_plan", 0)
}

func TestSuggest_Errors(t *testing.T) {
	gen := &stubGenerator{err: errors.New("invalid api key")}
	svc, _ := setup(t, gen)
	ctx := context.Background()

	_, err := svc.Suggest(ctx, models.MealDinner)
	assert.ErrorContains(t, err, "invalid api key")

	gen.err = nil
	_, err = svc.Suggest(ctx, "Brunch")
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))

	_, err = svc.Suggest(ctx, models.MealOthers)
	assert.True(t, models.IsValidation(err), "Others is not offered for suggestions, got %v", err)
}

func TestClear(t *testing.T) {
	svc, db := setup(t, nil)
	ctx := context.Background()
	db.Stock(t, []models.InventoryItem{{Name: "Rice", Category: models.CategoryGrains, Quantity: 1}}, "Rice")
	db.Shop(t, "Milk")

	for _, name := range []string{"Soup", "Stew"} {
		_, err := svc.AddEntry(ctx, EntryInput{Day: "Monday", MealType: "Lunch", MealName: name})
		require.NoError(t, err)
	}

	n, err := svc.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	db.AssertRowCount(t, "meal_plan", 0)
	db.AssertRowCount(t, "inventory", 1)
	db.AssertRowCount(t, "core_items", 1)
	db.AssertRowCount(t, "shopping_list", 1)
}
