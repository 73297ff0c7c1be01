package repository

import (
	"context"
	"fmt"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
)

// MealPlanRepository appends to and reads the meal_plan log.
type MealPlanRepository struct {
	db Querier
}

// NewMealPlanRepository creates a new meal plan repository.
func NewMealPlanRepository(db Querier) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Append stores entry at the end of the log. Identical entries are allowed.
func (r *MealPlanRepository) Append(ctx context.Context, entry models.MealPlanEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_plan (day, meal, ingredients, meal_type, recipe) VALUES (?, ?, ?, ?, ?)`,
		string(entry.Day), entry.MealName, entry.IngredientList(), string(entry.MealType), entry.Recipe,
	)
	if err != nil {
		return fmt.Errorf("appending meal plan entry: %w", err)
	}
	return nil
}

// List returns the log in insertion order.
func (r *MealPlanRepository) List(ctx context.Context) ([]models.MealPlanEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT day, meal, ingredients, meal_type, recipe FROM meal_plan ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying meal plan: %w", err)
	}
	defer rows.Close()

	var entries []models.MealPlanEntry
	for rows.Next() {
		var (
			e                         models.MealPlanEntry
			day, ingredients, mealTyp string
		)
		if err := rows.Scan(&day, &e.MealName, &ingredients, &mealTyp, &e.Recipe); err != nil {
			return nil, fmt.Errorf("scanning meal plan: %w", err)
		}
		e.Day = models.Day(day)
		e.MealType = models.MealType(mealTyp)
		e.Ingredients = models.SplitIngredients(ingredients)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (r *MealPlanRepository) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM meal_plan")
	if err != nil {
		return 0, fmt.Errorf("clearing meal plan: %w", err)
	}
	return res.RowsAffected()
}
