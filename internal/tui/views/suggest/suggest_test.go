package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/llm"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/mealplan"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/testutil"
)

func TestView_MealTypeSelection(t *testing.T) {
	view := NewView(nil)
	if view.MealType() != models.MealBreakfast {
		t.Errorf("expected Breakfast first, got %q", view.MealType())
	}

	view.HandleKey("left")
	if view.MealType() != models.MealAny {
		t.Errorf("expected selection to wrap to Any, got %q", view.MealType())
	}
	if !strings.Contains(view.Render(120, 40), "Press Enter") {
		t.Error("expected prompt before the first request")
	}
}

func TestView_Request(t *testing.T) {
	var prompt llm.Prompt
	gen := llm.GeneratorFunc(func(_ context.Context, p llm.Prompt) (string, error) {
		prompt = p
		return "Omelette\n1. Whisk eggs\n2. Fry", nil
	})
	db := testutil.NewTestDB(t)
	db.Stock(t, []models.InventoryItem{{Name: "Eggs", Category: models.CategoryOthers, Quantity: 6}})
	view := NewView(mealplan.NewService(db, gen, "English"))

	view.HandleKey("right")
	view.Start()
	if !view.Waiting() || !strings.Contains(view.Render(120, 40), "Asking for a recipe") {
		t.Error("expected waiting state")
	}

	out, err := view.Request(context.Background())
	view.Finish(out, err)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if !strings.Contains(prompt.User, "Lunch") || !strings.Contains(prompt.User, "Eggs") {
		t.Errorf("unexpected prompt %q", prompt.User)
	}

	output := view.Render(120, 40)
	if !strings.Contains(output, "Whisk eggs") {
		t.Errorf("expected reply in output, got:\n%s", output)
	}
	db.AssertRowCount(t, "meal_plan", 0)

	view.HandleKey("down")
	if strings.Contains(view.Render(120, 40), "Omelette") {
		t.Error("expected the first line to scroll out")
	}
}

func TestView_Failure(t *testing.T) {
	gen := llm.GeneratorFunc(func(context.Context, llm.Prompt) (string, error) {
		return "", errors.New("invalid api key")
	})
	view := NewView(mealplan.NewService(testutil.NewTestDB(t), gen, "English"))

	view.Start()
	out, err := view.Request(context.Background())
	view.Finish(out, err)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(view.Render(120, 40), "invalid api key") {
		t.Error("expected provider error text in output")
	}
}
