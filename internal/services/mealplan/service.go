// Package mealplan manages the weekly meal plan log and the AI-assisted
// recipe drafting and suggestions built on top of it.
package mealplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/llm"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/repository"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/util"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/validation"
)

// EntryInput is the meal plan form.
type EntryInput struct {
	Day         string   `form:"day" validate:"day"`
	MealType    string   `form:"meal_type" validate:"meal_type"`
	MealName    string   `form:"meal" validate:"max=100"`
	Ingredients []string `form:"ingredients" validate:"dive,max=100"`
}

// GenerationError is a failure of the text generator. Nothing was stored.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError reports whether err came from the text generator rather
// than from validation or storage.
func IsGenerationError(err error) bool {
	var g *GenerationError
	return errors.As(err, &g)
}

type suggestInput struct {
	MealType string `form:"meal_type" validate:"suggestion_type"`
}

// Service provides the meal plan operations.
type Service struct {
	plan      *repository.MealPlanRepository
	inventory *repository.InventoryRepository
	core      *repository.CoreItemRepository
	gen       llm.TextGenerator
	language  string
	validate  *validation.Validator
}

// NewService creates a meal plan service. gen may be nil, in which case
// drafting and suggestions fail with llm.ErrNotConfigured.
func NewService(db repository.Querier, gen llm.TextGenerator, language string) *Service {
	if gen == nil {
		gen = llm.Unconfigured
	}
	if language == "" {
		language = "English"
	}
	return &Service{
		plan:      repository.NewMealPlanRepository(db),
		inventory: repository.NewInventoryRepository(db),
		core:      repository.NewCoreItemRepository(db),
		gen:       gen,
		language:  language,
		validate:  validation.New(),
	}
}

// normalize trims the form, resolves case-insensitive enum names and
// validates it.
func (s *Service) normalize(in EntryInput) (models.MealPlanEntry, error) {
	in.MealName = strings.TrimSpace(in.MealName)
	if d, err := models.ParseDay(in.Day); err == nil {
		in.Day = string(d)
	}
	if m, err := models.ParseMealType(in.MealType); err == nil && m != models.MealAny {
		in.MealType = string(m)
	}
	ingredients := make([]string, 0, len(in.Ingredients))
	for _, name := range in.Ingredients {
		if name = models.NormalizeName(name); name != "" {
			ingredients = append(ingredients, name)
		}
	}
	in.Ingredients = ingredients

	if err := s.validate.Struct(in); err != nil {
		return models.MealPlanEntry{}, err
	}
	return models.MealPlanEntry{
		Day:         models.Day(in.Day),
		MealType:    models.MealType(in.MealType),
		MealName:    in.MealName,
		Ingredients: in.Ingredients,
	}, nil
}

// AddEntry appends a hand-written entry with no recipe. The meal name is
// required here.
func (s *Service) AddEntry(ctx context.Context, in EntryInput) (*models.MealPlanEntry, error) {
	entry, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	if entry.MealName == "" {
		return nil, models.ValidationErrors{{Field: "meal", Message: "is required"}}
	}

	if err := s.plan.Append(ctx, entry); err != nil {
		return nil, err
	}
	slog.Debug("meal plan entry added", "day", entry.Day, "meal_type", entry.MealType, "meal", entry.MealName)
	return &entry, nil
}

// Draft asks the text generator for a recipe using the selected ingredients
// and appends the entry with the reply as its recipe. An empty meal name
// becomes "AI Meal - <type>". Nothing is stored when generation fails.
func (s *Service) Draft(ctx context.Context, in EntryInput) (*models.MealPlanEntry, error) {
	entry, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	if entry.MealName == "" {
		entry.MealName = fmt.Sprintf("AI Meal - %s", entry.MealType)
	}

	ctx = util.WithRequestID(ctx, util.NewRequestID())
	reqID := util.RequestID(ctx)
	slog.Info("drafting recipe", "request_id", reqID, "meal_type", entry.MealType, "ingredients", len(entry.Ingredients))

	recipe, err := s.gen.Generate(ctx, llm.DraftPrompt(s.language, string(entry.MealType), entry.Ingredients))
	if err != nil {
		slog.Error("recipe draft failed", "request_id", reqID, "error", err)
		return nil, &GenerationError{Op: "drafting recipe", Err: err}
	}
	entry.Recipe = strings.TrimSpace(recipe)

	if err := s.plan.Append(ctx, entry); err != nil {
		return nil, err
	}
	slog.Debug("drafted entry added", "request_id", reqID, "day", entry.Day, "meal", entry.MealName)
	return &entry, nil
}

// Suggest asks for a recipe idea from everything in stock plus the core
// items. mealType may be models.MealAny. The reply is returned trimmed and
// never stored.
func (s *Service) Suggest(ctx context.Context, mealType models.MealType) (string, error) {
	if m, err := models.ParseMealType(string(mealType)); err == nil {
		mealType = m
	}
	if err := s.validate.Struct(suggestInput{MealType: string(mealType)}); err != nil {
		return "", err
	}

	inventory, err := s.inventory.Names(ctx)
	if err != nil {
		return "", fmt.Errorf("loading inventory: %w", err)
	}
	core, err := s.core.List(ctx)
	if err != nil {
		return "", fmt.Errorf("loading core items: %w", err)
	}

	ctx = util.WithRequestID(ctx, util.NewRequestID())
	reqID := util.RequestID(ctx)
	slog.Info("requesting suggestion", "request_id", reqID, "meal_type", mealType, "inventory", len(inventory))

	reply, err := s.gen.Generate(ctx, llm.SuggestPrompt(s.language, string(mealType), inventory, core))
	if err != nil {
		slog.Error("suggestion failed", "request_id", reqID, "error", err)
		return "", &GenerationError{Op: "suggesting recipe", Err: err}
	}
	return strings.TrimSpace(reply), nil
}

// List returns the plan in the order entries were added.
func (s *Service) List(ctx context.Context) ([]models.MealPlanEntry, error) {
	return s.plan.List(ctx)
}

// Clear deletes every plan entry and nothing else.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	n, err := s.plan.Clear(ctx)
	if err != nil {
		return 0, err
	}
	slog.Info("meal plan cleared", "removed", n)
	return n, nil
}
