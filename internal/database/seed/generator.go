package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
)

// ErrNotEmpty is returned when the inventory already has rows and Reset is off.
var ErrNotEmpty = errors.New("inventory is not empty")

// Config configures the demo data generator.
type Config struct {
	Items       int
	CoreItems   int
	Shopping    int
	MealEntries int
	RandomSeed  int64
	// Reset clears all four tables first.
	Reset bool
}

// DefaultConfig returns a small, reproducible demo pantry.
func DefaultConfig() Config {
	return Config{
		Items:       24,
		CoreItems:   5,
		Shopping:    4,
		MealEntries: 7,
		RandomSeed:  42,
	}
}

// Result counts the rows written.
type Result struct {
	Items    int
	Core     int
	Shopping int
	Meals    int
}

// Generator writes demo data in a single transaction.
type Generator struct {
	db    *sql.DB
	cfg   Config
	faker *gofakeit.Faker

	stocked []string
}

// NewGenerator creates a new demo data generator.
func NewGenerator(db *sql.DB, cfg Config) *Generator {
	return &Generator{
		db:    db,
		cfg:   cfg,
		faker: gofakeit.New(cfg.RandomSeed),
	}
}

// Generate creates all demo data.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	slog.Info("starting demo data generation", "items", g.cfg.Items, "seed", g.cfg.RandomSeed)

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if g.cfg.Reset {
		for _, table := range []string{"meal_plan", "shopping_list", "core_items", "inventory"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return nil, fmt.Errorf("clearing %s: %w", table, err)
			}
		}
	} else {
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory").Scan(&n); err != nil {
			return nil, fmt.Errorf("counting inventory: %w", err)
		}
		if n > 0 {
			return nil, ErrNotEmpty
		}
	}

	res := &Result{}
	if res.Items, err = g.generateInventory(ctx, tx); err != nil {
		return nil, fmt.Errorf("generating inventory: %w", err)
	}
	if res.Core, err = g.generateCore(ctx, tx); err != nil {
		return nil, fmt.Errorf("generating core items: %w", err)
	}
	if res.Shopping, err = g.generateShopping(ctx, tx); err != nil {
		return nil, fmt.Errorf("generating shopping list: %w", err)
	}
	if res.Meals, err = g.generateMealPlan(ctx, tx); err != nil {
		return nil, fmt.Errorf("generating meal plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	slog.Info("demo data generation complete",
		"items", res.Items, "core", res.Core, "shopping", res.Shopping, "meals", res.Meals)
	return res, nil
}

// pick returns a name for category c.
func (g *Generator) pick(c models.Category) string {
	switch c {
	case models.CategoryFruits:
		return g.faker.Fruit()
	case models.CategoryVegetables:
		return g.faker.Vegetable()
	default:
		return g.faker.RandomString(Staples[c])
	}
}

func (g *Generator) generateInventory(ctx context.Context, tx *sql.Tx) (int, error) {
	seen := make(map[string]bool)
	// Bounded so a small name pool cannot loop forever.
	for attempts := 0; len(g.stocked) < g.cfg.Items && attempts < g.cfg.Items*20; attempts++ {
		category := models.Categories[g.faker.IntRange(0, len(models.Categories)-1)]
		name := models.NormalizeName(g.pick(category))
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		// A few empty rows so the zero-quantity rules have something to act on.
		quantity := g.faker.IntRange(0, 8)
		_, err := tx.ExecContext(ctx,
			"INSERT INTO inventory (item, category, quantity) VALUES (?, ?, ?)",
			name, string(category), quantity)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", name, err)
		}
		g.stocked = append(g.stocked, name)
	}
	return len(g.stocked), nil
}

func (g *Generator) generateCore(ctx context.Context, tx *sql.Tx) (int, error) {
	count := 0
	for _, name := range g.sample(g.cfg.CoreItems, true) {
		if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO core_items (item) VALUES (?)", name); err != nil {
			return 0, fmt.Errorf("flagging %s: %w", name, err)
		}
		count++
	}
	return count, nil
}

func (g *Generator) generateShopping(ctx context.Context, tx *sql.Tx) (int, error) {
	count := 0
	for i := 0; i < g.cfg.Shopping; i++ {
		// Mostly restocks, sometimes something new.
		var name string
		if len(g.stocked) > 0 && g.faker.Bool() {
			name = g.stocked[g.faker.IntRange(0, len(g.stocked)-1)]
		} else {
			name = models.NormalizeName(g.faker.Fruit())
		}
		res, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO shopping_list (item) VALUES (?)", name)
		if err != nil {
			return 0, fmt.Errorf("adding %s: %w", name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		}
	}
	return count, nil
}

func (g *Generator) generateMealPlan(ctx context.Context, tx *sql.Tx) (int, error) {
	for i := 0; i < g.cfg.MealEntries; i++ {
		day := models.Days[i%len(models.Days)]
		mealType := models.MealTypes[g.faker.IntRange(0, len(models.MealTypes)-1)]
		ingredients := g.sample(g.faker.IntRange(2, 4), false)

		_, err := tx.ExecContext(ctx,
			"INSERT INTO meal_plan (day, meal, ingredients, meal_type, recipe) VALUES (?, ?, ?, ?, '')",
			string(day), g.mealName(mealType), models.JoinIngredients(ingredients), string(mealType))
		if err != nil {
			return 0, fmt.Errorf("inserting meal %d: %w", i, err)
		}
	}
	return g.cfg.MealEntries, nil
}

func (g *Generator) mealName(m models.MealType) string {
	switch m {
	case models.MealBreakfast:
		return g.faker.Breakfast()
	case models.MealLunch:
		return g.faker.Lunch()
	case models.MealDinner:
		return g.faker.Dinner()
	case models.MealDessert:
		return g.faker.Dessert()
	default:
		return g.faker.Snack()
	}
}

// sample returns up to n distinct stocked names, CoreCandidates first when
// preferCore is set.
func (g *Generator) sample(n int, preferCore bool) []string {
	if n <= 0 || len(g.stocked) == 0 {
		return nil
	}

	var preferred, rest []string
	candidates := make(map[string]bool, len(CoreCandidates))
	for _, c := range CoreCandidates {
		candidates[c] = true
	}
	for _, name := range g.stocked {
		if preferCore && candidates[name] {
			preferred = append(preferred, name)
		} else {
			rest = append(rest, name)
		}
	}
	g.faker.ShuffleStrings(rest)

	out := append(preferred, rest...)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
