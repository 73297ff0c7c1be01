package models

import (
	"fmt"
	"strings"
	"time"
)

// Day is a day of the planning week.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days is the planning week, Monday first.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Day) String() string {
	return string(d)
}

// Valid reports whether d is one of Days.
func (d Day) Valid() bool {
	for _, known := range Days {
		if d == known {
			return true
		}
	}
	return false
}

// DayOf maps a time to its planning day.
func DayOf(t time.Time) Day {
	// time.Sunday is 0; Days starts on Monday.
	return Days[(int(t.Weekday())+6)%7]
}

// ParseDay accepts a full day name in any case.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	for _, d := range Days {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", &ValidationError{Field: "day", Message: fmt.Sprintf("unknown day %q", s)}
}

// MealType is the kind of meal a plan entry is for.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealDessert   MealType = "Dessert"
	MealSnack     MealType = "Snack"
	MealOthers    MealType = "Others"

	// MealAny is only meaningful when asking for suggestions.
	MealAny MealType = "Any"
)

// MealTypes lists the types a plan entry can have.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealDessert, MealSnack, MealOthers}

// SuggestionMealTypes lists the choices offered for inventory-based suggestions.
var SuggestionMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealDessert, MealSnack, MealAny}

func (m MealType) String() string {
	return string(m)
}

// Valid reports whether m can be stored on a plan entry.
func (m MealType) Valid() bool {
	for _, known := range MealTypes {
		if m == known {
			return true
		}
	}
	return false
}

// Suggestable reports whether m is offered when asking for suggestions.
func (m MealType) Suggestable() bool {
	for _, known := range SuggestionMealTypes {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMealType accepts any of MealTypes or MealAny, in any case.
func ParseMealType(s string) (MealType, error) {
	s = strings.TrimSpace(s)
	for _, m := range MealTypes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	if strings.EqualFold(s, string(MealAny)) {
		return MealAny, nil
	}
	return "", &ValidationError{Field: "meal_type", Message: fmt.Sprintf("unknown meal type %q", s)}
}

// IngredientSeparator joins ingredient names in storage and prompts.
const IngredientSeparator = ", "

// MealPlanEntry is one line of the append-only meal plan.
type MealPlanEntry struct {
	Day         Day
	MealType    MealType
	MealName    string
	Ingredients []string
	Recipe      string
}

// HasRecipe reports whether a recipe text is attached.
func (e MealPlanEntry) HasRecipe() bool {
	return strings.TrimSpace(e.Recipe) != ""
}

// IngredientList renders the ingredients the way they are stored.
func (e MealPlanEntry) IngredientList() string {
	return JoinIngredients(e.Ingredients)
}

// Title is the one-line summary used in the weekly plan.
func (e MealPlanEntry) Title() string {
	return fmt.Sprintf("%s | %s: %s (Ingredients: %s)", e.Day, e.MealType, e.MealName, e.IngredientList())
}

// JoinIngredients joins names with IngredientSeparator, skipping blanks.
func JoinIngredients(names []string) string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, IngredientSeparator)
}

// SplitIngredients is the inverse of JoinIngredients. The stored text is
// freeform, so any comma splits.
func SplitIngredients(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
