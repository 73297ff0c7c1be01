package models

import (
	"reflect"
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want Day
	}{
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Monday},
		{time.Date(2026, 3, 11, 18, 30, 0, 0, time.UTC), Wednesday},
		{time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC), Saturday},
		{time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), Sunday},
	}

	for _, tt := range tests {
		if got := DayOf(tt.date); got != tt.want {
			t.Errorf("DayOf(%s) = %v, want %v", tt.date.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestParseDay(t *testing.T) {
	if d, err := ParseDay(" friday "); err != nil || d != Friday {
		t.Errorf("ParseDay(friday) = %v, %v", d, err)
	}
	if _, err := ParseDay("Fri"); FieldMessage(err, "day") == "" {
		t.Errorf("expected abbreviations to be rejected, got %v", err)
	}
}

func TestParseMealType(t *testing.T) {
	tests := []struct {
		input   string
		want    MealType
		wantErr bool
	}{
		{"Dinner", MealDinner, false},
		{"snack", MealSnack, false},
		{"ANY", MealAny, false},
		{"Brunch", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMealType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMealType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMealType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMealType_ValidAndSuggestable(t *testing.T) {
	tests := []struct {
		meal        MealType
		valid       bool
		suggestable bool
	}{
		{MealBreakfast, true, true},
		{MealOthers, true, false},
		{MealAny, false, true},
		{"Brunch", false, false},
	}

	for _, tt := range tests {
		if got := tt.meal.Valid(); got != tt.valid {
			t.Errorf("%s.Valid() = %v, want %v", tt.meal, got, tt.valid)
		}
		if got := tt.meal.Suggestable(); got != tt.suggestable {
			t.Errorf("%s.Suggestable() = %v, want %v", tt.meal, got, tt.suggestable)
		}
	}
}

func TestMealPlanEntry_Title(t *testing.T) {
	entry := MealPlanEntry{
		Day:         Tuesday,
		MealType:    MealLunch,
		MealName:    "Omelette",
		Ingredients: []string{"Eggs", " ", "Milk"},
	}

	if got := entry.Title(); got != "Tuesday | Lunch: Omelette (Ingredients: Eggs, Milk)" {
		t.Errorf("Title() = %q", got)
	}
	if entry.HasRecipe() {
		t.Error("expected no recipe")
	}
	entry.Recipe = "  \n"
	if entry.HasRecipe() {
		t.Error("expected a blank recipe not to count")
	}

	entry.Ingredients = nil
	if got := entry.Title(); got != "Tuesday | Lunch: Omelette (Ingredients: )" {
		t.Errorf("Title() without ingredients = %q", got)
	}
}

func TestSplitIngredients(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"Eggs, Milk", []string{"Eggs", "Milk"}},
		{"Eggs,Milk,,  Flour ", []string{"Eggs", "Milk", "Flour"}},
	}

	for _, tt := range tests {
		if got := SplitIngredients(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitIngredients(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}

	names := []string{"Eggs", "Milk"}
	if got := SplitIngredients(JoinIngredients(names)); !reflect.DeepEqual(got, names) {
		t.Errorf("expected join/split to round-trip, got %v", got)
	}
}
