// Package mealplan provides the weekly meal plan list, the entry form used
// for manual and AI-drafted meals, and the recipe suggestion panel.
package mealplan

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/mealplan"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
)

// NoRecipe is shown in place of an empty recipe.
const NoRecipe = "No recipe provided."

// View lists the meal plan in the order entries were added.
type View struct {
	service *mealplan.Service
	table   *components.Table
	entries []models.MealPlanEntry

	loading bool
	err     error
}

// NewView creates a new meal plan view.
func NewView(service *mealplan.Service) *View {
	table := components.NewTable([]components.Column{
		{Title: "Day", Width: 10},
		{Title: "Type", Width: 10},
		{Title: "Meal", Width: 28},
		{Title: "Ingredients", Width: 34},
		{Title: "Recipe", Width: 6, Align: lipgloss.Center},
	})
	table.SetVisibleRows(15)
	table.Focus(true)

	return &View{service: service, table: table}
}

// Load reads the whole plan.
func (v *View) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	entries, err := v.service.List(ctx)
	v.loading = false
	if err != nil {
		v.err = err
		return err
	}

	v.entries = entries
	rows := make([][]string, len(entries))
	for i, e := range entries {
		recipe := ""
		if e.HasRecipe() {
			recipe = "yes"
		}
		rows[i] = []string{string(e.Day), string(e.MealType), e.MealName, e.IngredientList(), recipe}
	}
	v.table.SetRows(rows)
	return nil
}

// Selected returns the entry under the cursor.
func (v *View) Selected() (models.MealPlanEntry, bool) {
	n := v.table.Selected()
	if n < 0 || n >= len(v.entries) {
		return models.MealPlanEntry{}, false
	}
	return v.entries[n], true
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	v.table.MoveDown()
}

// Len returns the number of entries loaded.
func (v *View) Len() int {
	return len(v.entries)
}

// SetHeight sizes the list to the space available.
func (v *View) SetHeight(height int) {
	v.table.SetVisibleRows(height - 8)
}

// Render renders the weekly plan.
func (v *View) Render(width, height int) string {
	p := components.CurrentPalette()
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary)
	errStyle := lipgloss.NewStyle().Foreground(p.Error)

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== WEEKLY MEAL PLAN ==="))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(v.entries) == 0:
		b.WriteString(labelStyle.Render("No meals planned yet."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	if width > 0 && width < 80 {
		b.WriteString(labelStyle.Render("Enter:Recipe  a:Plan  D:Clear"))
	} else {
		b.WriteString(labelStyle.Render("Up/Down:Navigate  Enter:Show recipe  a:Plan a meal  D:Clear plan"))
	}

	return b.String()
}

// RenderDetail renders one entry with its recipe.
func (v *View) RenderDetail(entry *models.MealPlanEntry, width int) string {
	p := components.CurrentPalette()
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(p.Primary)
	mutedStyle := lipgloss.NewStyle().Foreground(p.Secondary).Italic(true)

	if entry == nil {
		return "No entry selected"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(entry.Title()))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(labelStyle.Render(label + ":"))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	field("Day", string(entry.Day))
	field("Meal type", string(entry.MealType))
	field("Meal", entry.MealName)
	ingredients := entry.IngredientList()
	if ingredients == "" {
		ingredients = "-"
	}
	field("Ingredients", ingredients)
	b.WriteString("\n")

	if entry.HasRecipe() {
		wrap := lipgloss.NewStyle().Foreground(p.Primary)
		if width > 4 {
			wrap = wrap.Width(width - 4)
		}
		b.WriteString(wrap.Render(entry.Recipe))
	} else {
		b.WriteString(mutedStyle.Render(NoRecipe))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Secondary).Render("Esc:Back"))

	return b.String()
}

// Summary is the status line for a freshly stored entry.
func Summary(entry *models.MealPlanEntry) string {
	if entry.HasRecipe() {
		return fmt.Sprintf("Drafted %s for %s %s", entry.MealName, entry.Day, entry.MealType)
	}
	return fmt.Sprintf("Added %s (%s) to %s", entry.MealName, entry.MealType, entry.Day)
}
