// Package suggest provides the recipe suggestion panel. Suggestions are
// built from the whole inventory and shown only; nothing is stored.
package suggest

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/mealplan"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
)

// View holds the chosen meal type and the last reply.
type View struct {
	service  *mealplan.Service
	mealType *components.Select

	result  string
	offset  int
	waiting bool
	err     error
}

// NewView creates a suggestion panel set to the first meal type.
func NewView(service *mealplan.Service) *View {
	types := make([]string, len(models.SuggestionMealTypes))
	for i, m := range models.SuggestionMealTypes {
		types[i] = string(m)
	}
	sel := components.NewSelect("Meal type", types)
	sel.Focus(true)
	return &View{service: service, mealType: sel}
}

// MealType returns the chosen meal type.
func (v *View) MealType() models.MealType {
	return models.MealType(v.mealType.Value())
}

// HandleKey changes the meal type with left/right and scrolls the reply
// with up/down.
func (v *View) HandleKey(key string) {
	switch key {
	case "up", "k":
		if v.offset > 0 {
			v.offset--
		}
	case "down", "j":
		if v.offset < len(v.lines())-1 {
			v.offset++
		}
	default:
		v.mealType.HandleKey(key)
	}
}

// Start marks a request as in flight and clears the last reply.
func (v *View) Start() {
	v.waiting = true
	v.result = ""
	v.offset = 0
	v.err = nil
}

// Waiting reports whether a request is in flight.
func (v *View) Waiting() bool {
	return v.waiting
}

// Request asks the service for a suggestion for the chosen meal type.
func (v *View) Request(ctx context.Context) (string, error) {
	return v.service.Suggest(ctx, v.MealType())
}

// Finish records the outcome of a request.
func (v *View) Finish(result string, err error) {
	v.waiting = false
	v.result = result
	v.err = err
}

// Result returns the last reply.
func (v *View) Result() string {
	return v.result
}

func (v *View) lines() []string {
	if v.result == "" {
		return nil
	}
	return strings.Split(v.result, "\n")
}

// Render renders the panel.
func (v *View) Render(width, height int) string {
	p := components.CurrentPalette()
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary)
	valueStyle := lipgloss.NewStyle().Foreground(p.Primary)
	errStyle := lipgloss.NewStyle().Foreground(p.Error)

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== AI RECIPE SUGGESTIONS ==="))
	b.WriteString("\n\n")
	b.WriteString(v.mealType.Render())
	b.WriteString("\n\n")

	switch {
	case v.waiting:
		b.WriteString(labelStyle.Render("Asking for a recipe..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(errStyle.Render("Suggestion failed: " + v.err.Error()))
		b.WriteString("\n")
	case v.result == "":
		b.WriteString(labelStyle.Render("Press Enter for a recipe based on your inventory."))
		b.WriteString("\n")
	default:
		lines := v.lines()[v.offset:]
		if room := height - 10; room > 0 && len(lines) > room {
			lines = lines[:room]
		}
		wrap := valueStyle
		if width > 4 {
			wrap = wrap.Width(width - 4)
		}
		b.WriteString(wrap.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Left/Right:Meal type  Enter:Suggest  Up/Down:Scroll"))

	return b.String()
}
