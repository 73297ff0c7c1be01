package mealplan

import (
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/mealplan"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
)

// EntryForm collects a meal plan entry. Ctrl+S stores it as typed; Ctrl+G
// asks the text generator for a recipe first.
type EntryForm struct {
	form        *components.Form
	day         *components.Select
	mealType    *components.Select
	ingredients *components.Checklist
	meal        *components.Input
	draft       bool
}

// NewEntryForm creates a form opened on day, offering ingredients as the
// checklist options.
func NewEntryForm(day models.Day, ingredients []string) *EntryForm {
	days := make([]string, len(models.Days))
	for i, d := range models.Days {
		days[i] = string(d)
	}
	types := make([]string, len(models.MealTypes))
	for i, m := range models.MealTypes {
		types[i] = string(m)
	}

	f := &EntryForm{
		day:         components.NewSelect("Day", days).SetValue(string(day)),
		mealType:    components.NewSelect("Meal type", types),
		ingredients: components.NewChecklist("Ingredients", ingredients).SetEmptyText("(inventory is empty)"),
		meal:        components.NewInput("Meal name").SetWidth(30).SetPlaceholder("required unless drafted"),
	}
	f.form = components.NewForm("PLAN A MEAL").
		AddField(f.day).
		AddField(f.mealType).
		AddField(f.ingredients).
		AddField(f.meal)
	f.form.SetHelp("Tab:Next  Left/Right:Choose  Space:Pick  Ctrl+S:Add  Ctrl+G:Draft with AI  Esc:Cancel")
	return f
}

// HandleKey forwards a key to the form.
func (f *EntryForm) HandleKey(key string) {
	switch key {
	case "ctrl+g":
		f.draft = true
		f.form.HandleKey("ctrl+s")
	case "ctrl+s", "enter":
		f.draft = false
		f.form.HandleKey(key)
	default:
		f.form.HandleKey(key)
	}
}

// IsSubmitted reports whether the user asked to save or draft.
func (f *EntryForm) IsSubmitted() bool {
	return f.form.IsSubmitted()
}

// IsCancelled reports whether the user backed out.
func (f *EntryForm) IsCancelled() bool {
	return f.form.IsCancelled()
}

// IsDraft reports whether the submission asked for a generated recipe.
func (f *EntryForm) IsDraft() bool {
	return f.draft
}

// Input converts the fields into a service input. A manual entry needs a
// meal name; a draft does not.
func (f *EntryForm) Input() (mealplan.EntryInput, bool) {
	f.form.SetError("")
	f.meal.SetError("")
	if !f.draft && f.meal.Value() == "" {
		f.meal.SetError("Required")
		f.form.SetError("Enter a meal name, or press Ctrl+G to draft one")
		f.form.Reopen()
		return mealplan.EntryInput{}, false
	}
	return mealplan.EntryInput{
		Day:         f.day.Value(),
		MealType:    f.mealType.Value(),
		MealName:    f.meal.Value(),
		Ingredients: f.ingredients.Values(),
	}, true
}

// Reject shows err on the form and lets the user edit again. Generator
// failures are reported by the caller as well; the form only notes them.
func (f *EntryForm) Reject(err error) {
	switch {
	case models.IsValidation(err):
		if msg := models.FieldMessage(err, "meal"); msg != "" {
			f.meal.SetError(msg)
		}
		f.form.SetError(err.Error())
	case mealplan.IsGenerationError(err):
		f.form.SetError("Recipe generation failed. Nothing was saved.")
	default:
		f.form.SetError(components.SaveFailed)
	}
	f.form.Reopen()
}

// Render renders the form.
func (f *EntryForm) Render() string {
	return f.form.Render()
}
