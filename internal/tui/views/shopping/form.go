package shopping

import (
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/pantry"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
)

// AddForm puts one name on the shopping list by hand.
type AddForm struct {
	form *components.Form
	name *components.Input
}

// NewAddForm creates an empty form.
func NewAddForm() *AddForm {
	f := &AddForm{
		name: components.NewInput("Item name").SetRequired(true).SetWidth(30).SetPlaceholder("e.g. Bread"),
	}
	f.form = components.NewForm("ADD TO SHOPPING LIST").AddField(f.name)
	f.form.SetHelp("Enter:Add  Esc:Cancel")
	return f
}

// HandleKey forwards a key to the form.
func (f *AddForm) HandleKey(key string) {
	f.form.HandleKey(key)
}

// IsSubmitted reports whether the user asked to save.
func (f *AddForm) IsSubmitted() bool {
	return f.form.IsSubmitted()
}

// IsCancelled reports whether the user backed out.
func (f *AddForm) IsCancelled() bool {
	return f.form.IsCancelled()
}

// Input returns the service input, or false after flagging a blank name.
func (f *AddForm) Input() (pantry.AddShoppingInput, bool) {
	f.form.SetError("")
	if !f.name.Validate() {
		f.form.Reopen()
		return pantry.AddShoppingInput{}, false
	}
	return pantry.AddShoppingInput{Name: f.name.Value()}, true
}

// Reject shows err on the form and lets the user edit again.
func (f *AddForm) Reject(err error) {
	if msg := models.FieldMessage(err, "name"); msg != "" {
		f.name.SetError(msg)
		f.form.SetError(err.Error())
	} else {
		f.form.SetError(components.SaveFailed)
	}
	f.form.Reopen()
}

// Render renders the form.
func (f *AddForm) Render() string {
	return f.form.Render()
}
