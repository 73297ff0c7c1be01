package inventory

import (
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/pantry"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
)

// AddForm collects a new inventory item.
type AddForm struct {
	form     *components.Form
	name     *components.Input
	category *components.Select
	quantity *components.Input
	core     *components.Checkbox
}

// NewAddForm creates an empty add-item form. Quantity starts at 1.
func NewAddForm() *AddForm {
	categories := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = string(c)
	}

	f := &AddForm{
		name:     components.NewInput("Item name").SetRequired(true).SetWidth(30).SetPlaceholder("e.g. Milk"),
		category: components.NewSelect("Category", categories),
		quantity: components.NewInput("Quantity").SetRequired(true).SetNumeric(true).SetWidth(6).SetMaxLength(6).SetValue("1"),
		core:     components.NewCheckbox("Core item"),
	}
	f.form = components.NewForm("ADD ITEM TO INVENTORY").
		AddField(f.name).
		AddField(f.category).
		AddField(f.quantity).
		AddField(f.core)
	f.form.SetHelp("Tab:Next  Left/Right:Category  Space:Core  Ctrl+S:Add  Esc:Cancel")
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

// Input converts the fields into a service input. Malformed fields are
// reported on the form and nothing is returned.
func (f *AddForm) Input() (pantry.AddItemInput, bool) {
	f.form.SetError("")
	ok := f.name.Validate()
	qty, err := f.quantity.Int()
	if err != nil {
		f.quantity.SetError(err.Error())
		ok = false
	}
	if !ok {
		f.form.SetError("Please correct the highlighted fields")
		f.form.Reopen()
		return pantry.AddItemInput{}, false
	}
	return pantry.AddItemInput{
		Name:     f.name.Value(),
		Category: f.category.Value(),
		Quantity: qty,
		Core:     f.core.Checked(),
	}, true
}

// Reject shows err on the form and lets the user edit again. Field-level
// validation messages go next to their field; anything else is a storage
// failure and gets the generic notice.
func (f *AddForm) Reject(err error) {
	if models.IsValidation(err) {
		if msg := models.FieldMessage(err, "name"); msg != "" {
			f.name.SetError(msg)
		}
		if msg := models.FieldMessage(err, "quantity"); msg != "" {
			f.quantity.SetError(msg)
		}
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
