// Package inventory provides the editable inventory grid and the add-item form.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/pantry"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/util"
)

// View is the inventory grid. Edits are held in memory until Save hands
// them, together with the snapshot they were made against, to the pantry
// service.
type View struct {
	service *pantry.Service
	tag     language.Tag
	table   *components.Table

	// before is the snapshot as loaded; rows holds the edits. Both are in
	// display order and share indices.
	before []models.InventoryRow
	rows   []models.InventoryRow
	// visible maps table rows to indices of rows under the category filter.
	visible  []int
	category models.Category
	prompt   *components.QuantityPrompt

	loading bool
	err     error
}

// NewView creates a new inventory view. tag sets the sort order of names.
func NewView(service *pantry.Service, tag language.Tag) *View {
	table := components.NewTable([]components.Column{
		{Title: "Item", Width: 28},
		{Title: "Category", Width: 12},
		{Title: "Qty", Width: 5, Align: lipgloss.Right},
		{Title: "Core", Width: 4, Align: lipgloss.Center},
		{Title: "Pending", Width: 14},
	})
	table.SetVisibleRows(15)
	table.Focus(true)

	return &View{service: service, tag: tag, table: table}
}

// Load reads a fresh snapshot and drops any unsaved edits.
func (v *View) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	rows, err := v.service.Snapshot(ctx)
	v.loading = false
	if err != nil {
		v.err = err
		return err
	}

	util.SortBy(v.tag, rows, func(r models.InventoryRow) string { return r.Name })
	v.before = rows
	v.prompt = nil
	v.rows = make([]models.InventoryRow, len(rows))
	copy(v.rows, rows)
	v.refresh()
	return nil
}

// refresh rebuilds the table from rows under the current filter.
func (v *View) refresh() {
	v.visible = v.visible[:0]
	cells := make([][]string, 0, len(v.rows))
	for i, r := range v.rows {
		if v.category != "" && r.Category != v.category {
			continue
		}
		v.visible = append(v.visible, i)
		cells = append(cells, []string{
			r.Name,
			string(r.Category),
			fmt.Sprintf("%d", r.Quantity),
			mark(r.IsCore),
			pending(v.before[i], r),
		})
	}

	selected := v.table.Selected()
	v.table.SetRows(cells)
	v.table.Select(selected)
	for n, i := range v.visible {
		v.table.Mark(n, v.rows[i].Changed(v.before[i]))
	}
}

func mark(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func pending(before, after models.InventoryRow) string {
	switch {
	case after.Remove:
		return "remove"
	case after.Quantity != before.Quantity && after.IsCore != before.IsCore:
		return "qty, core"
	case after.Quantity != before.Quantity:
		return fmt.Sprintf("qty (was %d)", before.Quantity)
	case after.IsCore != before.IsCore:
		return "core"
	default:
		return ""
	}
}

// current returns the edited row under the cursor, or nil.
func (v *View) current() *models.InventoryRow {
	n := v.table.Selected()
	if n < 0 || n >= len(v.visible) {
		return nil
	}
	return &v.rows[v.visible[n]]
}

// Selected returns a copy of the edited row under the cursor.
func (v *View) Selected() (models.InventoryRow, bool) {
	if r := v.current(); r != nil {
		return *r, true
	}
	return models.InventoryRow{}, false
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	v.table.MoveDown()
}

func (v *View) edit(fn func(r *models.InventoryRow)) {
	if r := v.current(); r != nil {
		fn(r)
		v.refresh()
	}
}

// Increment adds one to the selected quantity.
func (v *View) Increment() {
	v.edit(func(r *models.InventoryRow) { r.Quantity++ })
}

// Decrement takes one from the selected quantity, stopping at zero.
func (v *View) Decrement() {
	v.edit(func(r *models.InventoryRow) {
		if r.Quantity > 0 {
			r.Quantity--
		}
	})
}

// EditQuantity opens a prompt for typing the selected quantity.
func (v *View) EditQuantity() {
	n := v.table.Selected()
	if n < 0 || n >= len(v.visible) {
		return
	}
	i := v.visible[n]
	v.prompt = components.NewQuantityPrompt(v.rows[i].Quantity, func(q int) {
		v.rows[i].Quantity = q
		v.refresh()
	})
}

// Editing reports whether the quantity prompt is open.
func (v *View) Editing() bool {
	return v.prompt != nil
}

// HandleEditKey feeds the open quantity prompt.
func (v *View) HandleEditKey(key string) {
	if v.prompt != nil && !v.prompt.HandleKey(key) {
		v.prompt = nil
	}
}

// UsedUp sets the selected quantity to zero.
func (v *View) UsedUp() {
	v.edit(func(r *models.InventoryRow) { r.Quantity = 0 })
}

// ToggleCore flips the core flag of the selected row.
func (v *View) ToggleCore() {
	v.edit(func(r *models.InventoryRow) { r.IsCore = !r.IsCore })
}

// ToggleRemove flips the removal request of the selected row.
func (v *View) ToggleRemove() {
	v.edit(func(r *models.InventoryRow) { r.Remove = !r.Remove })
}

// Revert drops every unsaved edit.
func (v *View) Revert() {
	copy(v.rows, v.before)
	v.refresh()
}

// CycleCategory steps the filter through every category and back to all.
func (v *View) CycleCategory() {
	switch {
	case v.category == "":
		v.category = models.Categories[0]
	default:
		next := models.Category("")
		for i, c := range models.Categories {
			if c == v.category && i+1 < len(models.Categories) {
				next = models.Categories[i+1]
			}
		}
		v.category = next
	}
	v.table.GoToTop()
	v.refresh()
}

// Category returns the active filter, "" for all.
func (v *View) Category() models.Category {
	return v.category
}

// Pending counts rows with unsaved edits.
func (v *View) Pending() int {
	n := 0
	for i := range v.rows {
		if v.rows[i].Changed(v.before[i]) {
			n++
		}
	}
	return n
}

// Dirty reports whether there is anything to save.
func (v *View) Dirty() bool {
	return v.Pending() > 0
}

// Names returns every loaded item name in display order.
func (v *View) Names() []string {
	names := make([]string, len(v.before))
	for i, r := range v.before {
		names[i] = r.Name
	}
	return names
}

// Save reconciles the edits against the loaded snapshot. The caller reloads
// afterwards; rows that failed keep their stored state.
func (v *View) Save(ctx context.Context) (*pantry.ReconcileResult, error) {
	before := make([]models.InventoryRow, len(v.before))
	after := make([]models.InventoryRow, len(v.rows))
	copy(before, v.before)
	copy(after, v.rows)
	return v.service.Reconcile(ctx, before, after)
}

// SetHeight sizes the grid to the space available.
func (v *View) SetHeight(height int) {
	v.table.SetVisibleRows(height - 10)
}

// Render renders the inventory view.
func (v *View) Render(width, height int) string {
	p := components.CurrentPalette()
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary)
	valueStyle := lipgloss.NewStyle().Foreground(p.Primary)
	errStyle := lipgloss.NewStyle().Foreground(p.Error)

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== YOUR INVENTORY ==="))
	b.WriteString("\n\n")

	if v.category != "" {
		b.WriteString(labelStyle.Render("Category: "))
		b.WriteString(valueStyle.Render(string(v.category)))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(v.rows) == 0:
		b.WriteString(labelStyle.Render("Your inventory is empty. Press a to add some items."))
		b.WriteString("\n")
	case v.table.Empty():
		b.WriteString(labelStyle.Render("No items in this category."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.Render())
	}

	if v.prompt != nil {
		b.WriteString("\n")
		b.WriteString(v.prompt.Render())
		b.WriteString("\n")
	}

	if n := v.Pending(); n > 0 {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d unsaved change(s). Ctrl+S saves, u reverts.", n)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if width > 0 && width < 80 {
		b.WriteString(labelStyle.Render("+/-:Qty  e:Set  c:Core  x:Remove  Ctrl+S:Save"))
	} else {
		b.WriteString(labelStyle.Render("+/-:Qty  e:Set qty  0:Used up  c:Core  x:Remove  u:Revert  f:Filter  a:Add  Ctrl+S:Save"))
	}

	return b.String()
}
