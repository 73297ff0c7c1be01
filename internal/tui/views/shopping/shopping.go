// Package shopping provides the shopping list grid, where purchases are
// entered and moved into the inventory.
package shopping

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/pantry"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui/components"
)

// View is the shopping list. Each entry carries a bought quantity and an
// add-to-inventory flag, both starting empty on every load.
type View struct {
	service *pantry.Service
	table   *components.Table
	lines   []pantry.IntakeLine
	prompt  *components.QuantityPrompt

	loading bool
	err     error
}

// NewView creates a new shopping list view.
func NewView(service *pantry.Service) *View {
	table := components.NewTable([]components.Column{
		{Title: "Item", Width: 30},
		{Title: "Bought", Width: 6, Align: lipgloss.Right},
		{Title: "Add to inventory", Width: 16, Align: lipgloss.Center},
	})
	table.SetVisibleRows(15)
	table.Focus(true)

	return &View{service: service, table: table}
}

// Load reads the list in the order entries were added.
func (v *View) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	names, err := v.service.ShoppingList(ctx)
	v.loading = false
	if err != nil {
		v.err = err
		return err
	}

	v.prompt = nil
	v.lines = make([]pantry.IntakeLine, len(names))
	for i, n := range names {
		v.lines[i] = pantry.IntakeLine{Name: n}
	}
	v.refresh()
	return nil
}

func (v *View) refresh() {
	rows := make([][]string, len(v.lines))
	for i, l := range v.lines {
		add := "[ ]"
		if l.Add {
			add = "[x]"
		}
		rows[i] = []string{l.Name, fmt.Sprintf("%d", l.Quantity), add}
	}
	selected := v.table.Selected()
	v.table.SetRows(rows)
	v.table.Select(selected)
	for i, l := range v.lines {
		v.table.Mark(i, l.Add && l.Quantity > 0)
	}
}

func (v *View) current() *pantry.IntakeLine {
	n := v.table.Selected()
	if n < 0 || n >= len(v.lines) {
		return nil
	}
	return &v.lines[n]
}

func (v *View) edit(fn func(l *pantry.IntakeLine)) {
	if l := v.current(); l != nil {
		fn(l)
		v.refresh()
	}
}

// Selected returns the line under the cursor.
func (v *View) Selected() (pantry.IntakeLine, bool) {
	if l := v.current(); l != nil {
		return *l, true
	}
	return pantry.IntakeLine{}, false
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	v.table.MoveDown()
}

// Increment raises the bought quantity of the selected entry.
func (v *View) Increment() {
	v.edit(func(l *pantry.IntakeLine) { l.Quantity++ })
}

// Decrement lowers the bought quantity, stopping at zero.
func (v *View) Decrement() {
	v.edit(func(l *pantry.IntakeLine) {
		if l.Quantity > 0 {
			l.Quantity--
		}
	})
}

// EditQuantity opens a prompt for typing the bought quantity.
func (v *View) EditQuantity() {
	n := v.table.Selected()
	if n < 0 || n >= len(v.lines) {
		return
	}
	v.prompt = components.NewQuantityPrompt(v.lines[n].Quantity, func(q int) {
		v.lines[n].Quantity = q
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

// ToggleAdd flips the add-to-inventory flag of the selected entry.
func (v *View) ToggleAdd() {
	v.edit(func(l *pantry.IntakeLine) { l.Add = !l.Add })
}

// Ready counts the lines Intake would apply.
func (v *View) Ready() int {
	n := 0
	for _, l := range v.lines {
		if l.Add && l.Quantity > 0 {
			n++
		}
	}
	return n
}

// Dirty reports whether any line was edited since the last load.
func (v *View) Dirty() bool {
	for _, l := range v.lines {
		if l.Add || l.Quantity > 0 {
			return true
		}
	}
	return false
}

// Len returns the number of entries on the list.
func (v *View) Len() int {
	return len(v.lines)
}

// Intake sends every line to the pantry service, which applies the flagged
// ones with a positive quantity. The caller reloads afterwards.
func (v *View) Intake(ctx context.Context) (*pantry.IntakeResult, error) {
	lines := make([]pantry.IntakeLine, len(v.lines))
	copy(lines, v.lines)
	return v.service.Intake(ctx, lines)
}

// SetHeight sizes the grid to the space available.
func (v *View) SetHeight(height int) {
	v.table.SetVisibleRows(height - 10)
}

// Render renders the shopping list view.
func (v *View) Render(width, height int) string {
	p := components.CurrentPalette()
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary)
	valueStyle := lipgloss.NewStyle().Foreground(p.Primary)
	errStyle := lipgloss.NewStyle().Foreground(p.Error)

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== SHOPPING LIST ==="))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(v.lines) == 0:
		b.WriteString(labelStyle.Render("Your shopping list is empty."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.Render())
	}

	if v.prompt != nil {
		b.WriteString("\n")
		b.WriteString(v.prompt.Render())
		b.WriteString("\n")
	}

	if n := v.Ready(); n > 0 {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d item(s) ready to move into the inventory. Ctrl+S applies.", n)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if width > 0 && width < 80 {
		b.WriteString(labelStyle.Render("+/-:Qty  e:Set  Space:Add  Ctrl+S:Update"))
	} else {
		b.WriteString(labelStyle.Render("+/-:Bought  e:Set bought  Space:Add to inventory  a:New entry  D:Clear list  Ctrl+S:Update"))
	}

	return b.String()
}
