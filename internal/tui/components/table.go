package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table is a scrolling, single-selection table of pre-formatted cells.
type Table struct {
	columns     []Column
	rows        [][]string
	marked      map[int]bool
	selected    int
	offset      int
	visibleRows int
	focused     bool
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:     columns,
		rows:        [][]string{},
		marked:      map[int]bool{},
		visibleRows: 10,
	}
}

// SetRows replaces the table data, keeping the selection in range.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.marked = map[int]bool{}
	t.clamp()
}

// Mark highlights row i as pending a change, independent of the selection.
func (t *Table) Mark(i int, on bool) {
	if on {
		t.marked[i] = true
	} else {
		delete(t.marked, i)
	}
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	t.visibleRows = n
	t.clamp()
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// Select moves the selection to row i, clamped to the data.
func (t *Table) Select(i int) {
	t.selected = i
	t.clamp()
}

// SelectedRow returns the currently selected row data.
func (t *Table) SelectedRow() []string {
	if t.selected >= 0 && t.selected < len(t.rows) {
		return t.rows[t.selected]
	}
	return nil
}

// MoveUp moves the selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
		t.clamp()
	}
}

// MoveDown moves the selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		t.clamp()
	}
}

// GoToTop goes to the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom goes to the last row.
func (t *Table) GoToBottom() {
	t.selected = len(t.rows) - 1
	t.clamp()
}

// clamp keeps selected inside the rows and scrolls offset so it is visible.
func (t *Table) clamp() {
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.visibleRows {
		t.offset = t.selected - t.visibleRows + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// Render renders the header, a rule and the visible rows.
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(palette.Accent)
	rowStyle := lipgloss.NewStyle().Foreground(palette.Primary)
	rowAltStyle := lipgloss.NewStyle().Foreground(palette.Secondary)
	markedStyle := lipgloss.NewStyle().Foreground(palette.Accent).Italic(true)
	selectedStyle := lipgloss.NewStyle().Background(palette.Primary).Foreground(palette.Inverse)
	borderStyle := lipgloss.NewStyle().Foreground(palette.Secondary)

	totalWidth := 0
	for _, col := range t.columns {
		totalWidth += col.Width + 3
	}

	var b strings.Builder
	b.WriteString(t.renderRow(t.headers(), headerStyle))
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(strings.Repeat("─", totalWidth)))
	b.WriteString("\n")

	end := t.offset + t.visibleRows
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.offset; i < end; i++ {
		style := rowStyle
		switch {
		case i == t.selected && t.focused:
			style = selectedStyle
		case t.marked[i]:
			style = markedStyle
		case (i-t.offset)%2 == 1:
			style = rowAltStyle
		}
		b.WriteString(t.renderRow(t.rows[i], style))
		b.WriteString("\n")
	}

	if len(t.rows) > t.visibleRows {
		b.WriteString(borderStyle.Render(fmt.Sprintf("Rows %d-%d of %d", t.offset+1, end, len(t.rows))))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = style.Render(fit(cell, col.Width, col.Align))
	}
	return " " + strings.Join(parts, " │ ") + " "
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	pad := width - lipgloss.Width(s)
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + s
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
