package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]Column{{Title: "Item", Width: 10}})

	if !table.Empty() {
		t.Error("Expected new table to be empty")
	}
	if table.RowCount() != 0 {
		t.Errorf("Expected 0 rows, got %d", table.RowCount())
	}
	if table.SelectedRow() != nil {
		t.Error("Expected no selected row on empty table")
	}
}

func TestTable_Navigation(t *testing.T) {
	table := NewTable([]Column{{Title: "Item", Width: 5}})
	table.SetRows([][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}})

	if table.Selected() != 0 {
		t.Errorf("Expected selected=0, got %d", table.Selected())
	}

	table.MoveDown()
	table.MoveDown()
	if table.Selected() != 2 {
		t.Errorf("Expected selected=2, got %d", table.Selected())
	}

	table.MoveUp()
	if table.Selected() != 1 {
		t.Errorf("Expected selected=1, got %d", table.Selected())
	}

	table.GoToBottom()
	table.MoveDown()
	if table.Selected() != 4 {
		t.Errorf("Expected selection to stop at 4, got %d", table.Selected())
	}

	table.GoToTop()
	table.MoveUp()
	if table.Selected() != 0 {
		t.Errorf("Expected selection to stop at 0, got %d", table.Selected())
	}

	if row := table.SelectedRow(); len(row) != 1 || row[0] != "1" {
		t.Errorf("Expected first row, got %v", row)
	}
}

func TestTable_SetRowsKeepsSelectionInRange(t *testing.T) {
	table := NewTable([]Column{{Title: "Item", Width: 5}})
	table.SetRows([][]string{{"a"}, {"b"}, {"c"}})
	table.Select(2)

	table.SetRows([][]string{{"a"}})
	if table.Selected() != 0 {
		t.Errorf("Expected selection clamped to 0, got %d", table.Selected())
	}

	table.Select(-3)
	if table.Selected() != 0 {
		t.Errorf("Expected negative selection clamped to 0, got %d", table.Selected())
	}
}

func TestTable_RenderScrolls(t *testing.T) {
	table := NewTable([]Column{{Title: "Item", Width: 8}})
	table.SetVisibleRows(2)
	table.SetRows([][]string{{"Apple"}, {"Bread"}, {"Cheese"}})
	table.Focus(true)

	output := table.Render()
	if !strings.Contains(output, "Apple") || strings.Contains(output, "Cheese") {
		t.Errorf("Expected only the first page, got:\n%s", output)
	}
	if !strings.Contains(output, "Rows 1-2 of 3") {
		t.Errorf("Expected scroll indicator, got:\n%s", output)
	}

	table.GoToBottom()
	output = table.Render()
	if strings.Contains(output, "Apple") || !strings.Contains(output, "Cheese") {
		t.Errorf("Expected the view to follow the selection, got:\n%s", output)
	}
}

func TestTable_RenderHeadersAndMarks(t *testing.T) {
	table := NewTable([]Column{
		{Title: "Item", Width: 10},
		{Title: "Qty", Width: 4, Align: lipgloss.Right},
	})
	table.SetRows([][]string{{"Milk", "2"}, {"Eggs", "12"}})
	table.Mark(1, true)

	output := table.Render()
	for _, want := range []string{"Item", "Qty", "Milk", "Eggs", "  12"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}

	table.Mark(1, false)
	table.SetRows(nil)
	if !table.Empty() {
		t.Error("Expected table to be empty after SetRows(nil)")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		align lipgloss.Position
		want  string
	}{
		{"Pad left aligned", "ab", 4, lipgloss.Left, "ab  "},
		{"Pad right aligned", "ab", 4, lipgloss.Right, "  ab"},
		{"Center", "ab", 6, lipgloss.Center, "  ab  "},
		{"Truncate", "Cheddar cheese", 6, lipgloss.Left, "Chedd…"},
		{"Truncate multibyte", "Čučoriedky", 5, lipgloss.Left, "Čučo…"},
		{"Zero width", "x", 0, lipgloss.Left, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fit(tt.in, tt.width, tt.align); got != tt.want {
				t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
