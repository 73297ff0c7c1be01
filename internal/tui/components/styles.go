// Package components provides the reusable widgets the pantry views are
// built from: text inputs, selects, checkboxes, forms and tables.
package components

import "github.com/charmbracelet/lipgloss"

// Palette is the handful of colors every component draws with.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Inverse   lipgloss.Color
}

// DefaultPalette matches the herb color scheme.
var DefaultPalette = Palette{
	Primary:   lipgloss.Color("#9BE564"),
	Secondary: lipgloss.Color("#5C9E3A"),
	Accent:    lipgloss.Color("#D7F75B"),
	Muted:     lipgloss.Color("#3F5F2A"),
	Error:     lipgloss.Color("#FF5F56"),
	Inverse:   lipgloss.Color("#101010"),
}

var palette = DefaultPalette

// SaveFailed is the notice shown for storage errors. The details go to the log.
const SaveFailed = "Could not save changes"

// UsePalette switches the colors used by components rendered afterwards.
// The TUI calls it once at startup.
func UsePalette(p Palette) {
	palette = p
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette.Secondary).Width(16)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette.Primary)
}

func focusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette.Accent)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette.Muted)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette.Error)
}

// CurrentPalette returns the palette in use, for views that style their own text.
func CurrentPalette() Palette {
	return palette
}
