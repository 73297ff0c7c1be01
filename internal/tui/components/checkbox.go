package components

import (
	"strings"
)

// Checkbox is a boolean form field toggled with space or x.
type Checkbox struct {
	label   string
	checked bool
	focused bool
}

// NewCheckbox creates an unchecked checkbox.
func NewCheckbox(label string) *Checkbox {
	return &Checkbox{label: label}
}

// SetChecked sets the value.
func (c *Checkbox) SetChecked(v bool) *Checkbox {
	c.checked = v
	return c
}

// Checked returns the value.
func (c *Checkbox) Checked() bool {
	return c.checked
}

// Focus sets the focus state.
func (c *Checkbox) Focus(focused bool) {
	c.focused = focused
}

// IsFocused returns the focus state.
func (c *Checkbox) IsFocused() bool {
	return c.focused
}

// HandleKey toggles the box.
func (c *Checkbox) HandleKey(key string) {
	if !c.focused {
		return
	}
	switch key {
	case " ", "space", "x":
		c.checked = !c.checked
	}
}

// Render renders the checkbox.
func (c *Checkbox) Render() string {
	style := valueStyle()
	if c.focused {
		style = focusStyle()
	}
	return labelStyle().Render(c.label+":") + " " + style.Render(box(c.checked))
}

func box(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// Checklist is a multi-select over a list of names. Left and right move the
// cursor, space toggles the name under it. Picks keep the order of options.
type Checklist struct {
	label   string
	options []string
	picked  map[int]bool
	cursor  int
	focused bool
	empty   string
}

// NewChecklist creates a checklist with nothing picked.
func NewChecklist(label string, options []string) *Checklist {
	return &Checklist{
		label:   label,
		options: options,
		picked:  map[int]bool{},
		empty:   "(nothing to choose from)",
	}
}

// SetEmptyText sets what is shown when there are no options.
func (c *Checklist) SetEmptyText(s string) *Checklist {
	c.empty = s
	return c
}

// Focus sets the focus state.
func (c *Checklist) Focus(focused bool) {
	c.focused = focused
}

// IsFocused returns the focus state.
func (c *Checklist) IsFocused() bool {
	return c.focused
}

// Toggle flips option i.
func (c *Checklist) Toggle(i int) {
	if i < 0 || i >= len(c.options) {
		return
	}
	if c.picked[i] {
		delete(c.picked, i)
	} else {
		c.picked[i] = true
	}
}

// Values returns the picked options in option order.
func (c *Checklist) Values() []string {
	var out []string
	for i, opt := range c.options {
		if c.picked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// HandleKey moves the cursor or toggles the option under it.
func (c *Checklist) HandleKey(key string) {
	if !c.focused || len(c.options) == 0 {
		return
	}
	switch key {
	case "left", "h":
		if c.cursor > 0 {
			c.cursor--
		}
	case "right", "l":
		if c.cursor < len(c.options)-1 {
			c.cursor++
		}
	case " ", "space", "x":
		c.Toggle(c.cursor)
	}
}

// Render renders every option with its box, wrapping long lists.
func (c *Checklist) Render() string {
	var b strings.Builder
	b.WriteString(labelStyle().Render(c.label + ":"))
	b.WriteString(" ")

	if len(c.options) == 0 {
		b.WriteString(mutedStyle().Render(c.empty))
		return b.String()
	}

	indent := strings.Repeat(" ", 17)
	lineLen := 0
	for i, opt := range c.options {
		cell := box(c.picked[i]) + " " + opt
		if lineLen > 0 && lineLen+len(cell) > 60 {
			b.WriteString("\n" + indent)
			lineLen = 0
		} else if i > 0 {
			b.WriteString("  ")
		}
		style := valueStyle()
		if c.picked[i] {
			style = style.Bold(true)
		}
		if c.focused && i == c.cursor {
			style = focusStyle().Underline(true)
		}
		b.WriteString(style.Render(cell))
		lineLen += len(cell) + 2
	}
	return b.String()
}
