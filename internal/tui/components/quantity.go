package components

import "strconv"

// QuantityPrompt is a digits-only input opened over a grid row. Enter
// hands the typed number to apply, esc drops it.
type QuantityPrompt struct {
	input *Input
	apply func(int)
}

// NewQuantityPrompt opens a prompt prefilled with current.
func NewQuantityPrompt(current int, apply func(int)) *QuantityPrompt {
	input := NewInput("Quantity").
		SetNumeric(true).
		SetMaxLength(6).
		SetWidth(8).
		SetValue(strconv.Itoa(current))
	input.Focus(true)
	return &QuantityPrompt{input: input, apply: apply}
}

// Value returns the text typed so far.
func (q *QuantityPrompt) Value() string {
	return q.input.Value()
}

// HandleKey feeds key to the prompt and reports whether it is still open.
func (q *QuantityPrompt) HandleKey(key string) bool {
	switch key {
	case "esc":
		return false
	case "enter":
		n, err := q.input.Int()
		if err != nil {
			q.input.SetError(err.Error())
			return true
		}
		q.apply(n)
		return false
	}
	q.input.SetError("")
	q.input.HandleKey(key)
	return true
}

// Render renders the input with its key hints.
func (q *QuantityPrompt) Render() string {
	return q.input.Render() + "  " + mutedStyle().Render("Enter:Set  Esc:Cancel")
}
