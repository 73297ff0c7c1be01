package llm

import (
	"fmt"
	"strings"
)

func systemPrompt(language string) string {
	return fmt.Sprintf("You are a helpful cooking assistant. Always answer in %s.", language)
}

// DraftPrompt asks for a dish name and a short recipe built from the
// selected ingredients.
func DraftPrompt(language, mealType string, ingredients []string) Prompt {
	user := fmt.Sprintf(`You are an AI chef. I have these ingredients: %s.
Suggest a dish (its name) and a short recipe (the steps) in %s.
Meal type: %s.
Reply with a short text containing the name and the steps.`,
		strings.Join(ingredients, ", "), language, mealType)

	return Prompt{System: systemPrompt(language), User: user}
}

// SuggestPrompt asks for one recipe idea given everything in stock and the
// items the household always wants on hand.
func SuggestPrompt(language, mealType string, inventory, core []string) Prompt {
	user := fmt.Sprintf(`You are an AI assistant helping people find the best recipes
for %s based on the ingredients they have.
Available ingredients: %s
Core ingredients that should always be in stock: %s

Suggest a suitable recipe in %s (with steps) that fits the chosen meal type: %s.
Be creative and concise, and include short preparation steps.`,
		strings.ToLower(mealType), listOrNone(inventory), listOrNone(core), language, mealType)

	return Prompt{System: systemPrompt(language), User: user}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
