// Package seed fills a pantry database with demo data.
package seed

import "github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"

// Staples are the curated names for categories the faker does not cover.
// Fruits and Vegetables come from gofakeit.
var Staples = map[models.Category][]string{
	models.CategoryDairy: {
		"Milk", "Butter", "Yogurt", "Cheddar", "Mozzarella", "Cream",
		"Sour cream", "Cottage cheese", "Eggs", "Parmesan",
	},
	models.CategoryMeat: {
		"Chicken breast", "Ground beef", "Pork chops", "Bacon", "Ham",
		"Sausages", "Turkey", "Salmon", "Tuna", "Lamb",
	},
	models.CategoryGrains: {
		"Rice", "Pasta", "Oats", "Flour", "Bread", "Quinoa", "Couscous",
		"Barley", "Tortillas", "Cornmeal",
	},
	models.CategoryOthers: {
		"Salt", "Sugar", "Olive oil", "Honey", "Coffee", "Tea", "Vinegar",
		"Soy sauce", "Baking powder", "Peanut butter", "Black pepper",
	},
}

// CoreCandidates are staples a household typically flags as always-in-stock.
var CoreCandidates = []string{
	"Milk", "Eggs", "Butter", "Bread", "Rice", "Pasta", "Salt", "Olive oil", "Coffee",
}
