package models

import (
	"fmt"
	"strings"
)

// Category groups inventory items on screen. It has no behaviour of its own.
type Category string

const (
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryDairy      Category = "Dairy"
	CategoryMeat       Category = "Meat"
	CategoryGrains     Category = "Grains"
	CategoryOthers     Category = "Others"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryVegetables,
	CategoryFruits,
	CategoryDairy,
	CategoryMeat,
	CategoryGrains,
	CategoryOthers,
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against Categories, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", s)}
}

// NormalizeName trims whitespace from a user-supplied item name.
// Names are otherwise case-sensitive keys.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// InventoryItem is one row of the item store.
type InventoryItem struct {
	Name     string
	Category Category
	Quantity int
}

// Validate checks the invariants every stored item must satisfy.
func (i InventoryItem) Validate() error {
	var errs ValidationErrors
	if NormalizeName(i.Name) == "" {
		errs = append(errs, &ValidationError{Field: "name", Message: "is required"})
	}
	if !i.Category.Valid() {
		errs = append(errs, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", i.Category)})
	}
	if i.Quantity < 0 {
		errs = append(errs, &ValidationError{Field: "quantity", Message: "must not be negative"})
	}
	return errs.OrNil()
}

// InventoryRow is one line of the editable inventory grid: the stored item
// plus the core flag and a pending removal request.
type InventoryRow struct {
	Name     string
	Category Category
	Quantity int
	IsCore   bool
	Remove   bool
}

// Item drops the grid-only fields.
func (r InventoryRow) Item() InventoryItem {
	return InventoryItem{Name: r.Name, Category: r.Category, Quantity: r.Quantity}
}

// Changed reports whether r differs from prev in anything the user can edit.
func (r InventoryRow) Changed(prev InventoryRow) bool {
	return r.Remove || r.Quantity != prev.Quantity || r.IsCore != prev.IsCore
}
