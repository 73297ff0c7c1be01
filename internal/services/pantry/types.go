package pantry

import (
	"errors"
	"fmt"
	"strings"
)

// AddItemInput is the add-to-inventory form.
type AddItemInput struct {
	Name     string `form:"name" validate:"required,max=100"`
	Category string `form:"category" validate:"category"`
	Quantity int    `form:"quantity" validate:"min=1"`
	Core     bool   `form:"core"`
}

// AddShoppingInput is the manual shopping-list form.
type AddShoppingInput struct {
	Name string `form:"name" validate:"required,max=100"`
}

// IntakeLine is one edited row of the shopping list grid.
type IntakeLine struct {
	Name     string
	Quantity int
	Add      bool
}

// Received is an intake line that reached the inventory.
type Received struct {
	Name     string
	Total    int
	Received int
}

// IntakeResult reports what Intake did with each line.
type IntakeResult struct {
	Received []Received
	Skipped  []string
	Failures []ItemFailure
}

// ReconcileResult reports the mutations applied by Reconcile.
type ReconcileResult struct {
	Removed     []string
	Updated     []string
	CoreAdded   []string
	CoreRemoved []string
	Shopping    []string
	Failures    []ItemFailure
}

// Changed reports whether any mutation was applied.
func (r *ReconcileResult) Changed() bool {
	return len(r.Removed)+len(r.Updated)+len(r.CoreAdded)+len(r.CoreRemoved)+len(r.Shopping) > 0
}

// Summary is a one-line description for status messages.
func (r *ReconcileResult) Summary() string {
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(len(r.Updated), "updated")
	add(len(r.Removed), "removed")
	add(len(r.CoreAdded), "marked core")
	add(len(r.CoreRemoved), "unmarked core")
	add(len(r.Shopping), "to shopping list")
	add(len(r.Failures), "failed")
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

func (r *ReconcileResult) addShopping(name string) {
	for _, n := range r.Shopping {
		if n == name {
			return
		}
	}
	r.Shopping = append(r.Shopping, name)
}

// Rule names used in ItemFailure and log lines.
const (
	RuleRemove   = "remove"
	RuleQuantity = "quantity"
	RuleCore     = "core"
	RuleIntake   = "intake"
	RuleInput    = "input"
)

var (
	// ErrNotInSnapshot marks an edited row whose name was not in the prior snapshot.
	ErrNotInSnapshot = errors.New("item was not in the loaded inventory")
	// ErrDuplicateRow marks a second edited row for the same name.
	ErrDuplicateRow = errors.New("item appears more than once")
	// ErrNotOnShoppingList marks an intake line with no matching shopping entry.
	ErrNotOnShoppingList = errors.New("item is not on the shopping list")
)

// ItemFailure is a rule that could not be applied to one item. Rules
// already applied to that item, and to other items, stay applied.
type ItemFailure struct {
	Name string
	Rule string
	Err  error
}

func (f ItemFailure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Name, f.Rule, f.Err)
}

func (f ItemFailure) Unwrap() error {
	return f.Err
}

func joinFailures(failures []ItemFailure) error {
	if len(failures) == 0 {
		return nil
	}
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
