package pantry

import (
	"context"
	"log/slog"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
)

// Reconcile applies the edits in after to the store, using before (the
// snapshot the grid was loaded from) as the reference. Rows are matched by
// name, so the grid may reorder them freely.
//
// Per item, the first matching rule wins:
//
//  1. Remove: a formerly core item goes on the shopping list, then the item
//     and its core flag are deleted. Nothing else is applied.
//  2. Quantity changed: the new quantity is stored; a core item (or one
//     becoming core) that hit zero goes on the shopping list.
//  3. Core flag changed (evaluated after 2): becoming core adds the flag and,
//     at zero, a shopping entry; leaving core drops the flag only.
//
// A failed write stops the remaining rules for that item only. Nothing is
// rolled back. The returned error joins every ItemFailure; the result is
// always non-nil and lists what did get applied.
func (s *Service) Reconcile(ctx context.Context, before, after []models.InventoryRow) (*ReconcileResult, error) {
	prior := make(map[string]models.InventoryRow, len(before))
	for _, row := range before {
		prior[row.Name] = row
	}

	res := &ReconcileResult{}
	seen := make(map[string]bool, len(after))
	for _, next := range after {
		if seen[next.Name] {
			res.Failures = append(res.Failures, ItemFailure{Name: next.Name, Rule: RuleInput, Err: ErrDuplicateRow})
			continue
		}
		seen[next.Name] = true

		prev, ok := prior[next.Name]
		if !ok {
			res.Failures = append(res.Failures, ItemFailure{Name: next.Name, Rule: RuleInput, Err: ErrNotInSnapshot})
			continue
		}
		if !next.Changed(prev) {
			continue
		}
		if !next.Remove {
			if err := next.Item().Validate(); err != nil {
				res.Failures = append(res.Failures, ItemFailure{Name: next.Name, Rule: RuleInput, Err: err})
				continue
			}
		}

		if f := s.reconcileItem(ctx, prev, next, res); f != nil {
			slog.Warn("reconcile rule failed", "item", f.Name, "rule", f.Rule, "error", f.Err)
			res.Failures = append(res.Failures, *f)
		}
	}

	if res.Changed() {
		slog.Info("inventory reconciled", "summary", res.Summary())
	}
	return res, joinFailures(res.Failures)
}

func (s *Service) reconcileItem(ctx context.Context, prev, next models.InventoryRow, res *ReconcileResult) *ItemFailure {
	name := next.Name
	fail := func(rule string, err error) *ItemFailure {
		return &ItemFailure{Name: name, Rule: rule, Err: err}
	}

	if next.Remove {
		if prev.IsCore {
			if err := s.shopping.Add(ctx, name); err != nil {
				return fail(RuleRemove, err)
			}
			res.addShopping(name)
		}
		if err := s.inventory.Delete(ctx, name); err != nil {
			return fail(RuleRemove, err)
		}
		if err := s.core.Remove(ctx, name); err != nil {
			return fail(RuleRemove, err)
		}
		res.Removed = append(res.Removed, name)
		slog.Debug("inventory item removed", "item", name, "was_core", prev.IsCore)
		return nil
	}

	if next.Quantity != prev.Quantity {
		if err := s.inventory.SetQuantity(ctx, name, next.Quantity); err != nil {
			return fail(RuleQuantity, err)
		}
		res.Updated = append(res.Updated, name)
		slog.Debug("inventory quantity updated", "item", name, "from", prev.Quantity, "to", next.Quantity)

		if next.IsCore && next.Quantity == 0 {
			if err := s.shopping.Add(ctx, name); err != nil {
				return fail(RuleQuantity, err)
			}
			res.addShopping(name)
		}
	}

	if next.IsCore != prev.IsCore {
		if next.IsCore {
			if err := s.core.Add(ctx, name); err != nil {
				return fail(RuleCore, err)
			}
			res.CoreAdded = append(res.CoreAdded, name)
			if next.Quantity == 0 {
				if err := s.shopping.Add(ctx, name); err != nil {
					return fail(RuleCore, err)
				}
				res.addShopping(name)
			}
		} else {
			if err := s.core.Remove(ctx, name); err != nil {
				return fail(RuleCore, err)
			}
			res.CoreRemoved = append(res.CoreRemoved, name)
		}
		slog.Debug("core flag changed", "item", name, "core", next.IsCore)
	}

	return nil
}
