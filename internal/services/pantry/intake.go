package pantry

import (
	"context"
	"log/slog"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
)

// Intake moves purchased shopping-list entries into the inventory. A line
// is applied only when Add is set and Quantity is positive: the quantity is
// added to the item (created under Others if missing) and the entry is
// taken off the list. Every other line is left alone. A name that is not on
// the shopping list, or that appears twice, fails for that line only. Lines
// are independent; a failure on one does not undo another.
func (s *Service) Intake(ctx context.Context, lines []IntakeLine) (*IntakeResult, error) {
	res := &IntakeResult{}
	seen := make(map[string]bool, len(lines))

	for _, line := range lines {
		name := models.NormalizeName(line.Name)
		if !line.Add || line.Quantity <= 0 || name == "" {
			res.Skipped = append(res.Skipped, line.Name)
			continue
		}
		if seen[name] {
			res.Failures = append(res.Failures, ItemFailure{Name: name, Rule: RuleInput, Err: ErrDuplicateRow})
			continue
		}
		seen[name] = true

		listed, err := s.shopping.Contains(ctx, name)
		if err != nil {
			slog.Warn("intake failed", "item", name, "error", err)
			res.Failures = append(res.Failures, ItemFailure{Name: name, Rule: RuleIntake, Err: err})
			continue
		}
		if !listed {
			res.Failures = append(res.Failures, ItemFailure{Name: name, Rule: RuleInput, Err: ErrNotOnShoppingList})
			continue
		}

		total, err := s.inventory.Receive(ctx, name, line.Quantity)
		if err != nil {
			slog.Warn("intake failed", "item", name, "error", err)
			res.Failures = append(res.Failures, ItemFailure{Name: name, Rule: RuleIntake, Err: err})
			continue
		}
		if _, err := s.shopping.Remove(ctx, name); err != nil {
			slog.Warn("intake stocked item but kept shopping entry", "item", name, "error", err)
			res.Failures = append(res.Failures, ItemFailure{Name: name, Rule: RuleIntake, Err: err})
			continue
		}

		res.Received = append(res.Received, Received{Name: name, Total: total, Received: line.Quantity})
		slog.Debug("shopping entry received", "item", name, "received", line.Quantity, "total", total)
	}

	if len(res.Received) > 0 {
		slog.Info("shopping intake applied", "received", len(res.Received), "failed", len(res.Failures))
	}
	return res, joinFailures(res.Failures)
}
