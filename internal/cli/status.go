package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/mealplan"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/services/pantry"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/util"
)

func statusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarise stock, shopping list and meal plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				db, err := e.openStore(ctx)
				if err != nil {
					return err
				}
				tag := e.cfg.Display.Tag()
				pantrySvc := pantry.NewService(db)
				planSvc := mealplan.NewService(db, nil, e.cfg.LLM.Language)

				rows, err := pantrySvc.Snapshot(ctx)
				if err != nil {
					return fmt.Errorf("loading inventory: %w", err)
				}
				shopping, err := pantrySvc.ShoppingList(ctx)
				if err != nil {
					return fmt.Errorf("loading shopping list: %w", err)
				}
				plan, err := planSvc.List(ctx)
				if err != nil {
					return fmt.Errorf("loading meal plan: %w", err)
				}

				var out []string
				var stocked, core int
				var empty []string
				for _, r := range rows {
					if r.Quantity > 0 {
						stocked++
					}
					if r.IsCore {
						core++
						if r.Quantity == 0 {
							empty = append(empty, r.Name)
						}
					}
				}

				bold := color.New(color.Bold)
				out = append(out, bold.Sprint("Inventory"))
				out = append(out, fmt.Sprintf("  %d items, %d in stock, %d core", len(rows), stocked, core))
				if len(empty) > 0 {
					out = append(out, "  "+color.New(color.FgRed).Sprint("Out of: ")+strings.Join(util.SortNames(tag, empty), ", "))
				}

				out = append(out, bold.Sprint("Shopping list"))
				if len(shopping) == 0 {
					out = append(out, "  (empty)")
				} else {
					out = append(out, "  "+strings.Join(util.SortNames(tag, shopping), ", "))
				}

				out = append(out, bold.Sprint("Meal plan"))
				if len(plan) == 0 {
					out = append(out, "  (nothing planned)")
				}
				for _, entry := range plan {
					out = append(out, "  "+entry.Title())
				}

				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, "\n"))
				return nil
			})
		},
	}
}
