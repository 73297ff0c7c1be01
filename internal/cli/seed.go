package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database/seed"
)

func seedCmd(flags *globalFlags) *cobra.Command {
	cfg := seed.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty pantry with demo data",
		Long: `Generate a reproducible demo pantry: stocked items, a few core items,
a shopping list and a week of planned meals. Refuses to touch a pantry that
already has items unless --reset is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				db, err := e.openStore(ctx)
				if err != nil {
					return err
				}

				res, err := seed.NewGenerator(db.DB, cfg).Generate(ctx)
				if errors.Is(err, seed.ErrNotEmpty) {
					return fmt.Errorf("%w; run with --reset to replace it", err)
				}
				if err != nil {
					return fmt.Errorf("generating demo data: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items (%d core), %d shopping entries and %d planned meals\n",
					res.Items, res.Core, res.Shopping, res.Meals)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&cfg.Items, "items", cfg.Items, "number of inventory items")
	cmd.Flags().Int64Var(&cfg.RandomSeed, "seed", cfg.RandomSeed, "random seed")
	cmd.Flags().BoolVar(&cfg.Reset, "reset", false, "clear every table first")
	return cmd
}
