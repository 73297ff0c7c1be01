package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/tui"
)

// NewRootCmd returns the pantry command tree. Without a subcommand it starts
// the terminal UI.
func NewRootCmd(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "pantry",
		Short: "Household food inventory and meal planner",
		Long: `Pantry keeps track of what is in stock, what needs buying and what
is planned for the week. Recipes can be drafted from the inventory with an
LLM provider configured in pantry.toml.`,
		Version:       fmt.Sprintf("%s (built %s)", info.Version, info.BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				db, err := e.openStore(ctx)
				if err != nil {
					return err
				}

				tui.Version = info.Version
				tui.BuildTime = info.BuildTime

				slog.Info("pantry starting",
					"version", info.Version,
					"config_path", e.cfgPath,
					"provider", e.cfg.LLM.Provider,
				)
				if err := tui.Run(ctx, db, e.cfg, e.generator(ctx), nil); err != nil {
					return fmt.Errorf("TUI error: %w", err)
				}
				slog.Info("pantry shutdown complete")
				return nil
			})
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to configuration file")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		migrateCmd(flags),
		seedCmd(flags),
		backupCmd(flags),
		doctorCmd(flags),
		statusCmd(flags),
		versionCmd(info),
	)
	return root
}

func versionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pantry %s (built %s)\n", info.Version, info.BuildTime)
		},
	}
}
