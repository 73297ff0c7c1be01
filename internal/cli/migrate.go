package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/config"
	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/database"
)

func migrateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				// openStore migrates on the way in.
				db, err := e.openStore(ctx)
				if err != nil {
					return err
				}
				migrator, err := database.NewMigrator(db)
				if err != nil {
					return fmt.Errorf("creating migrator: %w", err)
				}
				version, err := migrator.CurrentVersion(ctx)
				if err != nil {
					return fmt.Errorf("reading schema version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %d of %d\n", version, migrator.LatestVersion())
				return nil
			})
		},
	}

	cmd.AddCommand(migrateStatusCmd(flags), migrateDownCmd(flags))
	return cmd
}

func migrateStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				db, err := openUnmigrated(e)
				if err != nil {
					return err
				}
				migrator, err := database.NewMigrator(db)
				if err != nil {
					return fmt.Errorf("creating migrator: %w", err)
				}
				migrations, err := migrator.Status(ctx)
				if err != nil {
					return fmt.Errorf("reading migration status: %w", err)
				}

				out := cmd.OutOrStdout()
				for _, m := range migrations {
					state := color.New(color.FgYellow).Sprint("pending")
					if m.Applied {
						state = color.New(color.FgGreen).Sprint("applied") + " " + m.AppliedAt.Format("2006-01-02 15:04")
					}
					fmt.Fprintf(out, "%03d  %-30s %s\n", m.Version, m.Description, state)
				}
				return nil
			})
		},
	}
}

func migrateDownCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				db, err := openUnmigrated(e)
				if err != nil {
					return err
				}
				migrator, err := database.NewMigrator(db)
				if err != nil {
					return fmt.Errorf("creating migrator: %w", err)
				}
				result, err := migrator.MigrateDown(ctx)
				if err != nil {
					return fmt.Errorf("rolling back: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back version %d, schema is at version %d\n", result.FromVersion, result.ToVersion)
				return nil
			})
		},
	}
}

// openUnmigrated opens the database without applying migrations.
func openUnmigrated(e *env) (*database.DB, error) {
	dbPath, err := config.EnsureDataDir(e.cfg)
	if err != nil {
		return nil, fmt.Errorf("ensuring data directory: %w", err)
	}
	db, err := database.Open(dbPath, noBackups(e.cfg.Database), "")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	e.closers = append(e.closers, db)
	return db, nil
}

// noBackups disables the backup schedule for short-lived commands.
func noBackups(cfg config.DatabaseConfig) config.DatabaseConfig {
	cfg.BackupIntervalHours = 0
	return cfg
}
