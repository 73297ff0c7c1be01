package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func backupCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a backup copy of the database now",
		Long: `Write a consistent copy of the database into the backups directory next
to it. Backups older than database.backup_retention_days are pruned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, flags, func(ctx context.Context, e *env) error {
				db, err := e.openStore(ctx)
				if err != nil {
					return err
				}
				path, err := db.Backup(ctx)
				if err != nil {
					return fmt.Errorf("backing up: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}
}
