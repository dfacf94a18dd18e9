package storectl

import (
	"database/sql"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/catalog/storage/sqlite"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ensureDir(opts.DBPath); err != nil {
				return err
			}
			db, err := sql.Open("sqlite", opts.DBPath)
			if err != nil {
				return fmt.Errorf("open sqlite db: %w", err)
			}
			defer db.Close()
			applied, err := sqlite.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(out, "applied %s\n", name)
			}
			return nil
		},
	}
}
