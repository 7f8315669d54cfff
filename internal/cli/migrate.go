package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"dialect":  database.Dialect(),
					"migrated": true,
				})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s).\n", database.Dialect())
			return err
		},
	}
}
