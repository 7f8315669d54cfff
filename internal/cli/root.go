// Package cli defines the cobra command tree for the estate office.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-office/internal/apiclient"
	"github.com/evcraddock/estate-office/internal/config"
	"github.com/evcraddock/estate-office/internal/db"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eo",
		Short:         "Run and query the estate office back end",
		Long:          "A back office for a real-estate agency. Serve the REST API, prepare the database, and browse contacts, clients, agents, estates, contracts, requests and offers from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite path or postgres:// URL (default: $DATABASE_URL, $DB_PATH or ~/.estate-office/estate.db)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newListCmd(),
		newShowCmd(),
		newRemoveCmd(),
		newStatsCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB connects to the store named by --db, falling back to the
// server configuration. Connecting runs migrations.
func openDB() (*db.DB, error) {
	target := flagDB
	if target == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		target, err = cfg.Target()
		if err != nil {
			return nil, err
		}
	}
	return db.Connect(target)
}

// newAPIClient creates an HTTP client for the estate office API.
func newAPIClient() *apiclient.Client {
	return apiclient.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *db.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// resourceArgs validates that the first argument names an API resource.
func resourceArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return err
		}
		if !apiclient.IsResource(args[0]) {
			return fmt.Errorf("unknown resource %q (want one of %v)", args[0], apiclient.Resources)
		}
		return nil
	}
}
