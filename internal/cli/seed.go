package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-office/internal/seed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demonstration data",
		Long:  "Insert a demonstration data set (contacts, agents, clients, estates, contracts, requests and offers) into an empty database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			result, err := seed.Run(cmd.Context(), database)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Seeded %d contacts, %d agents, %d clients, %d estates, %d contracts, %d requests and %d offers.\n",
				result.Contacts, result.Agents, result.Clients, result.Estates,
				result.Contracts, result.Requests, result.Offers)
			return err
		},
	}
}
