package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-office/internal/apiclient"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <resource>",
		Short:     "List records of one entity",
		Long:      "List every record of one entity from the API server. Resources: contacts, clients, agents, estates, contracts, requests, offers.",
		Args:      resourceArgs(1),
		ValidArgs: apiclient.Resources,
		RunE:      runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	records, err := newAPIClient().List(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), records)
	}

	return printTable(cmd.OutOrStdout(), args[0], records)
}
