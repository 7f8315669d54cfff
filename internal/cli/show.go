package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-office/internal/apiclient"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "show <resource> <id>",
		Short:     "Show one record",
		Long:      "Show one record with its related entities, e.g. a contract with its estate, agent, tenant and renter.",
		Args:      resourceArgs(2),
		ValidArgs: apiclient.Resources,
		RunE:      runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	record, err := newAPIClient().Get(cmd.Context(), args[0], id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), record)
	}

	return printRecord(cmd.OutOrStdout(), record, "")
}

// parseID parses a positive record ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}
