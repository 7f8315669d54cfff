package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-office/internal/apiclient"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "remove <resource> <id>",
		Short:     "Remove a record",
		Long:      "Remove one record. References to it from other entities are cleared, not deleted.",
		Args:      resourceArgs(2),
		ValidArgs: apiclient.Resources,
		RunE:      runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	msg, err := newAPIClient().Delete(cmd.Context(), args[0], id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"resource": args[0],
			"id":       id,
			"removed":  true,
		})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
