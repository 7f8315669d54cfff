package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-office/internal/apiclient"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "stats [kind]",
		Short:     "Show dashboard statistics",
		Long:      "Show one dashboard aggregate. Kinds: overall (default), clients, estates, contracts, requests, offers, recent-activities.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: apiclient.StatsKinds,
		RunE:      runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	kind := "overall"
	if len(args) == 1 {
		kind = args[0]
	}

	raw, err := newAPIClient().Stats(cmd.Context(), kind)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), raw)
	}

	if kind == "recent-activities" {
		var activities []map[string]any
		if err := json.Unmarshal(raw, &activities); err != nil {
			return fmt.Errorf("decoding activities: %w", err)
		}
		return printActivities(cmd.OutOrStdout(), activities)
	}

	var stats map[string]any
	if err := json.Unmarshal(raw, &stats); err != nil {
		return fmt.Errorf("decoding statistics: %w", err)
	}
	return printRecord(cmd.OutOrStdout(), stats, "")
}

// printActivities prints the recent activity feed, newest first.
func printActivities(out io.Writer, activities []map[string]any) error {
	if len(activities) == 0 {
		_, err := fmt.Fprintln(out, "No recent activity.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, a := range activities {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatDate(a["date"]), formatValue(a["type"]), truncate(formatValue(a["title"]), 40), formatValue(a["description"])); err != nil {
			return fmt.Errorf("writing activity: %w", err)
		}
	}
	return w.Flush()
}
