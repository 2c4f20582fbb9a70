// Package stats provides the stats command implementation.
package stats

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/grantmap/cmd/application"
	"github.com/agentstation/grantmap/internal/cmd/output"
)

// NewCommand creates the stats command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		GroupID: "core",
		Short:   "Show stored program counts by source and status",
		Long: `Stats re-queries the persistence gateway and prints the stored total
together with counts grouped by source and by status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			gm, err := app.Grantmap(ctx)
			if err != nil {
				return err
			}
			inv, err := gm.Inventory(ctx)
			if err != nil {
				return err
			}
			return output.FormatInventory(cmd.OutOrStdout(), output.DetectFormat(cmd.OutOrStdout(), app.OutputFormat()), inv)
		},
	}
}
