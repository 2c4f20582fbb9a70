// Package sources provides the sources command implementation.
package sources

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/grantmap/cmd/application"
	"github.com/agentstation/grantmap/internal/cmd/output"
	"github.com/agentstation/grantmap/internal/cmd/table"
	"github.com/agentstation/grantmap/internal/config"
	"github.com/agentstation/grantmap/internal/sources/registry"
)

// NewCommand creates the sources command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "sources",
		GroupID: "management",
		Short:   "List upstream sources and whether they are configured",
		Long: `Sources lists every registered upstream together with the environment
variables it reads. A source missing its URL or key is skipped by ingest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids := registry.List()
			statuses := make([]table.SourceStatus, 0, len(ids))
			for _, id := range ids {
				statuses = append(statuses, table.SourceStatus{
					ID:         id,
					URLKey:     config.URLKey(id),
					KeyKey:     config.APIKeyKey(id),
					Configured: app.SourceConfig(id).Configured(),
				})
			}
			return output.FormatSources(cmd.OutOrStdout(), output.DetectFormat(cmd.OutOrStdout(), app.OutputFormat()), statuses)
		},
	}
}
