// Package fetch provides the fetch command implementation.
package fetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/grantmap/cmd/application"
	"github.com/agentstation/grantmap/internal/cmd/output"
	"github.com/agentstation/grantmap/internal/config"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/sources"
)

// DefaultLimit is how many programs the preview prints.
const DefaultLimit = 20

// NewCommand creates the fetch command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "fetch <source>",
		GroupID: "core",
		Short:   "Preview normalized programs from one source without storing them",
		Long: `Fetch calls a single upstream, normalizes what it returns and prints the
most viewed programs. Nothing is written to the persistence gateway.

Use -o wide to include the organizer and a short summary.`,
		Example: `  grantmap fetch bizinfo
  grantmap fetch kstartup --limit 5 -o wide
  grantmap fetch bizinfo -o json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: sourceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, app, sources.ID(args[0]), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultLimit, "number of programs to print (0 for all)")

	return cmd
}

// Run fetches id and prints a preview.
func Run(cmd *cobra.Command, app application.Application, id sources.ID, limit int) error {
	ctx := cmd.Context()
	logger := app.Logger()

	if !app.SourceConfig(id).Configured() && id.IsValid() {
		return errors.NewConfigError(id.String(),
			fmt.Sprintf("set %s and %s", config.URLKey(id), config.APIKeyKey(id)),
			errors.ErrNotConfigured)
	}

	srcs, err := app.Sources(id)
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		return errors.NewValidationError("source", id, fmt.Sprintf("unsupported source: %s", id))
	}

	result := srcs[0].Fetch(ctx)
	if result.Failed {
		if len(result.Programs) == 0 {
			return result.Err
		}
		logger.Warn().
			Err(result.Err).
			Int("kept", len(result.Programs)).
			Msg("Fetch failed part way, showing what was parsed")
	}

	ps := result.Programs
	programs.SortByViews(ps)
	if limit > 0 && len(ps) > limit {
		ps = ps[:limit]
	}

	logger.Info().
		Str("source", id.String()).
		Int("fetched", len(result.Programs)).
		Int("dropped", result.Dropped).
		Int("pages", result.Pages).
		Msg("Fetched preview")

	return output.FormatPrograms(cmd.OutOrStdout(), output.DetectFormat(cmd.OutOrStdout(), app.OutputFormat()), ps)
}

func sourceNames() []string {
	ids := sources.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}
