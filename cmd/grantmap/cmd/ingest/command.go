// Package ingest provides the ingest command implementation.
package ingest

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/cmd/application"
	"github.com/agentstation/grantmap/internal/cmd/output"
	"github.com/agentstation/grantmap/pkg/constants"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Flags holds the ingest command flags.
type Flags struct {
	DryRun  bool
	Sources []string
	Timeout time.Duration
}

// NewCommand creates the ingest command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "ingest",
		GroupID: "core",
		Short:   "Fetch, deduplicate and store programs from every source",
		Long: `Ingest runs one full pass of the pipeline:

1. Fetch every configured source concurrently
2. Merge in source order and drop exact and fuzzy duplicates
3. Reject records that fail schema validation
4. Upsert the rest into the persistence gateway
5. Report created, updated and stored totals

A failing source does not stop the run. An unreachable gateway does, and
the command exits non-zero.`,
		Example: `  grantmap ingest                     # Ingest every configured source
  grantmap ingest --dry-run           # Classify against the gateway without writing
  grantmap ingest --source kstartup   # Ingest a single source
  grantmap ingest -o json             # Machine-readable report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd, app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "classify records without writing to the gateway")
	cmd.Flags().StringSliceVarP(&flags.Sources, "source", "s", nil, "limit the run to these sources (bizinfo, kstartup)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", constants.IngestTimeout, "timeout for the whole run")

	return cmd
}

// Run executes one ingestion and writes the report.
func Run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	ctx := cmd.Context()
	logger := app.Logger()

	gm, err := app.Grantmap(ctx)
	if err != nil {
		return err
	}

	opts := []grantmap.IngestOption{
		grantmap.WithDryRun(flags.DryRun),
		grantmap.WithIngestTimeout(flags.Timeout),
	}
	if len(flags.Sources) > 0 {
		ids := make([]sources.ID, 0, len(flags.Sources))
		for _, s := range flags.Sources {
			ids = append(ids, sources.ID(s))
		}
		opts = append(opts, grantmap.WithSourceFilter(ids...))
	}

	report, err := gm.Ingest(ctx, opts...)
	if err != nil {
		return err
	}

	if failed := report.FailedSources(); len(failed) > 0 {
		logger.Warn().
			Interface("sources", failed).
			Msg("Some sources failed; their stored records were left untouched")
	}

	return output.FormatReport(cmd.OutOrStdout(), output.DetectFormat(cmd.OutOrStdout(), app.OutputFormat()), report)
}
