package grantmap

import (
	"context"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/grantmap/pkg/constants"
	"github.com/agentstation/grantmap/pkg/dedupe"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/ingest"
	"github.com/agentstation/grantmap/pkg/logging"
	"github.com/agentstation/grantmap/pkg/validate"
)

// Ingest runs one ingestion pass. The only error it returns for a started
// run is *errors.FatalError, when the gateway cannot be reached; everything
// else is reported in the Report.
func (g *grantmap) Ingest(ctx context.Context, opts ...IngestOption) (*Report, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := ingest.New(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {} // No-op cancel if no timeout
	}
	defer cancel()

	started := g.config.now()
	report := &Report{
		RunID:     g.config.newRunID(),
		StartedAt: utc.Time{Time: started},
		DryRun:    options.DryRun,
	}
	logger := g.config.logger.With().Str("run_id", report.RunID).Logger()
	ctx = logging.WithLogger(ctx, &logger)

	// Step 3: The gateway must be reachable before any work is done
	pingCtx, cancelPing := context.WithTimeout(ctx, constants.DefaultPingTimeout)
	err := g.store.Ping(pingCtx)
	cancelPing()
	if err != nil {
		logger.Error().Err(err).Msg("Persistence gateway unreachable, aborting run")
		return nil, &errors.FatalError{Stage: "ping", Err: err}
	}

	// Step 4: Fetch from all sources
	srcs := g.filterSources(options.Includes)
	if len(srcs) == 0 {
		logger.Warn().Msg("No sources selected")
	}
	results := fetch(ctx, srcs)
	report.Sources = make([]SourceReport, 0, len(results))
	for _, r := range results {
		report.Sources = append(report.Sources, sourceReport(r))
	}

	// Step 5: Merge in source order
	merged := merge(results)
	report.Fetched = len(merged)

	// Step 6: Deduplicate
	unique, stats := dedupe.Dedupe(ctx, merged)
	report.AfterDedupe = stats.Output
	report.ExactDuplicates = stats.ExactDuplicates
	report.FuzzyDuplicates = stats.FuzzyDuplicates
	report.CrossSourceDuplicates = stats.CrossSource

	// Step 7: Validate
	valid, rejected := validate.ValidateAll(unique)
	report.ValidationFailures = len(rejected)
	report.Rejections = rejected
	for _, r := range rejected {
		logger.Warn().
			Err(r.Err()).
			Str("source_id", r.SourceID).
			Str("source", r.Source).
			Msg("Rejected by schema validation")
	}

	// Step 8: Persist
	g.persist(ctx, valid, options.DryRun, report)

	// Step 9: Re-query the gateway for the report. The run deadline may have
	// passed already, so the query gets its own.
	reportCtx, cancelReport := context.WithTimeout(context.WithoutCancel(ctx), constants.ReportTimeout)
	inv, err := inventory(reportCtx, g.store)
	cancelReport()
	if err != nil {
		logger.Error().Err(err).Msg("Could not re-query stored totals")
	} else {
		report.Inventory = *inv
	}

	finished := g.config.now()
	report.FinishedAt = utc.Time{Time: finished}
	report.Duration = finished.Sub(started).Round(time.Millisecond).String()

	logger.Info().
		Int("fetched", report.Fetched).
		Int("after_dedupe", report.AfterDedupe).
		Int("rejected", report.ValidationFailures).
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("persist_errors", report.PersistErrors).
		Int("stored_total", report.StoredTotal).
		Bool("dry_run", report.DryRun).
		Msg("Ingestion complete")

	return report, nil
}
