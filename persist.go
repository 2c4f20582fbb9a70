package grantmap

import (
	"context"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/logging"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/store"
)

// persist writes ps one at a time. A failed record is logged and counted;
// the run continues with the next one. In dry-run mode nothing is written
// and records are classified by whether the gateway already has them.
func (g *grantmap) persist(ctx context.Context, ps []programs.Program, dryRun bool, report *Report) {
	logger := logging.FromContext(ctx)
	wantsPrevious := dryRun || g.hooks.wantsPrevious()

	for i, p := range ps {
		if err := ctx.Err(); err != nil {
			remaining := len(ps) - i
			report.PersistErrors += remaining
			logger.Error().Err(err).Int("remaining", remaining).Msg("Run cancelled during persist")
			return
		}

		var previous *programs.Program
		if wantsPrevious {
			found, err := g.store.FindByKey(ctx, p.SourceID)
			switch {
			case err == nil:
				previous = found
			case !errors.IsNotFound(err):
				report.PersistErrors++
				logger.Error().
					Err(errors.WrapPersist("find", p.SourceID, err)).
					Str("source_id", p.SourceID).
					Msg("Lookup failed")
				continue
			}
		}

		if dryRun {
			if previous == nil {
				report.Created++
			} else {
				report.Updated++
			}
			continue
		}

		outcome, err := g.store.Upsert(ctx, p)
		if err != nil {
			report.PersistErrors++
			logger.Error().
				Err(errors.WrapPersist("upsert", p.SourceID, err)).
				Str("source_id", p.SourceID).
				Str("source", p.Source).
				Msg("Upsert failed")
			continue
		}

		switch outcome {
		case store.Created:
			report.Created++
			g.hooks.created(p)
		case store.Updated:
			report.Updated++
			old := p
			if previous != nil {
				old = *previous
			}
			g.hooks.updated(old, p)
		}
		logger.Debug().
			Str("source_id", p.SourceID).
			Stringer("outcome", outcome).
			Msg("Persisted")
	}
}
