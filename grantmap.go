// Package grantmap aggregates government support program announcements from
// independent upstream sources into one duplicate-free record set and
// persists it through an idempotent upsert.
//
// A run moves through fixed stages: every source is fetched concurrently,
// the results are merged in configured source order, deduplicated,
// validated, and finally written one record at a time through the
// persistence gateway. Only an unreachable gateway aborts a run; source,
// validation and per-record persistence failures are counted in the Report.
//
//	gm, err := grantmap.New(st, grantmap.WithSources(biz, ks), grantmap.WithLogger(&log))
//	report, err := gm.Ingest(ctx, grantmap.WithDryRun(false))
package grantmap

import (
	"context"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
	"github.com/agentstation/grantmap/pkg/store"
)

// Grantmap runs ingestion against one persistence gateway.
type Grantmap interface {
	// Ingest runs FETCH_ALL → MERGE → DEDUPE → VALIDATE → PERSIST → REPORT.
	Ingest(ctx context.Context, opts ...IngestOption) (*Report, error)

	// Inventory re-queries the gateway for stored totals.
	Inventory(ctx context.Context) (*Inventory, error)

	// Sources returns the configured source IDs in merge order.
	Sources() []sources.ID

	// OnProgramCreated registers a callback for newly stored programs.
	OnProgramCreated(ProgramCreatedHook)

	// OnProgramUpdated registers a callback for overwritten programs.
	OnProgramUpdated(ProgramUpdatedHook)
}

var _ Grantmap = (*grantmap)(nil)

// grantmap is the internal implementation of the Grantmap interface.
type grantmap struct {
	store  store.Store
	config *config
	hooks  *hooks
}

// New creates a Grantmap writing to st.
func New(st store.Store, opts ...Option) (Grantmap, error) {
	if st == nil {
		return nil, errors.NewConfigError("grantmap", "a persistence gateway is required", nil)
	}

	gm := &grantmap{
		store:  st,
		config: defaultConfig(),
		hooks:  newHooks(),
	}
	if err := gm.options(opts...); err != nil {
		return nil, err
	}
	return gm, nil
}

// Sources returns the configured source IDs in merge order.
func (g *grantmap) Sources() []sources.ID {
	ids := make([]sources.ID, 0, len(g.config.sources))
	for _, src := range g.config.sources {
		ids = append(ids, src.ID())
	}
	return ids
}

// OnProgramCreated registers a callback for newly stored programs.
func (g *grantmap) OnProgramCreated(fn ProgramCreatedHook) {
	g.hooks.OnProgramCreated(fn)
}

// OnProgramUpdated registers a callback for overwritten programs.
func (g *grantmap) OnProgramUpdated(fn ProgramUpdatedHook) {
	g.hooks.OnProgramUpdated(fn)
}
