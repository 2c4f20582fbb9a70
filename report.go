package grantmap

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
	"github.com/agentstation/grantmap/pkg/store"
	"github.com/agentstation/grantmap/pkg/validate"
)

// Report summarizes one ingestion run.
type Report struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`
	Duration   string   `json:"duration" yaml:"duration"`
	DryRun     bool     `json:"dry_run" yaml:"dry_run"`

	Fetched               int `json:"fetched" yaml:"fetched"`
	AfterDedupe           int `json:"after_dedupe" yaml:"after_dedupe"`
	ExactDuplicates       int `json:"exact_duplicates" yaml:"exact_duplicates"`
	FuzzyDuplicates       int `json:"fuzzy_duplicates" yaml:"fuzzy_duplicates"`
	CrossSourceDuplicates int `json:"cross_source_duplicates" yaml:"cross_source_duplicates"`
	ValidationFailures    int `json:"validation_failures" yaml:"validation_failures"`
	Created               int `json:"created" yaml:"created"`
	Updated               int `json:"updated" yaml:"updated"`
	PersistErrors         int `json:"persist_errors" yaml:"persist_errors"`

	Inventory `yaml:",inline"`

	Sources    []SourceReport       `json:"sources" yaml:"sources"`
	Rejections []validate.Rejection `json:"rejections,omitempty" yaml:"rejections,omitempty"`
}

// SourceReport is the per-source part of a Report.
// Truncated is set when the page cap left upstream items unread.
type SourceReport struct {
	Source    sources.ID `json:"source" yaml:"source"`
	Fetched   int        `json:"fetched" yaml:"fetched"`
	Dropped   int        `json:"dropped" yaml:"dropped"`
	Pages     int        `json:"pages" yaml:"pages"`
	Failed    bool       `json:"failed" yaml:"failed"`
	Truncated bool       `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Message   string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// FailedSources returns the sources that reported a failure.
func (r *Report) FailedSources() []sources.ID {
	var out []sources.ID
	for _, s := range r.Sources {
		if s.Failed {
			out = append(out, s.Source)
		}
	}
	return out
}

// Inventory is what the gateway holds, re-queried after a run.
type Inventory struct {
	StoredTotal int            `json:"stored_total" yaml:"stored_total"`
	BySource    map[string]int `json:"by_source" yaml:"by_source"`
	ByStatus    map[string]int `json:"by_status" yaml:"by_status"`
}

func sourceReport(r sources.Result) SourceReport {
	return SourceReport{
		Source:    r.Source,
		Fetched:   len(r.Programs),
		Dropped:   r.Dropped,
		Pages:     r.Pages,
		Failed:    r.Failed,
		Truncated: r.Truncated,
		Message:   r.Message,
	}
}

// Inventory re-queries the gateway for stored totals.
func (g *grantmap) Inventory(ctx context.Context) (*Inventory, error) {
	return inventory(ctx, g.store)
}

func inventory(ctx context.Context, st store.Store) (*Inventory, error) {
	total, err := st.Count(ctx, store.Filter{})
	if err != nil {
		return nil, errors.WrapPersist("count", "", err)
	}
	bySource, err := st.GroupByCount(ctx, store.FieldSource)
	if err != nil {
		return nil, errors.WrapPersist("group", "", err)
	}
	byStatus, err := st.GroupByCount(ctx, store.FieldStatus)
	if err != nil {
		return nil, errors.WrapPersist("group", "", err)
	}
	return &Inventory{
		StoredTotal: total,
		BySource:    store.CountsByKey(bySource),
		ByStatus:    store.CountsByKey(byStatus),
	}, nil
}
