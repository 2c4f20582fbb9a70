// Package dedupe collapses duplicate programs within and across sources.
//
// Two keys identify a record. The exact key is (source, source ID). The
// fuzzy key is the comparison form of the title and organizer plus the
// start date, and catches the same announcement published by two sources
// under different identifiers. The first occurrence of either key wins, so
// the merge order of the input decides which source's record survives.
package dedupe

import (
	"context"
	"time"

	"github.com/agentstation/grantmap/internal/utils/ptr"
	"github.com/agentstation/grantmap/pkg/constants"
	"github.com/agentstation/grantmap/pkg/logging"
	"github.com/agentstation/grantmap/pkg/normalize"
	"github.com/agentstation/grantmap/pkg/programs"
)

// Stats counts what one Dedupe call dropped.
type Stats struct {
	Input           int `json:"input" yaml:"input"`
	Output          int `json:"output" yaml:"output"`
	ExactDuplicates int `json:"exact_duplicates" yaml:"exact_duplicates"`
	FuzzyDuplicates int `json:"fuzzy_duplicates" yaml:"fuzzy_duplicates"`
	// CrossSource counts fuzzy drops whose surviving record came from
	// another source.
	CrossSource int `json:"cross_source" yaml:"cross_source"`
}

// FuzzyKey returns the cross-source comparison key of p.
func FuzzyKey(p programs.Program) string {
	date := constants.NoDateKey
	if p.StartDate != nil {
		date = p.StartDate.UTC().Format(time.DateOnly)
	}
	return normalize.CompareKey(p.Title) + "|" + normalize.CompareKey(ptr.Deref(p.Organizer)) + "|" + date
}

// Dedupe returns ps without duplicates, preserving first-occurrence order.
// It logs through the logger carried by ctx. Dedupe is idempotent.
func Dedupe(ctx context.Context, ps []programs.Program) ([]programs.Program, Stats) {
	log := logging.FromContext(ctx)
	stats := Stats{Input: len(ps)}

	seenExact := make(map[string]struct{}, len(ps))
	seenFuzzy := make(map[string]programs.Program, len(ps))
	out := make([]programs.Program, 0, len(ps))

	for _, p := range ps {
		exact := p.ExactKey()
		if _, dup := seenExact[exact]; dup {
			stats.ExactDuplicates++
			log.Debug().
				Str("source", p.Source).
				Str("source_id", p.SourceID).
				Msg("Dropped exact duplicate")
			continue
		}
		seenExact[exact] = struct{}{}

		fuzzy := FuzzyKey(p)
		if kept, dup := seenFuzzy[fuzzy]; dup {
			stats.FuzzyDuplicates++
			if kept.Source != p.Source {
				stats.CrossSource++
			}
			log.Warn().
				Str("source", p.Source).
				Str("source_id", p.SourceID).
				Str("kept_source", kept.Source).
				Str("kept_source_id", kept.SourceID).
				Str("title", p.Title).
				Msg("Dropped fuzzy duplicate")
			continue
		}
		seenFuzzy[fuzzy] = p

		out = append(out, p)
	}

	stats.Output = len(out)
	log.Info().
		Int("input", stats.Input).
		Int("output", stats.Output).
		Int("exact", stats.ExactDuplicates).
		Int("fuzzy", stats.FuzzyDuplicates).
		Msgf("Deduplicated %d → %d", stats.Input, stats.Output)
	return out, stats
}
