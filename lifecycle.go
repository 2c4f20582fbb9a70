package grantmap

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentstation/grantmap/pkg/logging"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/sources"
)

// fetch runs every source concurrently and waits for all of them. Results
// keep the order of srcs.
func fetch(ctx context.Context, srcs []sources.Source) []sources.Result {

	// setup logger
	logger := logging.FromContext(ctx)

	results := make([]sources.Result, len(srcs))
	var wg sync.WaitGroup

	// fetch from all sources concurrently
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					res := sources.Result{Source: src.ID()}
					res.Fail(fmt.Errorf("source %s panicked: %v", src.ID(), r))
					results[i] = res
					logger.Error().Str("source", string(src.ID())).Interface("panic", r).Msg("Source panicked")
				}
			}()

			logger.Info().Str("source", string(src.ID())).Msg("Fetching")

			res := src.Fetch(logging.WithSource(ctx, string(src.ID())))
			if res.Source == "" {
				res.Source = src.ID()
			}
			if res.Failed {
				logger.Warn().
					Err(res.Err).
					Str("source", string(src.ID())).
					Int("programs", len(res.Programs)).
					Msg("Source fetch had errors")
			}
			results[i] = res
		}(i, src)
	}

	// Wait for all goroutines to complete
	wg.Wait()

	return results
}

// merge concatenates results in source order.
func merge(results []sources.Result) []programs.Program {
	n := 0
	for _, r := range results {
		n += len(r.Programs)
	}
	merged := make([]programs.Program, 0, n)
	for _, r := range results {
		merged = append(merged, r.Programs...)
	}
	return merged
}

// filterSources returns the configured sources the run includes.
func (g *grantmap) filterSources(include func(sources.ID) bool) []sources.Source {
	var out []sources.Source
	for _, src := range g.config.sources {
		if include(src.ID()) {
			out = append(out, src)
		}
	}
	return out
}
