package grantmap

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/ingest"
	"github.com/agentstation/grantmap/pkg/logging"
	"github.com/agentstation/grantmap/pkg/sources"
)

// config holds the Grantmap configuration.
type config struct {
	sources  []sources.Source
	logger   *zerolog.Logger
	now      func() time.Time
	newRunID func() string
}

func defaultConfig() *config {
	return &config{
		logger:   logging.Default(),
		now:      func() time.Time { return utc.Now().Time },
		newRunID: uuid.NewString,
	}
}

// Option is a function that configures a Grantmap instance.
type Option func(*config) error

func (g *grantmap) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(g.config); err != nil {
			return fmt.Errorf("applying options: %w", err)
		}
	}
	return nil
}

// WithSources configures the sources in merge order. The first source wins
// when the deduplicator finds the same program in two sources.
func WithSources(srcs ...sources.Source) Option {
	return func(c *config) error {
		seen := make(map[sources.ID]bool, len(srcs))
		for _, src := range srcs {
			if src == nil {
				return errors.NewValidationError("sources", nil, "source must not be nil")
			}
			if seen[src.ID()] {
				return errors.NewValidationError("sources", src.ID(), fmt.Sprintf("source %s configured twice", src.ID()))
			}
			seen[src.ID()] = true
		}
		c.sources = srcs
		return nil
	}
}

// WithLogger configures the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logging.OrNop(logger)
		return nil
	}
}

// WithClock configures the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "clock must not be nil")
		}
		c.now = now
		return nil
	}
}

// WithRunIDFunc configures how run IDs are generated.
func WithRunIDFunc(fn func() string) Option {
	return func(c *config) error {
		if fn == nil {
			return errors.NewValidationError("run_id", nil, "run id func must not be nil")
		}
		c.newRunID = fn
		return nil
	}
}

// IngestOption configures one Ingest run.
type IngestOption = ingest.Option

// Ingest options.
var (
	// WithDryRun classifies records against the gateway without writing.
	WithDryRun = ingest.WithDryRun

	// WithSourceFilter restricts the run to the given sources.
	WithSourceFilter = ingest.WithSources

	// WithIngestTimeout bounds the whole run.
	WithIngestTimeout = ingest.WithTimeout
)
