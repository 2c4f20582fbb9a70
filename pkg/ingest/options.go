// Package ingest provides the options that control one ingestion run.
package ingest

import (
	"fmt"
	"time"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Options controls a Grantmap.Ingest run.
type Options struct {
	DryRun  bool          // Classify against the gateway without writing
	Timeout time.Duration // Timeout for the entire run, 0 for none

	Sources []sources.ID // Which sources to run (empty means all configured)
}

// Option is a function that configures ingest Options.
type Option func(*Options)

// Defaults returns the default ingest options.
func Defaults() *Options {
	return &Options{
		DryRun:  false,
		Timeout: 0,
		Sources: nil,
	}
}

// New returns the defaults with opts applied.
func New(opts ...Option) *Options {
	return Defaults().Apply(opts...)
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   o.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	for _, id := range o.Sources {
		if !id.IsValid() {
			return &errors.ValidationError{
				Field:   "Sources",
				Value:   id,
				Message: fmt.Sprintf("source '%s' not found", id),
			}
		}
	}
	return nil
}

// Includes reports whether the run should use source id.
func (o *Options) Includes(id sources.ID) bool {
	if len(o.Sources) == 0 {
		return true
	}
	for _, s := range o.Sources {
		if s == id {
			return true
		}
	}
	return false
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithTimeout configures the run timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithSources restricts the run to the given sources.
func WithSources(ids ...sources.ID) Option {
	return func(o *Options) {
		o.Sources = ids
	}
}
