// Package constants provides shared constants used throughout grantmap.
package constants

import "time"

// Timeouts.
const (
	// DefaultHTTPTimeout bounds a single upstream HTTP call.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultPingTimeout bounds the gateway reachability check before a run.
	DefaultPingTimeout = 10 * time.Second

	// ReportTimeout bounds the post-run inventory query.
	ReportTimeout = 10 * time.Second

	// IngestTimeout bounds a whole ingestion run started from the CLI.
	IngestTimeout = 30 * time.Minute

	// ShutdownTimeout is the grace period for closing the store on exit.
	ShutdownTimeout = 5 * time.Second
)

// Paging defaults for upstream sources.
const (
	DefaultPageSize = 100
	DefaultMaxPages = 10
	MaxPageSize     = 1000
)

// DefaultRequestsPerSecond paces calls to a single upstream source.
const DefaultRequestsPerSecond = 5.0

// FilePermissions is the mode of log files created by LOG_OUTPUT.
const FilePermissions = 0644

// MaxSyntheticTitleRunes caps the title slice used to synthesize IDs.
const MaxSyntheticTitleRunes = 50

// NoDateKey stands in for a missing start date in dedupe keys.
const NoDateKey = "no-date"
