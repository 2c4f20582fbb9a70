// Package migrations holds the embedded schema for each SQL dialect.
package migrations

import "embed"

// FS contains one directory of ordered *.sql files per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
