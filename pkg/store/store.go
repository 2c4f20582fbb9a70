// Package store defines the persistence gateway the orchestrator writes
// through. Implementations live under internal/store.
package store

import (
	"context"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
)

// ErrNotFound is returned by FindByKey when no program has the source ID.
var ErrNotFound = errors.ErrNotFound

// Outcome classifies an upsert.
type Outcome int

// Upsert outcomes.
const (
	Created Outcome = iota + 1
	Updated
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	}
	return "unknown"
}

// Field is a column GroupByCount can group on.
type Field string

// Groupable fields.
const (
	FieldSource Field = "source"
	FieldStatus Field = "status"
)

// IsValid reports whether f can be grouped on.
func (f Field) IsValid() bool {
	return f == FieldSource || f == FieldStatus
}

// Filter narrows Count. Empty fields match everything.
type Filter struct {
	Source string
	Status programs.Status
}

// Matches reports whether p passes the filter.
func (f Filter) Matches(p programs.Program) bool {
	if f.Source != "" && p.Source != f.Source {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return true
}

// GroupCount is one row of a GroupByCount result.
type GroupCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Store is the persistence gateway.
//
// SourceID is unique across the whole store. Upsert overwrites every field
// of an existing record with the incoming one.
type Store interface {
	// FindByKey returns the program with sourceID, or ErrNotFound.
	FindByKey(ctx context.Context, sourceID string) (*programs.Program, error)
	// Upsert creates or replaces p and reports which happened.
	Upsert(ctx context.Context, p programs.Program) (Outcome, error)
	// Count returns how many programs match filter.
	Count(ctx context.Context, filter Filter) (int, error)
	// GroupByCount counts programs per distinct value of field, ordered by key.
	GroupByCount(ctx context.Context, field Field) ([]GroupCount, error)
	// Ping checks that the gateway is reachable.
	Ping(ctx context.Context) error
	// Close releases the gateway's resources.
	Close() error
}

// CountsByKey turns GroupByCount rows into a map.
func CountsByKey(rows []GroupCount) map[string]int {
	m := make(map[string]int, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Count
	}
	return m
}
