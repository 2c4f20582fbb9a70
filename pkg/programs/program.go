// Package programs defines the canonical grant/program record every source
// adapter produces and the persistence gateway stores.
package programs

import (
	"cmp"
	"slices"
	"time"
)

// Status is the derived open/closed state of a program.
type Status string

// Known statuses.
const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Program is the canonical, storage-ready representation of an announcement.
//
// SourceID is globally unique across sources in the store; adapters prefix
// it with their source ID ("bizinfo-PBLN_...").
//
// Amounts are assumed to share one currency unit across sources. No
// conversion is performed.
type Program struct {
	Source   string `json:"source" yaml:"source"`
	SourceID string `json:"source_id" yaml:"source_id"`
	Title    string `json:"title" yaml:"title"`

	Summary     *string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    *string `json:"category,omitempty" yaml:"category,omitempty"`
	Region      *string `json:"region,omitempty" yaml:"region,omitempty"`
	Target      *string `json:"target,omitempty" yaml:"target,omitempty"`
	Method      *string `json:"method,omitempty" yaml:"method,omitempty"`
	Organizer   *string `json:"organizer,omitempty" yaml:"organizer,omitempty"`
	URL         *string `json:"url,omitempty" yaml:"url,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Status    Status     `json:"status" yaml:"status"`

	AmountMin *int64 `json:"amount_min,omitempty" yaml:"amount_min,omitempty"`
	AmountMax *int64 `json:"amount_max,omitempty" yaml:"amount_max,omitempty"`
	ViewCount *int64 `json:"view_count,omitempty" yaml:"view_count,omitempty"`
}

// ExactKey identifies a record within its source namespace.
func (p Program) ExactKey() string {
	return p.Source + "\x00" + p.SourceID
}

// DeriveStatus computes the status at ingestion time: open iff end is after
// now; a missing end date is open.
func DeriveStatus(end *time.Time, now time.Time) Status {
	if end == nil || end.After(now) {
		return StatusOpen
	}
	return StatusClosed
}

// SortByViews orders programs by view count, highest first. Programs without
// a view count sort after every program that has one and keep their
// relative order.
func SortByViews(ps []Program) {
	slices.SortStableFunc(ps, func(a, b Program) int {
		switch {
		case a.ViewCount == nil && b.ViewCount == nil:
			return 0
		case a.ViewCount == nil:
			return 1
		case b.ViewCount == nil:
			return -1
		}
		return cmp.Compare(*b.ViewCount, *a.ViewCount)
	})
}
