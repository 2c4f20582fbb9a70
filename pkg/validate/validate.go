// Package validate checks programs against the minimal storage schema
// before they reach the persistence gateway.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
)

// Year bounds for a plausible announcement date.
const (
	MinYear = 1900
	MaxYear = 2999
)

// Issue is one schema violation.
type Issue struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// String returns "field: message".
func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Rejection is a program that failed validation.
type Rejection struct {
	Source   string  `json:"source" yaml:"source"`
	SourceID string  `json:"source_id" yaml:"source_id"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	Issues   []Issue `json:"issues" yaml:"issues"`
}

// Err returns the issues as a joined error of *errors.ValidationError.
func (r Rejection) Err() error {
	errs := make([]error, 0, len(r.Issues))
	for _, issue := range r.Issues {
		errs = append(errs, errors.NewValidationError(issue.Field, nil, issue.Message))
	}
	return errors.Join(errs...)
}

// Validate returns p unchanged together with every issue found. An empty
// issue list means p may be persisted.
func Validate(p programs.Program) (programs.Program, []Issue) {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(p.SourceID) == "" {
		add("source_id", "is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		add("title", "is required")
	}
	if strings.TrimSpace(p.Source) == "" {
		add("source", "is required")
	}
	if !p.Status.IsValid() {
		add("status", "must be %q or %q, got %q", programs.StatusOpen, programs.StatusClosed, p.Status)
	}

	checkDate := func(field string, d *time.Time) {
		if d == nil {
			return
		}
		if d.IsZero() {
			add(field, "is the zero time")
			return
		}
		if y := d.Year(); y < MinYear || y > MaxYear {
			add(field, "year %d outside [%d, %d]", y, MinYear, MaxYear)
		}
	}
	checkDate("start_date", p.StartDate)
	checkDate("end_date", p.EndDate)

	checkNonNegative := func(field string, n *int64) {
		if n != nil && *n < 0 {
			add(field, "must not be negative, got %d", *n)
		}
	}
	checkNonNegative("amount_min", p.AmountMin)
	checkNonNegative("amount_max", p.AmountMax)
	checkNonNegative("view_count", p.ViewCount)

	return p, issues
}

// ValidateAll splits ps into valid programs and rejections, keeping order.
func ValidateAll(ps []programs.Program) ([]programs.Program, []Rejection) {
	valid := make([]programs.Program, 0, len(ps))
	var rejected []Rejection
	for _, p := range ps {
		checked, issues := Validate(p)
		if len(issues) > 0 {
			rejected = append(rejected, Rejection{
				Source:   p.Source,
				SourceID: p.SourceID,
				Title:    p.Title,
				Issues:   issues,
			})
			continue
		}
		valid = append(valid, checked)
	}
	return valid, rejected
}
