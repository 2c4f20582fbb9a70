// Package sources defines the contract every upstream adapter implements and
// the shared pieces adapters are built from: ordered field-extraction rules,
// the lenient Text scalar used in upstream payloads, and the pagination loop.
//
// An adapter never returns an error past its boundary. Whatever it managed
// to parse is returned in Result.Programs together with Failed and Err, so a
// failure on page three still delivers pages one and two.
package sources

import (
	"context"
	"fmt"
	"slices"

	"github.com/agentstation/grantmap/pkg/constants"
	"github.com/agentstation/grantmap/pkg/programs"
)

// ID identifies an upstream source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known sources.
const (
	BizinfoID  ID = "bizinfo"
	KStartupID ID = "kstartup"
)

// IDs returns every known source in merge order.
func IDs() []ID {
	return []ID{BizinfoID, KStartupID}
}

// IsValid returns true if the ID is one of the known sources.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source fetches and normalizes records from one upstream.
type Source interface {
	ID() ID
	Fetch(ctx context.Context) Result
}

// Result is the partial-success outcome of one Fetch.
// Truncated means the page cap was hit before upstream ran out.
type Result struct {
	Source    ID                 `json:"source" yaml:"source"`
	Programs  []programs.Program `json:"-" yaml:"-"`
	Failed    bool               `json:"failed" yaml:"failed"`
	Message   string             `json:"message,omitempty" yaml:"message,omitempty"`
	Err       error              `json:"-" yaml:"-"`
	Dropped   int                `json:"dropped" yaml:"dropped"`
	Pages     int                `json:"pages" yaml:"pages"`
	Truncated bool               `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// Fail marks the result failed with err, keeping the programs collected so far.
func (r *Result) Fail(err error) {
	if err == nil {
		return
	}
	r.Failed = true
	r.Err = err
	r.Message = err.Error()
}

// Truncate records that the page cap cut the listing short. A failure
// message, if any, is kept.
func (r *Result) Truncate(pages int) {
	r.Truncated = true
	if r.Message == "" {
		r.Message = fmt.Sprintf("truncated at %d pages", pages)
	}
}

// Config carries what every adapter needs from the environment.
type Config struct {
	BaseURL  string
	APIKey   string
	PageSize int
	MaxPages int
}

// Configured reports whether both the base URL and the key are present.
// An unconfigured adapter returns an empty result instead of failing.
func (c Config) Configured() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

// WithDefaults fills zero paging values.
func (c Config) WithDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = constants.DefaultPageSize
	}
	if c.PageSize > constants.MaxPageSize {
		c.PageSize = constants.MaxPageSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = constants.DefaultMaxPages
	}
	return c
}
