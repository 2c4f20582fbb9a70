package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
)

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "updated", Updated.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}

func TestFilterMatches(t *testing.T) {
	p := programs.Program{Source: "bizinfo", Status: programs.StatusOpen}

	assert.True(t, Filter{}.Matches(p))
	assert.True(t, Filter{Source: "bizinfo"}.Matches(p))
	assert.True(t, Filter{Source: "bizinfo", Status: programs.StatusOpen}.Matches(p))
	assert.False(t, Filter{Source: "kstartup"}.Matches(p))
	assert.False(t, Filter{Status: programs.StatusClosed}.Matches(p))
}

func TestField(t *testing.T) {
	assert.True(t, FieldSource.IsValid())
	assert.True(t, FieldStatus.IsValid())
	assert.False(t, Field("title").IsValid())
}

func TestCountsByKey(t *testing.T) {
	got := CountsByKey([]GroupCount{{Key: "open", Count: 3}, {Key: "closed", Count: 1}})
	assert.Equal(t, map[string]int{"open": 3, "closed": 1}, got)
}

func TestErrNotFound(t *testing.T) {
	assert.True(t, errors.IsNotFound(ErrNotFound))
}
