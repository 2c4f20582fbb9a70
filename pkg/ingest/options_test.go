package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
)

func TestNew(t *testing.T) {
	o := New(WithDryRun(true), WithTimeout(time.Minute), WithSources(sources.KStartupID))

	assert.True(t, o.DryRun)
	assert.Equal(t, time.Minute, o.Timeout)
	assert.True(t, o.Includes(sources.KStartupID))
	assert.False(t, o.Includes(sources.BizinfoID))
	assert.NoError(t, o.Validate())
}

func TestIncludesAllByDefault(t *testing.T) {
	o := Defaults()
	for _, id := range sources.IDs() {
		assert.True(t, o.Includes(id))
	}
}

func TestValidate(t *testing.T) {
	err := New(WithTimeout(-time.Second)).Validate()
	assert.True(t, errors.IsValidationError(err))

	err = New(WithSources("onbid")).Validate()
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "onbid")
}
