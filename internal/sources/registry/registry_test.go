package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/sources"
)

func TestList(t *testing.T) {
	assert.Equal(t, []sources.ID{sources.BizinfoID, sources.KStartupID}, List())
	assert.True(t, Has(sources.KStartupID))
	assert.False(t, Has("onbid"))
}

func TestGet(t *testing.T) {
	src, err := Get(sources.BizinfoID, Settings{})
	require.NoError(t, err)
	assert.Equal(t, sources.BizinfoID, src.ID())

	_, err = Get("onbid", Settings{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestBuild(t *testing.T) {
	all, err := Build(Settings{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, sources.BizinfoID, all[0].ID())
	assert.Equal(t, sources.KStartupID, all[1].ID())

	// Filter order does not change merge order.
	filtered, err := Build(Settings{}, sources.KStartupID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, sources.KStartupID, filtered[0].ID())

	_, err = Build(Settings{}, "nope")
	assert.Error(t, err)
}
