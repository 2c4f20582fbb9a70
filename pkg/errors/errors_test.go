package errors_test

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/agentstation/grantmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		rateLimited bool
		unavailable bool
		timeout     bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, rateLimited: true},
		{name: "server error", status: http.StatusInternalServerError, unavailable: true},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, unavailable: true, timeout: true},
		{name: "client error", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("bizinfo", tt.status, "boom")
			assert.Contains(t, err.Error(), "bizinfo")
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, errors.Is(err, pkgerrors.ErrSourceUnavailable))
			assert.Equal(t, tt.timeout, pkgerrors.IsTimeout(err))
		})
	}

	t.Run("without status", func(t *testing.T) {
		err := &pkgerrors.APIError{Source: "kstartup", Message: "connection reset"}
		assert.Equal(t, "API error from kstartup: connection reset", err.Error())
	})
}

func TestFetchError(t *testing.T) {
	base := pkgerrors.NewAPIError("kstartup", 503, "down")
	err := pkgerrors.WrapFetch("kstartup", 2, base)

	assert.Equal(t, "fetch kstartup page 2: API error from kstartup (status 503): down", err.Error())
	assert.True(t, errors.Is(err, pkgerrors.ErrSourceUnavailable))

	var apiErr *pkgerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)

	assert.Nil(t, pkgerrors.WrapFetch("kstartup", 1, nil))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("title", "", "must not be empty")
	assert.Equal(t, "validation failed for field title: must not be empty", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	err = &pkgerrors.ValidationError{Message: "bad record"}
	assert.Equal(t, "validation failed: bad record", err.Error())
}

func TestPersistError(t *testing.T) {
	base := errors.New("disk full")
	err := pkgerrors.WrapPersist("update", "bizinfo-PBLN_1", base)

	assert.Equal(t, "failed to update program bizinfo-PBLN_1: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.False(t, pkgerrors.IsFatal(err))
	assert.Nil(t, pkgerrors.WrapPersist("update", "x", nil))
}

func TestFatalError(t *testing.T) {
	base := errors.New("connection refused")
	err := &pkgerrors.FatalError{Stage: "connect", Err: base}

	assert.True(t, pkgerrors.IsFatal(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "fatal error during connect: connection refused", err.Error())

	wrapped := pkgerrors.Join(errors.New("run failed"), err)
	assert.True(t, pkgerrors.IsFatal(wrapped))
}

func TestParseAndConfigErrors(t *testing.T) {
	parseErr := pkgerrors.WrapParse("json", "bizinfo", errors.New("unexpected EOF"))
	assert.Equal(t, "json parse error in bizinfo: unexpected EOF", parseErr.Error())

	cfgErr := pkgerrors.NewConfigError("store", "unknown driver", nil)
	assert.Equal(t, "configuration error in store: unknown driver", cfgErr.Error())
	assert.Nil(t, cfgErr.Unwrap())
}
