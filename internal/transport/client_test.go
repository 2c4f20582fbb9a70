package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/grantmap/pkg/errors"
)

type payload struct {
	Name string `json:"name"`
}

func TestGetJSON(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	c := New("bizinfo", WithRateLimit(0, 0))
	var out payload
	err := c.GetJSON(context.Background(), srv.URL+"/api?dataType=json", url.Values{"pageIndex": {"2"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, "ok", out.Name)
	assert.Equal(t, "json", gotQuery.Get("dataType"))
	assert.Equal(t, "2", gotQuery.Get("pageIndex"))
}

func TestGetJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusServiceUnavailable,
			body:   "maintenance",
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, pkgerrors.ErrSourceUnavailable)
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			checkFn: func(t *testing.T, err error) {
				assert.True(t, pkgerrors.IsRateLimited(err))
			},
		},
		{
			name:   "xml error body",
			status: http.StatusOK,
			body:   `<OpenAPI_ServiceResponse><cmmMsgHeader><returnReasonCode>30</returnReasonCode></cmmMsgHeader></OpenAPI_ServiceResponse>`,
			checkFn: func(t *testing.T, err error) {
				var apiErr *pkgerrors.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Contains(t, apiErr.Message, "non-JSON")
			},
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{"name":`,
			checkFn: func(t *testing.T, err error) {
				var parseErr *pkgerrors.ParseError
				assert.True(t, errors.As(err, &parseErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var out payload
			err := New("kstartup", WithRateLimit(0, 0)).GetJSON(context.Background(), srv.URL, nil, &out)
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}

func TestGetJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := New("kstartup", WithTimeout(20*time.Millisecond), WithRateLimit(0, 0))
	var out payload
	err := c.GetJSON(context.Background(), srv.URL, nil, &out)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsTimeout(err), "got %v", err)
}

func TestBuildURL(t *testing.T) {
	u, err := BuildURL("https://example.com/api?a=1&b=2", url.Values{"b": {"3"}, "c": {"한글"}})
	require.NoError(t, err)

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "1", parsed.Query().Get("a"))
	assert.Equal(t, "3", parsed.Query().Get("b"))
	assert.Equal(t, "한글", parsed.Query().Get("c"))

	_, err = BuildURL("/relative", nil)
	assert.Error(t, err)
}

func TestGetJSONRedactsQuery(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/api"
	srv.Close()

	c := New("kstartup", WithRateLimit(0, 0))
	var out payload
	err := c.GetJSON(context.Background(), endpoint, url.Values{"serviceKey": {"SECRET"}}, &out)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
	assert.Contains(t, err.Error(), endpoint)

	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	assert.NotContains(t, urlErr.URL, "SECRET")
}

func TestSnippetKeepsRunesWhole(t *testing.T) {
	got := snippet([]byte("가나다라"), 4)
	assert.True(t, utf8.ValidString(got), "got %q", got)
	assert.Equal(t, "가...", got)

	assert.Equal(t, "short", snippet([]byte(" short "), 300))
}
