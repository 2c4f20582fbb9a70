// Package transport provides the HTTP client source adapters share: a
// bounded per-call timeout, request pacing, and translation of upstream
// failures into pkg/errors types.
package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentstation/grantmap/pkg/constants"
	pkgerrors "github.com/agentstation/grantmap/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for one upstream request.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client performs paced, time-bounded GET requests against one source.
type Client struct {
	source    string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit paces requests to rps with the given burst. A non-positive
// rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for source.
func New(source string, opts ...Option) *Client {
	c := &Client{
		source:    source,
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		limiter:   rate.NewLimiter(rate.Limit(constants.DefaultRequestsPerSecond), 1),
		userAgent: "grantmap",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the source this client talks to.
func (c *Client) Source() string {
	return c.source
}

// GetJSON requests endpoint with query merged into its existing query string
// and decodes a JSON body into target.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, target any) error {
	u, err := BuildURL(endpoint, query)
	if err != nil {
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.classify(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return pkgerrors.NewConfigError(c.source, "invalid request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.classify(err)
	}
	return DecodeResponse(c.source, resp, target)
}

// classify turns transport failures into typed errors; timeouts match
// pkgerrors.ErrTimeout.
func (c *Client) classify(err error) error {
	// Source keys travel in the query string.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redact(urlErr.URL)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &pkgerrors.APIError{
			Source:  c.source,
			Message: "request timed out",
			Err:     errors.Join(pkgerrors.ErrTimeout, err),
		}
	}
	return &pkgerrors.APIError{Source: c.source, Message: err.Error(), Err: err}
}

// redact drops the query and any userinfo from raw.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

// BuildURL merges query into the query string already present on endpoint.
func BuildURL(endpoint string, query url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", pkgerrors.NewConfigError("transport", "invalid endpoint", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", pkgerrors.NewConfigError("transport", "endpoint must be absolute: "+redact(endpoint), nil)
	}
	q := u.Query()
	for k, vs := range query {
		q.Del(k)
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
