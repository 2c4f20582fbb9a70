package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/agentstation/grantmap/pkg/errors"
)

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 32 << 20

// DecodeResponse reads and closes resp.Body and decodes it into target.
// Non-2xx statuses become *errors.APIError. Public data portals answer some
// failures with an XML or HTML body and a 200 status; those are reported as
// API errors too instead of JSON syntax errors.
func DecodeResponse(source string, resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &pkgerrors.APIError{Source: source, StatusCode: resp.StatusCode, Message: "read body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &pkgerrors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Endpoint:   endpointOf(resp),
			Message:    snippet(body, 300),
		}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return &pkgerrors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Endpoint:   endpointOf(resp),
			Message:    "unexpected non-JSON response: " + snippet(trimmed, 300),
		}
	}

	if err := json.Unmarshal(trimmed, target); err != nil {
		return pkgerrors.WrapParse("json", source, err)
	}
	return nil
}

func endpointOf(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	u := *resp.Request.URL
	u.RawQuery = ""
	return u.String()
}

func snippet(b []byte, limit int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
