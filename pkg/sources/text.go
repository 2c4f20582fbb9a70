package sources

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is an upstream scalar that may arrive as a JSON string, number, bool
// or null. It decodes into its textual form so mapping rules see one type.
type Text string

// String returns the text.
func (t Text) String() string {
	return string(t)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case data[0] == '{' || data[0] == '[':
		// Nested values are not scalars; keep them out of mapped fields.
		*t = ""
		return nil
	}
	*t = Text(strings.TrimSpace(string(data)))
	return nil
}
