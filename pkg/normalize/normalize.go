// Package normalize holds the pure helpers shared by every source adapter:
// date and integer parsing over the encodings upstream APIs actually send,
// identifier synthesis, text cleanup, and the comparison form used by the
// deduplicator.
package normalize

import (
	"encoding/json"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/grantmap/pkg/constants"
)

// RangeSeparator joins the two ends of a "begin ~ end" date field.
const RangeSeparator = "~"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006.01.02",
	"2006.1.2",
	"2006/01/02",
	"20060102",
}

var compactDate = regexp.MustCompile(`^\d{8}$`)

// ParseDate parses an upstream date into a calendar date at UTC midnight.
// It accepts ISO-like strings and compact YYYYMMDD tokens. Anything it cannot
// read yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if compactDate.MatchString(s) {
		return parseWith(s, "20060102")
	}
	for _, layout := range dateLayouts {
		if d := parseWith(s, layout); d != nil {
			return d
		}
	}
	return nil
}

func parseWith(s, layout string) *time.Time {
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// DateRange is a parsed "begin ~ end" field. RawStart keeps the upstream
// text of the first half for identifier synthesis.
type DateRange struct {
	Start    *time.Time
	End      *time.Time
	RawStart string
}

// ParseDateRange splits s on RangeSeparator and parses both halves. A value
// without a separator is read as a start date only.
func ParseDateRange(s string) DateRange {
	start, end, found := strings.Cut(s, RangeSeparator)
	start = strings.TrimSpace(start)
	r := DateRange{Start: ParseDate(start), RawStart: start}
	if found {
		r.End = ParseDate(end)
	}
	return r
}

// ParseInt reads an integer-ish upstream value: numbers, numeric strings and
// strings with thousands separators. Fractions, overflow and anything
// malformed yield nil.
func ParseInt(v any) *int64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		i := int64(n)
		return &i
	case int64:
		return &n
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return nil
		}
		i := int64(n)
		return &i
	case json.Number:
		return ParseInt(n.String())
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if s == "" {
			return nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		return &i
	}
	return nil
}

// ParseCount is ParseInt for fields that cannot be negative (amounts, view
// counts, totals). A negative value is treated as malformed and yields nil.
func ParseCount(v any) *int64 {
	n := ParseInt(v)
	if n == nil || *n < 0 {
		return nil
	}
	return n
}

// SynthesizeID derives a fallback identifier from a title and the raw start
// date text when an upstream item carries no stable ID. The title keeps only
// ASCII letters, digits and Hangul, capped at MaxSyntheticTitleRunes.
//
// The result changes whenever upstream edits the title, so a renamed program
// is stored as a new record. Prefer a real upstream ID whenever one exists.
func SynthesizeID(title, rawStart string) string {
	rawStart = strings.TrimSpace(rawStart)
	if rawStart == "" {
		return ""
	}

	var b strings.Builder
	n := 0
	for _, r := range title {
		if n == constants.MaxSyntheticTitleRunes {
			break
		}
		if isIDRune(r) {
			b.WriteRune(r)
			n++
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + rawStart
}

func isIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		unicode.Is(unicode.Hangul, r)
}

var (
	tags   = regexp.MustCompile(`<[^>]*>`)
	spaces = regexp.MustCompile(`\s+`)
)

// Clean unescapes HTML entities, strips markup and collapses whitespace.
func Clean(s string) string {
	s = html.UnescapeString(s)
	s = tags.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

var keyStrip = strings.NewReplacer(
	"(", "", ")", "",
	"[", "", "]", "",
	"{", "", "}", "",
	"-", "", ".", "", "·", "",
)

// CompareKey is the comparison form of a title or organizer: compatibility
// normalized (full-width folds to ASCII), lower-cased, without whitespace,
// brackets or the separators "-", "." and "·".
func CompareKey(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(norm.NFKC.String(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return keyStrip.Replace(s)
}
