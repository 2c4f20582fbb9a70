package programs

import (
	"regexp"
	"strings"
)

var (
	whitespace    = regexp.MustCompile(`\s+`)
	sentenceBreak = regexp.MustCompile(`[.!?]\s+`)
)

// Summarize returns the first two sentences of description, with a trailing
// period when more sentences were cut. It returns "" for an empty input.
//
// This is a placeholder heuristic for display; a model-generated summary
// would replace it.
func Summarize(description string) string {
	text := strings.TrimSpace(whitespace.ReplaceAllString(description, " "))
	if text == "" {
		return ""
	}

	var sentences []string
	for _, s := range sentenceBreak.Split(text, -1) {
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return ""
	}

	n := min(len(sentences), 2)
	summary := strings.Join(sentences[:n], ". ")
	if len(sentences) > 2 {
		summary += "."
	}
	return summary
}
