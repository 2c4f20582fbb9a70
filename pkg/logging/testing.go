package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger captures JSON log output so tests can assert on emitted events.
type TestLogger struct {
	*zerolog.Logger
	mu  sync.Mutex
	buf *bytes.Buffer
}

// Event is one decoded log line.
type Event map[string]any

// Level returns the event level.
func (e Event) Level() string {
	s, _ := e[zerolog.LevelFieldName].(string)
	return s
}

// Message returns the event message.
func (e Event) Message() string {
	s, _ := e[zerolog.MessageFieldName].(string)
	return s
}

// Str returns a string field of the event.
func (e Event) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

type lockedWriter struct {
	tl *TestLogger
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.tl.mu.Lock()
	defer w.tl.mu.Unlock()
	return w.tl.buf.Write(p)
}

// NewTestLogger creates a trace-level logger that records every event.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	tl := &TestLogger{buf: &bytes.Buffer{}}
	logger := zerolog.New(lockedWriter{tl: tl}).Level(zerolog.TraceLevel)
	tl.Logger = &logger
	return tl
}

// Output returns the raw captured output.
func (tl *TestLogger) Output() string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.buf.String()
}

// Events decodes every captured line.
func (tl *TestLogger) Events() []Event {
	var events []Event
	for _, line := range strings.Split(strings.TrimSpace(tl.Output()), "\n") {
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			events = append(events, e)
		}
	}
	return events
}

// Find returns the events with the given message, optionally filtered by level.
func (tl *TestLogger) Find(message string, level ...string) []Event {
	var found []Event
	for _, e := range tl.Events() {
		if e.Message() != message {
			continue
		}
		if len(level) > 0 && e.Level() != level[0] {
			continue
		}
		found = append(found, e)
	}
	return found
}

// Contains reports whether the raw output contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// Reset clears the captured output.
func (tl *TestLogger) Reset() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.buf.Reset()
}
