// Package ptr holds small helpers for optional (pointer) fields.
package ptr

import "strings"

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonBlank returns a pointer to the trimmed string, or nil when it is blank.
func NonBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
