// Package errors provides the error types used across the ingestion pipeline.
// Each type maps to one class of failure a run can hit (transport, parsing,
// validation, persistence, configuration) so callers can tell a recoverable
// per-source or per-record problem from the single fatal one: an unreachable
// persistence gateway.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
var New = errors.New

// Is, As and Join re-export the standard library helpers so callers only
// need one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors.
var (
	// ErrNotFound indicates that a requested record does not exist.
	ErrNotFound = errors.New("not found")


	// ErrNotConfigured indicates a source is missing its base URL or key.
	ErrNotConfigured = errors.New("not configured")

	// ErrSourceUnavailable indicates that an upstream source answered with a server error.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates that the upstream rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrUnknownShape indicates an upstream payload without the expected envelope.
	ErrUnknownShape = errors.New("unknown response shape")
)

// Class markers matched by IsValidationError and IsFatal.
var (
	errInvalidInput = errors.New("invalid input")
	errFatal        = errors.New("fatal")
)

// APIError represents a non-2xx answer from an upstream source.
type APIError struct {
	Source     string
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is maps status codes onto the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode == http.StatusGatewayTimeout || e.StatusCode == http.StatusRequestTimeout:
		return target == ErrTimeout || target == ErrSourceUnavailable
	case e.StatusCode >= 500:
		return target == ErrSourceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{Source: source, StatusCode: statusCode, Message: message}
}

// FetchError wraps a transport failure for one page of one source.
type FetchError struct {
	Source string
	Page   int
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("fetch %s page %d: %v", e.Source, e.Page, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents a payload that could not be decoded.
type ParseError struct {
	Format  string
	Source  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a single field failing validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == errInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// PersistError represents a store failure for a single record.
type PersistError struct {
	Operation string // "find", "create", "update", "count"
	SourceID  string
	Err       error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	if e.SourceID != "" {
		return fmt.Sprintf("failed to %s program %s: %v", e.Operation, e.SourceID, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// FatalError aborts an ingestion run. Only an unreachable gateway produces it.
type FatalError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error during %s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *FatalError) Is(target error) bool {
	return target == errFatal
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, errInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsFatal checks if an error should abort the run.
func IsFatal(err error) bool {
	return errors.Is(err, errFatal)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapFetch wraps an error as a FetchError.
func WrapFetch(source string, page int, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Source: source, Page: page, Err: err}
}

// WrapPersist wraps an error as a PersistError.
func WrapPersist(operation, sourceID string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistError{Operation: operation, SourceID: sourceID, Err: err}
}
