// Package errors provides custom error types for the scorelens system.
// The types mirror the extraction error taxonomy: cell-level problems are
// represented as null scores and never surface here, structural problems
// fail a single strategy, and only a pipeline-level failure propagates
// out of the engine.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the scorelens system
var (
	// ErrNoHoleRow indicates no hole-number row could be located in a grid
	ErrNoHoleRow = errors.New("no hole-number row found")

	// ErrNoParRow indicates no par row could be located in a grid
	ErrNoParRow = errors.New("no par row found")

	// ErrNoPlayerRows indicates no qualifying player rows were found
	ErrNoPlayerRows = errors.New("no player rows found")

	// ErrExtractionFailed indicates that every extraction strategy failed
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrBackendUnavailable indicates a recognition backend is temporarily unavailable
	ErrBackendUnavailable = errors.New("recognition backend unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// StructureError represents a row/structure-level extraction failure:
// the grid was readable but no scorecard skeleton could be found in it.
type StructureError struct {
	Stage   string // "hole-row", "par-row", "player-rows"
	Message string
	Err     error
}

// Error implements the error interface
func (e *StructureError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("structure extraction failed at %s: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("structure extraction failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *StructureError) Unwrap() error {
	return e.Err
}

// NewStructureError creates a new StructureError
func NewStructureError(stage, message string, err error) *StructureError {
	return &StructureError{Stage: stage, Message: message, Err: err}
}

// StrategyError represents the failure of one extraction strategy.
// The runner records these and excludes the strategy from candidates;
// it never retries.
type StrategyError struct {
	Strategy string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *StrategyError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("strategy %s failed: %s", e.Strategy, e.Message)
	}
	return fmt.Sprintf("strategy %s failed: %v", e.Strategy, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError
func NewStrategyError(strategy, message string, err error) *StrategyError {
	return &StrategyError{Strategy: strategy, Message: message, Err: err}
}

// PipelineError is the only error the engine surfaces to callers: every
// strategy was excluded and no usable scorecard remains. The message is
// user-facing and asks for image quality remediation rather than exposing
// raw backend errors.
type PipelineError struct {
	Attempts []error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	return fmt.Sprintf(
		"no strategy returned a usable result (%d attempted); please retry with a clearer, well-lit photo of the scorecard",
		len(e.Attempts))
}

// Unwrap implements errors.Unwrap for the multi-error form
func (e *PipelineError) Unwrap() []error {
	return e.Attempts
}

// Is implements errors.Is support
func (e *PipelineError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// Detail returns the per-strategy failures for logging. The user-facing
// Error string deliberately omits them.
func (e *PipelineError) Detail() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, err := range e.Attempts {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

// NewPipelineError creates a new PipelineError from the collected
// strategy failures.
func NewPipelineError(attempts []error) *PipelineError {
	return &PipelineError{Attempts: attempts}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error from a recognition backend API
type APIError struct {
	Backend    string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Backend, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Backend, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode >= 500 {
		return target == ErrBackendUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(backend string, statusCode int, message string) *APIError {
	return &APIError{
		Backend:    backend,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing backend payloads
type ParseError struct {
	Format  string // "json", "yaml"
	Source  string // which backend or file the payload came from
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// AuthenticationError represents an authentication error against a backend
type AuthenticationError struct {
	Backend string
	Method  string // "api_key", "oauth"
	Message string
	Err     error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Backend, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired
}

// Helper functions for error checking

// IsStructural checks if an error is a row/structure-level failure
func IsStructural(err error) bool {
	var se *StructureError
	return errors.As(err, &se) ||
		errors.Is(err, ErrNoHoleRow) ||
		errors.Is(err, ErrNoParRow) ||
		errors.Is(err, ErrNoPlayerRows)
}

// IsExtractionFailed checks if an error is a pipeline-level failure
func IsExtractionFailed(err error) bool {
	return errors.Is(err, ErrExtractionFailed)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsBackendUnavailable checks if an error indicates backend unavailability
func IsBackendUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(backend string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Backend:    backend,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
