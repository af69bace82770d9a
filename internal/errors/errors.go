// Package errors provides a lightweight structured error type (GraphError)
// for category-based classification in the CLI and watch daemon.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an actiongraph error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryPattern    ErrorCategory = "pattern"
	CategoryValidation ErrorCategory = "validation"

	// Plan assembly and diffing errors
	CategoryPlan ErrorCategory = "plan"

	// Persistence and external system errors
	CategoryState  ErrorCategory = "state"
	CategoryNotify ErrorCategory = "notify"

	// Runtime and infrastructure errors
	CategoryWatch    ErrorCategory = "watch"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// GraphError is a structured error with category, severity, and context
type GraphError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for GraphError
type ContextFields map[string]any

// Error implements the error interface
func (e *GraphError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *GraphError) WithContext(key string, value any) *GraphError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new GraphError
func New(category ErrorCategory, severity ErrorSeverity, message string) *GraphError {
	return &GraphError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new GraphError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *GraphError {
	return &GraphError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}
