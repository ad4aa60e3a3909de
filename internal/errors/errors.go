// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypePriceNotConfigured indicates a required price has no active row
	TypePriceNotConfigured Type = "PRICE_NOT_CONFIGURED"

	// TypeAmbiguousPrice indicates more than one active price row for a pair
	TypeAmbiguousPrice Type = "AMBIGUOUS_PRICE"

	// TypeInvalidPeriod indicates a billing period with end before start
	TypeInvalidPeriod Type = "INVALID_PERIOD"

	// TypeUstConfig indicates a missing or non-positive UST constant
	TypeUstConfig Type = "UST_CONFIG_ERROR"

	// TypeStorage indicates a record-store error
	TypeStorage Type = "STORAGE_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// PriceNotConfigured creates a missing-price error carrying the failing pair
func PriceNotConfigured(tableID int64, classification string) *Error {
	return Newf(TypePriceNotConfigured, "no active price for classification %s in table %d", classification, tableID).
		WithContext("table_id", tableID).
		WithContext("classification", classification)
}

// AmbiguousPrice creates an error for a pair with more than one active row
func AmbiguousPrice(tableID int64, classification string, rows int) *Error {
	return Newf(TypeAmbiguousPrice, "%d active prices for classification %s in table %d, expected exactly one", rows, classification, tableID).
		WithContext("table_id", tableID).
		WithContext("classification", classification).
		WithContext("active_rows", rows)
}

// InvalidPeriod creates an error for a period whose end precedes its start
func InvalidPeriod(start, end string) *Error {
	return Newf(TypeInvalidPeriod, "period end %s precedes start %s", end, start)
}

// UstConfig creates a UST configuration error
func UstConfig(message string) *Error {
	return New(TypeUstConfig, message)
}

// Storage creates a record-store error
func Storage(message string, cause error) *Error {
	return Wrap(TypeStorage, message, cause)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
