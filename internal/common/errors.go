package common

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of a failed analysis run
type ErrorType string

const (
	// ErrTypeIO indicates the capture file could not be opened or read
	ErrTypeIO ErrorType = "io"

	// ErrTypeFormat indicates a grammar mismatch in the capture file
	ErrTypeFormat ErrorType = "format"

	// ErrTypeEmptyFile indicates a well-formed file without buttons
	ErrTypeEmptyFile ErrorType = "empty_file"

	// ErrTypeNoRawData indicates no raw button carries pulse data
	ErrTypeNoRawData ErrorType = "no_raw_data"

	// ErrTypeDegenerateBucket indicates an empty bit0/bit1 bucket under the strict policy
	ErrTypeDegenerateBucket ErrorType = "degenerate_bucket"

	// ErrTypeConfiguration indicates invalid analysis options
	ErrTypeConfiguration ErrorType = "configuration"
)

// Error is the typed error returned by the parser and analyzer
type Error struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides a human-readable description
	Message string `json:"message"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{e.Message}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Type
func (e *Error) Is(target error) bool {
	if te, ok := target.(*Error); ok {
		return e.Type == te.Type
	}
	return false
}

// NewError creates a typed error
func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// Errorf creates a typed error with a formatted message
func Errorf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is checks
var (
	ErrIO               = &Error{Type: ErrTypeIO}
	ErrFormat           = &Error{Type: ErrTypeFormat}
	ErrEmptyFile        = &Error{Type: ErrTypeEmptyFile}
	ErrNoRawData        = &Error{Type: ErrTypeNoRawData}
	ErrDegenerateBucket = &Error{Type: ErrTypeDegenerateBucket}
	ErrConfiguration    = &Error{Type: ErrTypeConfiguration}
)

// TypeOf returns the ErrorType of the first typed error in the chain
func TypeOf(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return "", false
}

// IsType reports whether err carries the given ErrorType
func IsType(err error, errType ErrorType) bool {
	t, ok := TypeOf(err)
	return ok && t == errType
}
