// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters and configuration
//   - Market data errors (700-799): Transport, HTTP status and parsing failures
//
// The three market data categories form the failure taxonomy of a fetch:
//   - ErrCodeTransportFailed: the request never produced a response
//   - ErrCodeHTTPStatus: a response arrived with a non-success status (see HTTPStatusError)
//   - ErrCodeParseFailed: the response body could not be decoded
//
// Usage:
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeTransportFailed, "failed to reach endpoint", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeHTTPStatus) { ... }
//
//	// Human readable text for display
//	msg := errors.Message(err)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// UnknownErrorMessage is shown for errors that carry no message.
const UnknownErrorMessage = "An unknown error occurred"

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// An *HTTPStatusError anywhere in the chain reports ErrCodeHTTPStatus.
// Returns ErrCodeUnknown otherwise.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return ErrCodeHTTPStatus
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// HTTPStatusError is returned when the upstream answered with a non-success status.
type HTTPStatusError struct {
	StatusCode int    // HTTP status code of the response
	StatusText string // Reason phrase for StatusCode
	Upstream   string // Optional message extracted from the response body
}

// NewHTTPStatusError creates a new HTTPStatusError using the canonical reason
// phrase for statusCode.
func NewHTTPStatusError(statusCode int, upstream string) *HTTPStatusError {
	return &HTTPStatusError{
		StatusCode: statusCode,
		StatusText: http.StatusText(statusCode),
		Upstream:   upstream,
	}
}

// Error implements the error interface.
// With an upstream message the format is "HTTP Error: 429 . rate limited",
// otherwise "HTTP Error: 500 Internal Server Error".
func (e *HTTPStatusError) Error() string {
	if e.Upstream != "" {
		return fmt.Sprintf("HTTP Error: %d . %s", e.StatusCode, e.Upstream)
	}

	return fmt.Sprintf("HTTP Error: %d %s", e.StatusCode, e.StatusText)
}

// IsHTTPStatusError checks if an error is an HTTPStatusError.
// It uses errors.As to check the error chain.
func IsHTTPStatusError(err error) bool {
	var statusErr *HTTPStatusError

	return errors.As(err, &statusErr)
}

// Message renders err as text suitable for an end user. Unlike Error() it
// leaves out error codes. Returns "" for a nil error.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var msg string

	var statusErr *HTTPStatusError

	var e *Error

	switch {
	case errors.As(err, &statusErr):
		msg = statusErr.Error()
	case errors.As(err, &e):
		msg = e.Message
		if e.Cause != nil {
			if cause := Message(e.Cause); cause != UnknownErrorMessage {
				msg = fmt.Sprintf("%s: %s", msg, cause)
			}
		}
	default:
		msg = err.Error()
	}

	if msg == "" {
		return UnknownErrorMessage
	}

	return msg
}
