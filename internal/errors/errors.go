// Package errors provides shared error types for the Wikipedia API client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError indicates the Wikipedia API answered with a non-success status.
type HTTPError struct {
	StatusCode int    // numeric HTTP status
	Status     string // reason phrase, e.g. "Service Unavailable"
	URL        string // request URL, not part of the message
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Wikipedia API request failed: %d %s", e.StatusCode, e.Status)
}

// NewHTTPError creates an HTTPError, filling the reason phrase from the status code
// when the transport did not report one.
func NewHTTPError(statusCode int, status, url string) *HTTPError {
	if status == "" {
		status = http.StatusText(statusCode)
	}
	return &HTTPError{
		StatusCode: statusCode,
		Status:     status,
		URL:        url,
	}
}

// DecodeError indicates the response body was not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode Wikipedia API response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates the API response carried no page map at all.
// A page flagged as missing is a normal outcome and does not use this type.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return "記事が見つかりません"
}

// NewNotFoundError creates a NotFoundError for a page lookup.
func NewNotFoundError(title string) *NotFoundError {
	return &NotFoundError{Title: title}
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsHTTP returns true if err is or wraps an HTTPError.
func IsHTTP(err error) bool {
	var target *HTTPError
	return errors.As(err, &target)
}

// IsDecode returns true if err is or wraps a DecodeError.
func IsDecode(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// Code returns a short label for err, used as a metrics dimension.
func Code(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &httpErr):
		return fmt.Sprintf("http_%d", httpErr.StatusCode)
	case IsDecode(err):
		return "decode"
	case IsNotFound(err):
		return "not_found"
	case IsValidation(err):
		return "validation"
	default:
		return "transport"
	}
}
