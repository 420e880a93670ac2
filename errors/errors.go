package errors

import (
	"fmt"
)

// GatewayError is one occurrence of a failure. It is created where the failure
// is detected and passed unchanged up to the HTTP boundary.
type GatewayError struct {
	// Kind selects the taxonomy entry used for rendering.
	Kind Kind
	// Detail is appended verbatim to the message template, e.g. an offending id.
	Detail string
	// Cause is the underlying error, kept for logs and never rendered.
	Cause error
}

// New creates a GatewayError of the given kind without detail.
func New(kind Kind) *GatewayError {
	return &GatewayError{Kind: kind}
}

// Newf creates a GatewayError whose detail is built from a format string.
func Newf(kind Kind, format string, args ...any) *GatewayError {
	return &GatewayError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Error returns the string representation of the error.
func (e *GatewayError) Error() string {
	msg := e.Message()
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause of the error.
func (e *GatewayError) Unwrap() error { return e.Cause }

// WithDetail sets the request-specific detail and returns the receiver.
func (e *GatewayError) WithDetail(detail string) *GatewayError {
	e.Detail = detail
	return e
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *GatewayError) WithCause(cause error) *GatewayError {
	e.Cause = cause
	return e
}

// HTTPStatus returns the HTTP status for this error's kind.
func (e *GatewayError) HTTPStatus() int { return e.Kind.HTTPStatus() }

// Retryable reports whether the caller may repeat the request later.
func (e *GatewayError) Retryable() bool { return e.Kind.Retryable() }

// Message returns the template of the kind followed by the detail.
func (e *GatewayError) Message() string {
	return e.Kind.Message() + e.Detail
}
