package registrar

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind discriminates the failure classes of a registrar API call.
type ErrorKind string

const (
	// KindTransport is a connection, DNS, or timeout failure. Retryable.
	KindTransport ErrorKind = "transport"

	// KindHTTP is a non-2xx HTTP response. Retryable.
	KindHTTP ErrorKind = "http"

	// KindApplication is a response whose envelope status is not SUCCESS.
	// Surfaced immediately, never retried.
	KindApplication ErrorKind = "application"

	// KindNotFound is a local condition: no exact name match in the account.
	KindNotFound ErrorKind = "not_found"
)

// Sentinel errors, one per kind, for errors.Is matching.
var (
	ErrTransport   = errors.New("registrar: transport failure")
	ErrHTTPStatus  = errors.New("registrar: http status error")
	ErrApplication = errors.New("registrar: api error")
	ErrNotFound    = errors.New("registrar: domain not found")
)

// Error is the typed failure returned by every client operation.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is a human-readable description, remote-supplied when available.
	Message string

	// Status is the last HTTP status code, when one was observed.
	Status int

	// Details is the raw response body, when one was received.
	Details json.RawMessage

	// Cause is the underlying error, when one exists.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap exposes the kind sentinel and the underlying cause, so errors.Is
// matches both the failure class and causes like context.DeadlineExceeded.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Kind {
	case KindTransport:
		errs = append(errs, ErrTransport)
	case KindHTTP:
		errs = append(errs, ErrHTTPStatus)
	case KindApplication:
		errs = append(errs, ErrApplication)
	case KindNotFound:
		errs = append(errs, ErrNotFound)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewTransportError wraps a transport-level failure.
func NewTransportError(cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: fmt.Sprintf("request failed: %v", cause),
		Cause:   cause,
	}
}

// NewHTTPError wraps a non-2xx HTTP response.
func NewHTTPError(status int, body []byte) *Error {
	return &Error{
		Kind:    KindHTTP,
		Message: fmt.Sprintf("HTTP %d: %s", status, body),
		Status:  status,
		Details: json.RawMessage(body),
	}
}

// NewAPIError wraps a response whose envelope signaled non-success.
func NewAPIError(message string, status int, body []byte) *Error {
	if message == "" {
		message = "Unknown API error"
	}
	return &Error{
		Kind:    KindApplication,
		Message: message,
		Status:  status,
		Details: json.RawMessage(body),
	}
}

// NewNotFoundError reports a domain absent from the account listing.
func NewNotFoundError(domain string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("Domain %s not found in account", domain),
		Status:  404,
	}
}
