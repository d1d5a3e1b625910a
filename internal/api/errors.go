package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind categorizes request failures. The kind is decided exactly once,
// at the HTTP boundary, so callers branch on it instead of re-inspecting
// error shapes.
type ErrorKind string

const (
	// KindTransport indicates the HTTP call itself could not complete
	// (DNS, connection refused, platform-level timeout).
	KindTransport ErrorKind = "transport"
	// KindHTTP indicates the backend answered with a non-2xx status.
	KindHTTP ErrorKind = "http"
	// KindPrecondition indicates a client-side failure raised before any
	// network activity, e.g. an authorized call without a session.
	KindPrecondition ErrorKind = "precondition"
)

// Error is the structured error returned for every failed request.
// For KindHTTP it carries the numeric status and the parsed response body,
// which registration/login forms use for field-level error mapping.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Body is the parsed response body: a JSON value when the backend sent
	// JSON, the raw text otherwise, nil when the body was empty.
	Body  any
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	case KindTransport:
		if e.Cause != nil {
			return fmt.Sprintf("api: request failed: %v", e.Cause)
		}
		return "api: request failed"
	default:
		if e.Cause != nil {
			return fmt.Sprintf("api: %s: %v", e.Message, e.Cause)
		}
		return "api: " + e.Message
	}
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewHTTPError builds a KindHTTP error from a response status and parsed body.
// The message is the backend's string "detail" field when present, otherwise
// the standard status text.
func NewHTTPError(status int, body any) *Error {
	message := http.StatusText(status)
	if message == "" {
		message = "request failed"
	}
	if obj, ok := body.(map[string]any); ok {
		if detail, ok := obj["detail"].(string); ok && detail != "" {
			message = detail
		}
	}
	return &Error{Kind: KindHTTP, Status: status, Message: message, Body: body}
}

// TransportError wraps a failure of the HTTP call itself.
func TransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: "request failed", Cause: cause}
}

// NotAuthenticated builds the precondition error raised when an authorized
// call is attempted without a current access token.
func NotAuthenticated() *Error {
	return &Error{Kind: KindPrecondition, Message: "not authenticated"}
}

// PreconditionError builds a KindPrecondition error for client-side
// failures raised before any network activity, e.g. an unencodable
// request body.
func PreconditionError(message string, cause error) *Error {
	return &Error{Kind: KindPrecondition, Message: message, Cause: cause}
}

// DecodeError wraps a malformed success body. The server answered 2xx but
// the payload is unusable, so it is classified with the transport
// failures: retrying may help, the session is not at fault.
func DecodeError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: "decode response body", Cause: cause}
}

// AsError returns err as an *Error when it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an HTTP error with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindHTTP && apiErr.Status == status
}

// IsAuthFailure reports whether err is an HTTP 401 or 403. A refresh call
// failing this way means the refresh token itself is no longer usable.
func IsAuthFailure(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindTransport
}

// IsNotAuthenticated reports whether err is the client-side precondition
// failure raised before any network attempt.
func IsNotAuthenticated(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindPrecondition
}
