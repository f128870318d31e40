package spotify

import (
	"fmt"
	"net/http"
)

// Kind classifies an Error. The set is closed: every failed call resolves to
// exactly one Kind.
type Kind int

const (
	// KindHTTP is the catch-all for transport failures, timeouts, undecodable
	// responses and unexpected statuses not covered by a more specific kind.
	KindHTTP Kind = iota
	KindResourceNotFound
	KindBadRequest
	KindInsufficientScope
	KindAuthentication
	// KindImplementation reports invalid arguments supplied by the caller.
	// It is detected before any request is sent and is never suppressed.
	KindImplementation
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindResourceNotFound:
		return "ResourceNotFound"
	case KindBadRequest:
		return "BadRequest"
	case KindInsufficientScope:
		return "InsufficientScope"
	case KindAuthentication:
		return "AuthenticationError"
	case KindImplementation:
		return "ImplementationError"
	default:
		return "HTTPError"
	}
}

// Error represents a failed Spotify API call.
//
// The Error type carries the Kind the failure was classified as, the HTTP
// status code when one was received, and a human readable message prefixed
// with "Error: ". It implements error, and supports errors.Is against the
// sentinel values below by comparing kinds.
type Error struct {
	Kind       Kind   // Classification of the failure
	StatusCode int    // HTTP status, 0 when no response was received
	Message    string // Message, always prefixed with "Error: "
	Err        error  // Underlying cause, if any
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the target error is a Spotify error of the same kind.
//
// This allows errors.Is(err, spotify.ErrResourceNotFound) to work with any
// *Error carrying KindResourceNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Predefined errors for matching with errors.Is.
var (
	ErrHTTP              = &Error{Kind: KindHTTP, Message: "Error: http error"}
	ErrResourceNotFound  = &Error{Kind: KindResourceNotFound, Message: "Error: resource not found"}
	ErrBadRequest        = &Error{Kind: KindBadRequest, Message: "Error: bad request"}
	ErrInsufficientScope = &Error{Kind: KindInsufficientScope, Message: "Error: insufficient scope"}
	ErrAuthentication    = &Error{Kind: KindAuthentication, Message: "Error: authentication failed"}
	ErrImplementation    = &Error{Kind: KindImplementation, Message: "Error: invalid argument"}
)

// kindForStatus maps an HTTP status code to an error kind. Only the status
// participates; response bodies never change the classification.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusNotFound:
		return KindResourceNotFound
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusForbidden:
		return KindInsufficientScope
	case http.StatusUnauthorized:
		return KindAuthentication
	default:
		return KindHTTP
	}
}

func newError(kind Kind, status int, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: status,
		Message:    "Error: " + fmt.Sprintf(format, args...),
		Err:        cause,
	}
}

// statusError builds the error for a response whose status was not expected.
func statusError(expect []int, resp *Response) *Error {
	msg := fmt.Sprintf("expected status %v, got %s", expect, resp.Status)
	if detail := apiErrorMessage(resp.Body); detail != "" {
		msg += ": " + detail
	}
	return newError(kindForStatus(resp.StatusCode), resp.StatusCode, nil, "%s", msg)
}

// transportError wraps a failure that happened before a response arrived.
func transportError(err error) *Error {
	return newError(KindHTTP, 0, err, "%v", err)
}

// invalidArgument reports a caller mistake detected before sending anything.
func invalidArgument(format string, args ...interface{}) *Error {
	return newError(KindImplementation, 0, nil, format, args...)
}
