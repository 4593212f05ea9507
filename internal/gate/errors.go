package gate

import (
	"errors"
	"net/http"
)

// Kind classifies every way a request can be rejected.
type Kind int

const (
	KindInternal Kind = iota
	KindMethodNotAllowed
	KindBadRequest
	KindUnauthenticated
	KindForbidden
)

// Status returns the HTTP status code a Kind is reported with.
func (k Kind) Status() int {
	switch k {
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is the only error type the gate returns.
// Code is a short description for the envelope "error" field,
// Message is suitable for direct display to the user.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	// Wrapped is the underlying cause. It is logged, never shown to the caller.
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return e.Code + ": " + e.Wrapped.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

func newError(kind Kind, code, message string, wrapped error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Wrapped: wrapped,
	}
}

// KindOf returns the Kind of err. Errors not produced by the gate are internal.
func KindOf(err error) Kind {
	var gateErr *Error
	if errors.As(err, &gateErr) {
		return gateErr.Kind
	}
	return KindInternal
}

func errMethodNotAllowed(method string) *Error {
	return newError(KindMethodNotAllowed, "Method not allowed",
		"This endpoint only accepts "+method+" requests", nil)
}

var errMissingAuthHeader = newError(KindUnauthenticated, "Missing or invalid authorization header",
	"Please provide a valid Bearer token", nil)

var errMissingUserID = newError(KindBadRequest, "Missing userId parameter",
	"The userId query parameter is required", nil)

func errLoadDenied(cause error) *Error {
	return newError(KindUnauthenticated, "Invalid token or user mismatch",
		"The provided token does not match the requested user", cause)
}

func errInvalidToken(cause error) *Error {
	return newError(KindUnauthenticated, "Invalid Google token",
		"The provided access token is invalid or expired", cause)
}

var errUserMismatch = newError(KindForbidden, "User ID mismatch",
	"The user ID does not match the authenticated user", nil)

func errLoadInternal(cause error) *Error {
	return newError(KindInternal, "Internal server error",
		"An unexpected error occurred while loading data", cause)
}

func errSaveInternal(cause error) *Error {
	return newError(KindInternal, "Internal server error",
		"An unexpected error occurred while saving data", cause)
}
