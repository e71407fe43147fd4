// Package errors provides the error shapes surfaced by the client SDK.
// The backend exposes no structured error codes, so an APIError carries the
// human-readable message plus a recoverability category for retry policies.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, 429, network timeouts.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 404 Not Found, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// FallbackMessage is used when a failed response carries neither a
// "message" nor an "error" field.
const FallbackMessage = "Request failed"

// ErrInvalidResponse marks a 2xx response whose shape is missing a required
// field (token, id, email, ...).
var ErrInvalidResponse = errors.New("invalid response")

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	Category   ErrorCategory
}

// Error returns the backend supplied message only, so callers can match on
// it the same way the backend words it.
func (e *APIError) Error() string {
	return e.Message
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Category == Irrecoverable
	}
	return false
}

// IsNotFoundMessage reports whether a backend message means "nothing there".
// The backend signals this only through message text containing "notfound";
// keep every call site on this predicate so it can be replaced by a status
// code check once the backend returns one.
func IsNotFoundMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "notfound")
}

// IsNotFound applies IsNotFoundMessage to err's message.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return IsNotFoundMessage(err.Error())
}

// InvalidResponse builds an ErrInvalidResponse with detail.
func InvalidResponse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidResponse, fmt.Sprintf(format, args...))
}
