package client

import (
	apierrors "github.com/leafkeeper/leafkeeper-client/internal/errors"
)

// APIError is returned for every non-2xx response. Its Error method returns
// the backend's message.
type APIError = apierrors.APIError

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrInvalidResponse  = apierrors.ErrInvalidResponse
	ErrNotAuthenticated = apierrors.ErrNotAuthenticated
)

// IsNotFound reports whether err carries the backend's "notfound" wording.
// It is the only place that heuristic lives.
func IsNotFound(err error) bool { return apierrors.IsNotFound(err) }
