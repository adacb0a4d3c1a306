package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBackendUnreachable wraps transport-level failures where no response
	// was received from the service backend.
	ErrBackendUnreachable = errors.New("service backend unreachable")

	// ErrSessionNotFound is returned by session stores when no complete
	// session exists under the given id.
	ErrSessionNotFound = errors.New("session not found")
)

// APIError is the single failure shape for non-2xx backend responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

// SessionExpired reports whether the response signals that the bearer token is
// no longer accepted. Policy (logout + redirect) is decided by the caller, not
// here. 403 is included alongside 401; the backend contract does not pin the
// exact signal down.
func (e *APIError) SessionExpired() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
