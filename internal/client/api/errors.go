package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means no response was received at all (connection
	// refused, DNS failure, canceled context).
	ErrUnavailable = errors.New("server unavailable")

	// ErrAccountDeactivated is returned for HTTP 403 responses. The backend
	// uses that status exclusively for deactivated accounts.
	ErrAccountDeactivated = errors.New("account deactivated")
)

// APIError is a non-2xx response other than 403. Message carries the
// server-provided "message" field when present, otherwise it is empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: request failed with status %d: %s", e.StatusCode, e.Message)
}
