package auth

import (
	"errors"

	"github.com/vetdesk/vetdesk/internal/client/api"
)

// User-facing error strings. Exactly one is retained per dispatcher.
const (
	msgDeactivated = "Your account has been deactivated. Please contact support."
	msgUnavailable = "Could not reach the server. Please try again."
	msgGeneric     = "Login failed. Please try again."
)

// userMessage maps a transport error to the string shown on the form.
// The 403 deactivated case wins over any server-provided message.
func userMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrAccountDeactivated):
		return msgDeactivated
	case errors.Is(err, api.ErrUnavailable):
		return msgUnavailable
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgGeneric
}
