package recovery

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/vetdesk/vetdesk/internal/client/api"
)

// User-facing strings for the flow. One error slot, one string at a time.
const (
	msgCodeRequired     = "Please enter the reset code."
	msgPasswordRequired = "Please fill in both password fields."
	msgPasswordMismatch = "Passwords do not match."
	msgPasswordTooShort = "Password must be at least 8 characters."
	msgRequestFailed    = "Could not complete the request. Please try again."
)

var validate = validator.New()

// passwordInput carries the tag-driven part of the password rules. The
// min-length rule is checked separately so that a mismatch is reported
// before a too-short password, matching the required order: both fields
// present, then equal, then long enough.
type passwordInput struct {
	NewPassword     string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

// validatePasswords returns the user-facing message for the first failed
// rule, or "" when the pair is acceptable.
func validatePasswords(newPassword, confirmPassword string) string {
	in := passwordInput{NewPassword: newPassword, ConfirmPassword: confirmPassword}

	if err := validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			switch ve[0].Tag() {
			case "required":
				return msgPasswordRequired
			case "eqfield":
				return msgPasswordMismatch
			}
		}
		return msgRequestFailed
	}

	if err := validate.Var(newPassword, "min=8"); err != nil {
		return msgPasswordTooShort
	}
	return ""
}

// serverMessage maps a failed network call to the string shown on the
// active step: the server-provided message verbatim when there is one,
// otherwise a generic fallback.
func serverMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgRequestFailed
}
