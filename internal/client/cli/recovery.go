package cli

import (
	"context"
	"os"

	"github.com/vetdesk/vetdesk/internal/client/recovery"
)

// Forgot drives the password-recovery flow. Each iteration renders the
// machine's current step and feeds one submission back into it; "back"
// walks one step towards login, and from the first step it cancels the
// flow entirely.
func (a *App) Forgot(ctx context.Context) error {
	for {
		snap := a.recovery.Snapshot()

		switch snap.Step {
		case recovery.StepAwaitingCode:
			email, err := getSimpleText(a.reader, "Enter your account email ('back' to cancel)", os.Stdout)
			if err != nil {
				return err
			}
			if email == "back" {
				a.recovery.Cancel()
				return nil
			}
			if err := a.recovery.RequestCode(ctx, email); err != nil {
				a.printRecoveryError()
				continue
			}
			printlnFn("A reset code has been sent to your email.")

		case recovery.StepAwaitingVerification:
			code, err := getSimpleText(a.reader, "Enter the reset code ('back' to go back)", os.Stdout)
			if err != nil {
				return err
			}
			if code == "back" {
				a.recovery.Back()
				continue
			}
			if err := a.recovery.SubmitCode(code); err != nil {
				a.printRecoveryError()
			}

		case recovery.StepAwaitingNewPassword:
			newPassword, err := getPassword(os.Stdout, "New password")
			if err != nil {
				return err
			}
			confirm, err := getPassword(os.Stdout, "Confirm password")
			if err != nil {
				wipe(newPassword)
				return err
			}

			err = a.recovery.SubmitNewPassword(ctx, string(newPassword), string(confirm))
			wipe(newPassword)
			wipe(confirm)
			if err != nil {
				a.printRecoveryError()
			}

		case recovery.StepCompleted:
			printlnFn("Password updated. Returning to login...")
			// the machine clears itself and navigates back after its delay
			return nil
		}
	}
}

func (a *App) printRecoveryError() {
	if msg := a.recovery.Snapshot().Error; msg != "" {
		printlnFn(msg)
	}
}
