// Package recovery implements the forgot-password flow as an explicit
// state machine: request a reset code, gate on the entered code, set the
// new password, then a timed return to login. The flow runs without a
// session; the user is not authenticated while recovering.
package recovery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vetdesk/vetdesk/internal/client/api"
	"github.com/vetdesk/vetdesk/internal/logging"
)

// Step is the current position in the flow. Transitions are linear;
// the only way back is Back.
type Step int

const (
	StepAwaitingCode Step = iota
	StepAwaitingVerification
	StepAwaitingNewPassword
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepAwaitingCode:
		return "awaiting-code"
	case StepAwaitingVerification:
		return "awaiting-verification"
	case StepAwaitingNewPassword:
		return "awaiting-new-password"
	case StepCompleted:
		return "completed"
	}
	return "unknown"
}

// Reset codes are only issued for veterinarian accounts; the role is
// forced on the request regardless of how the user reached the flow.
const resetRole = "veterinarian"

// completedResetDelay is how long the success screen stays up before the
// machine clears itself and returns the user to login.
const completedResetDelay = 2 * time.Second

var (
	// ErrBusy rejects a submission while the step's network call is in flight.
	ErrBusy = errors.New("recovery: submission already in flight")

	// ErrInvalidStep rejects an operation that does not belong to the
	// current step.
	ErrInvalidStep = errors.New("recovery: operation not valid in current step")

	// ErrValidation means local input validation failed before any network
	// call; the user-facing reason is in ErrorMessage.
	ErrValidation = errors.New("recovery: validation failed")
)

// Snapshot is the render state of the flow.
type Snapshot struct {
	Step  Step
	Email string
	Error string
	Busy  bool
}

// Machine drives the recovery flow. All state lives here; the rendering
// layer only calls the step methods and reads Snapshot.
type Machine struct {
	api api.Client
	log logging.Logger

	// onReset fires after the Completed screen times out or the flow is
	// canceled, so the caller can return to the login view. May be nil.
	onReset func()

	// resetDelay is completedResetDelay in production; tests shorten it.
	resetDelay time.Duration

	mu         sync.Mutex
	step       Step
	email      string
	resetToken string
	errMsg     string

	// generation increments on every reset. In-flight network calls
	// capture it and drop their result if the flow was reset meanwhile;
	// the step alone cannot tell, a cancel lands back on the same first
	// step the call started from.
	generation uint64

	// one in-flight guard per network-bearing step
	requestingCode    bool
	resettingPassword bool

	timer *time.Timer
}

func NewMachine(apiClient api.Client, log logging.Logger, onReset func()) *Machine {
	return &Machine{
		api:        apiClient,
		log:        log.With("component", "recovery"),
		onReset:    onReset,
		resetDelay: completedResetDelay,
	}
}

// Snapshot returns the current render state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Step:  m.step,
		Email: m.email,
		Error: m.errMsg,
		Busy:  m.requestingCode || m.resettingPassword,
	}
}

// RequestCode submits the email and asks the backend to send a reset
// code. On success the flow advances to the verification step, retaining
// the email. On failure it stays put with the error slot populated.
func (m *Machine) RequestCode(ctx context.Context, email string) error {
	m.mu.Lock()
	if m.step != StepAwaitingCode {
		m.mu.Unlock()
		return ErrInvalidStep
	}
	if m.requestingCode {
		m.mu.Unlock()
		return ErrBusy
	}
	m.requestingCode = true
	m.errMsg = ""
	gen := m.generation
	m.mu.Unlock()

	err := m.api.RequestPasswordReset(ctx, email, resetRole)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestingCode = false

	if gen != m.generation || m.step != StepAwaitingCode {
		// the flow was canceled while the call was in flight; drop the result
		return nil
	}
	if err != nil {
		m.errMsg = serverMessage(err)
		m.log.Warn(ctx, "reset code request failed", "err", err)
		return err
	}

	m.email = email
	m.step = StepAwaitingVerification
	m.log.Info(ctx, "reset code requested", "email", email)
	return nil
}

// SubmitCode gates on the entered code. No network call happens here: a
// non-empty code advances the flow, an empty one is rejected. The code is
// retained and sent along with the new password later.
func (m *Machine) SubmitCode(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != StepAwaitingVerification {
		return ErrInvalidStep
	}
	m.errMsg = ""

	if code == "" {
		m.errMsg = msgCodeRequired
		return ErrValidation
	}

	m.resetToken = code
	m.step = StepAwaitingNewPassword
	return nil
}

// SubmitNewPassword validates the password pair locally (both present,
// equal, at least 8 characters, first failure wins) and only then calls
// the reset endpoint. Success moves to Completed and schedules the timed
// return to login.
func (m *Machine) SubmitNewPassword(ctx context.Context, newPassword, confirmPassword string) error {
	m.mu.Lock()
	if m.step != StepAwaitingNewPassword {
		m.mu.Unlock()
		return ErrInvalidStep
	}
	if m.resettingPassword {
		m.mu.Unlock()
		return ErrBusy
	}
	m.errMsg = ""

	if msg := validatePasswords(newPassword, confirmPassword); msg != "" {
		m.errMsg = msg
		m.mu.Unlock()
		return ErrValidation
	}

	m.resettingPassword = true
	email, token := m.email, m.resetToken
	gen := m.generation
	m.mu.Unlock()

	err := m.api.ResetPassword(ctx, email, token, newPassword)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resettingPassword = false

	if gen != m.generation || m.step != StepAwaitingNewPassword {
		return nil
	}
	if err != nil {
		m.errMsg = serverMessage(err)
		m.log.Warn(ctx, "password reset failed", "err", err)
		return err
	}

	m.step = StepCompleted
	m.log.Info(ctx, "password reset completed", "email", email)
	m.timer = time.AfterFunc(m.resetDelay, m.expireCompleted)
	return nil
}

// Back steps to the previous screen. It is free: no network call, no
// validation, and it clears only the error slot. From the first step it
// does nothing.
func (m *Machine) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.step {
	case StepAwaitingVerification:
		m.step = StepAwaitingCode
	case StepAwaitingNewPassword:
		m.step = StepAwaitingVerification
	default:
		return
	}
	m.errMsg = ""
}

// Cancel closes the flow entirely, clearing every field, and fires the
// reset hook so the caller lands back on login.
func (m *Machine) Cancel() {
	m.mu.Lock()
	hook := m.resetLocked()
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// expireCompleted is the timed auto-transition out of the success screen.
// The step check and the reset share one critical section; a flow that
// was canceled and restarted in the meantime must not be wiped again.
func (m *Machine) expireCompleted() {
	m.mu.Lock()
	if m.step != StepCompleted {
		m.mu.Unlock()
		return
	}
	hook := m.resetLocked()
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// resetLocked clears the flow and returns the hook for the caller to fire
// after unlocking. Callers must hold mu.
func (m *Machine) resetLocked() func() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.generation++
	m.step = StepAwaitingCode
	m.email = ""
	m.resetToken = ""
	m.errMsg = ""
	return m.onReset
}
