package auth

import (
	"context"
	"fmt"
	"sync"

	"lighthouse.app/internal/core/navigation"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
	"lighthouse.app/pkg/validation"
)

// Stage labels reported to metrics
const (
	metricStageUsername = "username"
	metricStagePIN      = "pin"
)

// SessionWriter receives the credentials of a successful login
type SessionWriter interface {
	SetUser(ctx context.Context, username, jwt string) error
}

// Flow drives the username then PIN login conversation. Every method is safe
// for concurrent use; a full PIN is submitted exactly once.
type Flow struct {
	backend ports.AuthBackend
	session SessionWriter
	logger  ports.Logger
	metrics ports.MetricsRecorder

	mu          sync.Mutex
	stage       Stage
	username    string
	pin         pin
	validating  bool
	submitting  bool
	lastFailure error
}

type FlowDependencies struct {
	Backend ports.AuthBackend
	Session SessionWriter
	Logger  ports.Logger
	Metrics ports.MetricsRecorder
}

func NewFlow(deps FlowDependencies) (*Flow, error) {
	if deps.Backend == nil {
		return nil, errors.NewValidationError("auth backend is required")
	}
	if deps.Session == nil {
		return nil, errors.NewValidationError("session is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics recorder is required")
	}

	return &Flow{
		backend: deps.Backend,
		session: deps.Session,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		stage:   StageUsername,
	}, nil
}

// State returns the current flow state
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

// SubmitUsername asks the backend whether candidate may log in. On success
// the flow moves to PIN entry; otherwise it stays on the username stage with
// the candidate kept for editing.
func (f *Flow) SubmitUsername(ctx context.Context, candidate string) (FlowState, error) {
	f.mu.Lock()
	if f.stage != StageUsername {
		state := f.stateLocked()
		f.mu.Unlock()
		return state, errors.NewValidationError("username already accepted")
	}
	if f.validating {
		state := f.stateLocked()
		f.mu.Unlock()
		return state, nil
	}
	f.username = candidate
	f.lastFailure = nil
	f.validating = true
	f.mu.Unlock()

	err := f.validateUsername(ctx, candidate)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.validating = false
	if err != nil {
		f.lastFailure = err
		f.metrics.RecordLoginAttempt(metricStageUsername, ports.OutcomeFailure)
		f.logger.Debug("Username rejected",
			ports.F("username", candidate),
			ports.F("kind", errorKind(err)),
			ports.F("error", err))
		return f.stateLocked(), err
	}

	f.stage = StagePIN
	f.pin.clear()
	f.metrics.RecordLoginAttempt(metricStageUsername, ports.OutcomeSuccess)
	f.logger.Debug("Username accepted", ports.F("username", candidate))
	return f.stateLocked(), nil
}

func (f *Flow) validateUsername(ctx context.Context, candidate string) error {
	if !validation.IsNotEmpty(candidate) {
		return errors.NewValidationRejectedError("username is required")
	}

	check, err := f.backend.ValidateUsername(ctx, candidate)
	if err != nil {
		return fmt.Errorf("validate username: %w", asFlowError(err))
	}
	if check == nil {
		return errors.NewRejectedResponseError("empty username validation response", nil)
	}
	if !check.Success {
		msg := check.Message
		if msg == "" {
			msg = "invalid username"
		}
		return errors.NewValidationRejectedError(msg)
	}
	return nil
}

// PressDigit appends one digit to the PIN. The press that completes the PIN
// submits it; presses while a submission is in flight or the PIN is full are
// ignored. A non-nil Outcome means the login succeeded.
func (f *Flow) PressDigit(ctx context.Context, digit string) (FlowState, *Outcome, error) {
	d, err := parseDigit(digit)
	if err != nil {
		return f.State(), nil, err
	}

	f.mu.Lock()
	if f.stage != StagePIN {
		state := f.stateLocked()
		f.mu.Unlock()
		return state, nil, errors.NewValidationError("enter a username first")
	}
	if f.submitting || f.pin.full() {
		state := f.stateLocked()
		f.mu.Unlock()
		return state, nil, nil
	}

	f.pin.push(d)
	if !f.pin.full() {
		state := f.stateLocked()
		f.mu.Unlock()
		return state, nil, nil
	}

	f.submitting = true
	f.lastFailure = nil
	credentials := ports.LoginCredentials{Username: f.username, Password: f.pin.String()}
	f.mu.Unlock()

	return f.submit(ctx, credentials)
}

func (f *Flow) submit(ctx context.Context, credentials ports.LoginCredentials) (FlowState, *Outcome, error) {
	f.logger.Debug("Submitting PIN", ports.F("username", credentials.Username))

	result, err := f.backend.Login(ctx, credentials)
	if err != nil {
		err = fmt.Errorf("login: %w", asFlowError(err))
	} else {
		err = f.storeSession(ctx, credentials.Username, result)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		f.lastFailure = err
		f.pin.clear()
		f.metrics.RecordLoginAttempt(metricStagePIN, ports.OutcomeFailure)
		f.logger.Debug("Login failed",
			ports.F("username", credentials.Username),
			ports.F("kind", errorKind(err)),
			ports.F("error", err))
		return f.stateLocked(), nil, err
	}

	f.metrics.RecordLoginAttempt(metricStagePIN, ports.OutcomeSuccess)
	f.logger.Info("User logged in", ports.F("username", credentials.Username))

	outcome := &Outcome{
		NavigateTo: navigation.RouteHome,
		Username:   credentials.Username,
		UserID:     result.UserID,
	}
	f.resetLocked()
	return f.stateLocked(), outcome, nil
}

func (f *Flow) storeSession(ctx context.Context, username string, result *ports.LoginResult) error {
	if result == nil || result.UserID == "" || result.JWT == "" {
		return errors.NewLoginRejectedError("malformed login response", nil)
	}

	err := f.session.SetUser(ctx, username, result.JWT)
	if err == nil {
		return nil
	}
	if errors.IsStorageError(err) {
		// the session is authenticated in memory; only durability was lost
		f.logger.Warn("Logged in without persisting session", ports.F("error", err))
		return nil
	}
	return fmt.Errorf("store session: %w", err)
}

// DeleteDigit removes the last PIN digit
func (f *Flow) DeleteDigit() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == StagePIN && !f.submitting {
		f.pin.pop()
	}
	return f.stateLocked()
}

// ClearPIN removes every PIN digit
func (f *Flow) ClearPIN() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == StagePIN && !f.submitting {
		f.pin.clear()
	}
	return f.stateLocked()
}

// Back returns from PIN entry to the username stage, keeping the username
func (f *Flow) Back() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == StagePIN && !f.submitting {
		f.stage = StageUsername
		f.pin.clear()
		f.lastFailure = nil
	}
	return f.stateLocked()
}

// Reset discards all input unless a submission is in flight
func (f *Flow) Reset() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.submitting && !f.validating {
		f.resetLocked()
	}
	return f.stateLocked()
}

func (f *Flow) resetLocked() {
	f.stage = StageUsername
	f.username = ""
	f.pin.clear()
	f.lastFailure = nil
}

func (f *Flow) stateLocked() FlowState {
	return FlowState{
		Stage:       f.stage,
		Username:    f.username,
		DigitCount:  len(f.pin.digits),
		PINLength:   PINLength,
		Validating:  f.validating,
		Submitting:  f.submitting,
		ErrorKind:   errorKind(f.lastFailure),
		Error:       errors.Message(f.lastFailure),
		LastFailure: f.lastFailure,
	}
}

// asFlowError keeps typed upstream errors and treats anything else as a
// request that never completed
func asFlowError(err error) error {
	if errors.TypeOf(err) != errors.ErrorTypeUnknown {
		return err
	}
	return errors.NewNetworkFailureError("request could not complete", err)
}
