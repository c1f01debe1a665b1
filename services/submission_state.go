package services

import (
	"fmt"
	"sync"
)

// SubmissionState mirrors the landing page's submission lifecycle. The
// service computes transitions; the page renders them (loader, error dialog,
// redirect).
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

func (s SubmissionState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Thank-you navigation scheduled after a successful CRM submission. Popup
// forms wait an extra 100ms so the popup's close animation finishes first.
const (
	ThankYouPage         = "thankyou.html"
	RedirectDelayMs      = 300
	PopupRedirectDelayMs = 400
)

// RedirectDelay returns the navigation delay hint for a form.
func RedirectDelay(isPopup bool) int {
	if isPopup {
		return PopupRedirectDelayMs
	}
	return RedirectDelayMs
}

// SubmissionTracker enforces the Idle -> Submitting -> {Success | Error}
// machine, with Error -> Idle on dismissal and Success -> Idle after
// navigation. It holds no persistence; a fresh tracker starts every attempt.
type SubmissionTracker struct {
	mu    sync.Mutex
	state SubmissionState
}

func NewSubmissionTracker() *SubmissionTracker {
	return &SubmissionTracker{state: StateIdle}
}

// State returns the current state.
func (t *SubmissionTracker) State() SubmissionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Begin moves Idle -> Submitting, entered before any network call.
func (t *SubmissionTracker) Begin() error {
	return t.transition(StateIdle, StateSubmitting)
}

// Succeed moves Submitting -> Success.
func (t *SubmissionTracker) Succeed() error {
	return t.transition(StateSubmitting, StateSuccess)
}

// Fail moves Submitting -> Error.
func (t *SubmissionTracker) Fail() error {
	return t.transition(StateSubmitting, StateError)
}

// Dismiss moves Error -> Idle, so the visitor may retry.
func (t *SubmissionTracker) Dismiss() error {
	return t.transition(StateError, StateIdle)
}

// Reset moves Success -> Idle after navigation, and also unwinds a
// Submitting attempt that was skipped before any network call.
func (t *SubmissionTracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateSuccess && t.state != StateSubmitting {
		return fmt.Errorf("invalid transition: %s -> %s", t.state, StateIdle)
	}
	t.state = StateIdle
	return nil
}

func (t *SubmissionTracker) transition(from, to SubmissionState) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != from {
		return fmt.Errorf("invalid transition: %s -> %s", t.state, to)
	}
	t.state = to
	return nil
}
