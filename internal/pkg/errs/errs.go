package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the agent distinguishes.
// Callers classify with errors.Is so wrapped errors keep their class.
var (
	// ErrPermissionDenied means location permission is absent. Terminal:
	// never retried, surfaced once, requires explicit user action.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrNetwork is a transient transport failure, retried with backoff
	// while the session is foregrounded.
	ErrNetwork = errors.New("network error")

	// ErrStore is a presence store failure, treated like ErrNetwork.
	ErrStore = errors.New("presence store error")

	// ErrStoreUnauthorized is a store authorization failure. Terminal.
	ErrStoreUnauthorized = errors.New("presence store unauthorized")

	// ErrSDKInitTimeout means the mapping SDK never became ready within
	// its budget. Reported but never blocks app usability.
	ErrSDKInitTimeout = errors.New("map sdk initialization timed out")

	// ErrInvariantViolation marks a broken internal invariant, for
	// example a duplicate presence record. Triggers a forced state
	// reset rather than propagating.
	ErrInvariantViolation = errors.New("invariant violation")
)

// PermissionDenied wraps a cause as a terminal permission failure.
func PermissionDenied(cause error) error {
	if cause == nil {
		return ErrPermissionDenied
	}
	return fmt.Errorf("%w: %v", ErrPermissionDenied, cause)
}

// Network wraps a cause as a transient network failure.
func Network(cause error) error {
	if cause == nil {
		return ErrNetwork
	}
	return fmt.Errorf("%w: %v", ErrNetwork, cause)
}

// Store wraps a cause as a store failure.
func Store(cause error) error {
	if cause == nil {
		return ErrStore
	}
	return fmt.Errorf("%w: %v", ErrStore, cause)
}

// Invariant reports a broken invariant with a formatted description.
func Invariant(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// SDKInitError carries how many readiness probes ran before giving up.
type SDKInitError struct {
	Attempts int
	Err      error
}

func (e *SDKInitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("map sdk initialization timed out after %d probes: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("map sdk initialization timed out after %d probes", e.Attempts)
}

// Is lets errors.Is(err, ErrSDKInitTimeout) match without losing the cause.
func (e *SDKInitError) Is(target error) bool {
	return target == ErrSDKInitTimeout
}

func (e *SDKInitError) Unwrap() error {
	return e.Err
}

// IsTerminal reports whether the error must not be retried.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrStoreUnauthorized)
}

// IsTransient reports whether the error may be retried with backoff.
func IsTransient(err error) bool {
	if IsTerminal(err) {
		return false
	}
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrStore)
}
