package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ValidationError represents a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// ErrValidation is the sentinel error for input violations.
var ErrValidation = ValidationError{}

// StateError represents an illegal aggregate state transition.
// These are hard domain-rule violations, never retried.
type StateError struct {
	Msg string
}

func (e StateError) Error() string {
	if e.Msg == "" {
		return "illegal state"
	}
	return e.Msg
}

func (e StateError) Is(target error) bool {
	_, ok := target.(StateError)
	if ok {
		return true
	}
	_, ok = target.(*StateError)
	return ok
}

// ErrIllegalState is the sentinel error for domain-rule violations.
var ErrIllegalState = StateError{}

// PermissionError represents a rejected authorization decision.
type PermissionError struct {
	Msg string
}

func (e PermissionError) Error() string {
	if e.Msg == "" {
		return "permission denied"
	}
	return e.Msg
}

func (e PermissionError) Is(target error) bool {
	_, ok := target.(PermissionError)
	if ok {
		return true
	}
	_, ok = target.(*PermissionError)
	return ok
}

// ErrPermission is the sentinel error for authorization failures.
var ErrPermission = PermissionError{}

// ConflictError represents a lost optimistic-concurrency race.
// Callers may reload and retry.
type ConflictError struct {
	Resource string
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return "version conflict"
	}
	return fmt.Sprintf("%s version conflict", e.Resource)
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// ErrConflict is the sentinel error for stale writes.
var ErrConflict = ConflictError{}

// UnsupportedEventError is returned by strict handlers for event types
// outside their allowlist.
type UnsupportedEventError struct {
	EventType string
}

func (e UnsupportedEventError) Error() string {
	return fmt.Sprintf("unsupported event type: %s", e.EventType)
}

func (e UnsupportedEventError) Is(target error) bool {
	_, ok := target.(UnsupportedEventError)
	if ok {
		return true
	}
	_, ok = target.(*UnsupportedEventError)
	return ok
}
