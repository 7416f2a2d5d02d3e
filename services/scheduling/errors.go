package scheduling

import "fmt"

// ValidationError reports malformed or missing input. It is terminal and
// never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports that the requested slot is unavailable. Callers may
// retry with a different slot.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

// NotFoundError reports a missing salon, schedule or appointment.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// TransientStoreError wraps a store timeout or outage. Reads may apply the
// fail-open policy; writes always surface it.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("transient store error during %s: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

func NewTransientStoreError(op string, err error) error {
	return &TransientStoreError{Op: op, Err: err}
}
