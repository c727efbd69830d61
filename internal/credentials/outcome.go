package credentials

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when a Manager is used before Open or
	// after Close.
	ErrNotInitialized = errors.New("credential store not initialized")
	// ErrPolicyMismatch is returned when an operation belongs to the other
	// storage policy.
	ErrPolicyMismatch = errors.New("operation not supported by credentials policy")
	// ErrDuplicateUser is the error form of StatusDuplicate.
	ErrDuplicateUser = errors.New("username already registered")
	// ErrRejected is the error form of StatusRejected.
	ErrRejected = errors.New("credential rejected")
)

// Status is the kind of result produced by Save.
type Status int

const (
	StatusSaved Status = iota + 1
	StatusRejected
	StatusDuplicate
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusRejected:
		return "rejected"
	case StatusDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Outcome is the expected-result side of Save. Storage failures are
// reported as errors instead.
type Outcome struct {
	Status Status
	// Reason is a user-facing message for StatusRejected and StatusDuplicate.
	Reason string
}

// OK reports whether the credential was persisted.
func (o Outcome) OK() bool { return o.Status == StatusSaved }

// Err converts a non-saved outcome into an error.
func (o Outcome) Err() error {
	switch o.Status {
	case StatusSaved:
		return nil
	case StatusDuplicate:
		return fmt.Errorf("%w: %s", ErrDuplicateUser, o.Reason)
	case StatusRejected:
		return fmt.Errorf("%w: %s", ErrRejected, o.Reason)
	default:
		return fmt.Errorf("%w: no outcome", ErrRejected)
	}
}

func saved() Outcome { return Outcome{Status: StatusSaved} }

func rejected(reason string) Outcome { return Outcome{Status: StatusRejected, Reason: reason} }

func duplicate(reason string) Outcome { return Outcome{Status: StatusDuplicate, Reason: reason} }
