// Package apperr defines the typed errors returned by the expense
// engine. Every error is scoped to a single operation and carries
// enough structure for the transport layer to map it to a wire code
// without string matching.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationKind identifies the specific caller-correctable input
// problem inside a ValidationError.
type ValidationKind string

const (
	EmptyParticipants    ValidationKind = "EmptyParticipants"
	DuplicateParticipant ValidationKind = "DuplicateParticipant"
	PercentageMismatch   ValidationKind = "PercentageMismatch"
	ExactAmountMismatch  ValidationKind = "ExactAmountMismatch"
	InvalidShares        ValidationKind = "InvalidShares"
	PayerNotMember       ValidationKind = "PayerNotMember"
	NotGroupMember       ValidationKind = "NotGroupMember"
	ParticipantMismatch  ValidationKind = "ParticipantMismatch"
	AlreadyMember        ValidationKind = "AlreadyMember"
	InvalidAmount        ValidationKind = "InvalidAmount"
	InvalidInput         ValidationKind = "InvalidInput"
)

// ValidationError is a caller-correctable input error. It is always
// surfaced with its kind, never silently coerced.
type ValidationError struct {
	Kind ValidationKind
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Validation builds a ValidationError with a formatted message.
func Validation(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError of the given
// kind.
func IsValidation(err error, kind ValidationKind) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == kind
}

// InvalidStateError means an operation was attempted from a state
// that does not permit it, e.g. confirming an already-confirmed
// split. It reports the attempted transition and the state that was
// actually observed.
type InvalidStateError struct {
	Attempted string
	Current   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: current state is %q", e.Attempted, e.Current)
}

// InvalidState builds an InvalidStateError.
func InvalidState(attempted, current string) *InvalidStateError {
	return &InvalidStateError{Attempted: attempted, Current: current}
}

// PermissionError means the caller is the wrong actor for the
// operation (not the debtor/payer on a split, not a group admin).
// Distinct from InvalidStateError so clients can tell "wrong actor"
// from "wrong state".
type PermissionError struct {
	Op  string
	Msg string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Permission builds a PermissionError with a formatted message.
func Permission(op, format string, args ...any) *PermissionError {
	return &PermissionError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
