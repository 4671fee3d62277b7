package core

import (
	"errors"
	"fmt"
)

// errKind classifies a failure so the transport layer can map it to a
// status without inspecting message text.
type errKind uint8

const (
	kindValidation errKind = iota + 1
	kindNotFound
	kindConflict
	kindUnauthenticated
	kindStorage
)

// Error is the single error type surfaced by ledgers, services and the
// aggregation engine. Raw datastore errors never cross a package boundary
// without being wrapped into one of these.
type Error struct {
	kind errKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Message returns the human-readable reason without any wrapped cause.
func (e *Error) Message() string { return e.msg }

// Validationf reports missing or out-of-range input.
func Validationf(format string, args ...any) error {
	return &Error{kind: kindValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent entity. The message is uniform per entity so
// callers cannot distinguish "does not exist" from "owned by someone else".
func NotFound(entity string) error {
	return &Error{kind: kindNotFound, msg: entity + " not found"}
}

// Conflictf reports a mutation blocked by existing state, such as a
// referenced category delete or a duplicate unique field.
func Conflictf(format string, args ...any) error {
	return &Error{kind: kindConflict, msg: fmt.Sprintf(format, args...)}
}

// Unauthenticated reports a call that arrived without a resolved owner.
func Unauthenticated() error {
	return &Error{kind: kindUnauthenticated, msg: "authentication required"}
}

// StorageError wraps a transient or unexpected datastore failure.
func StorageError(op string, err error) error {
	return &Error{kind: kindStorage, msg: op, err: err}
}

// ErrorMessage extracts the human-readable reason from err, falling back
// to the full error text for errors that did not originate here.
func ErrorMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}

func is(err error, k errKind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == k
}

func IsValidation(err error) bool      { return is(err, kindValidation) }
func IsNotFound(err error) bool        { return is(err, kindNotFound) }
func IsConflict(err error) bool        { return is(err, kindConflict) }
func IsUnauthenticated(err error) bool { return is(err, kindUnauthenticated) }
func IsStorage(err error) bool         { return is(err, kindStorage) }
