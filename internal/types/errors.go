package types

import (
	"errors"
	"fmt"
)

// TypeError reports a wrong argument shape, a metaclass or layout conflict,
// a bad operand type, or a base that does not carry BASETYPE. It is the Go
// analogue of the teacher's `fmt.Errorf("TypeError: ...")` convention
// (internal/runtime/operations_arithmetic.go and builtins_classes.go), kept
// as a concrete struct instead of a formatted string so callers above this
// core can inspect it programmatically rather than pattern-match text.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return "TypeError: " + e.Msg }

func typeErrorf(format string, args ...any) error {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// AttributeError reports a read, write, or delete of a name that a type or
// instance does not have, or a write/delete that is refused (immutable
// type, read-only descriptor, absent setter/deleter).
type AttributeError struct {
	Msg string
}

func (e *AttributeError) Error() string { return "AttributeError: " + e.Msg }

func attributeErrorf(format string, args ...any) error {
	return &AttributeError{Msg: fmt.Sprintf(format, args...)}
}

// OverflowError surfaces from integer-conversion helpers consumed by this
// core (e.g. asSize); the core never constructs one itself, it only
// recognises the type so callers can distinguish it from TypeError.
type OverflowError struct {
	Msg string
}

func (e *OverflowError) Error() string { return "OverflowError: " + e.Msg }

// ClashMode classifies why a Clash was raised during factory construction.
type ClashMode int

const (
	// ClashExisting: the host class is already bound to a different
	// Representation than the one the factory is trying to publish.
	ClashExisting ClashMode = iota
	// ClashNotSharable: an existing Representation for the class is not a
	// Shared Representation, but the spec being built requires one.
	ClashNotSharable
	// ClashMissing: an expected accepted self-class was never registered.
	ClashMissing
)

func (m ClashMode) String() string {
	switch m {
	case ClashExisting:
		return "EXISTING"
	case ClashNotSharable:
		return "NOT_SHARABLE"
	case ClashMissing:
		return "MISSING"
	default:
		return "UNKNOWN"
	}
}

// ClashError is the core's fatal internal error: a broken invariant such as
// two different Representations racing to bind the same host class. It is
// deliberately NOT meant to be caught as an ordinary Python exception by
// layers above this core (§7: "Not catchable as a Python exception;
// intended to signal a bug in the runtime itself") — callers that need to
// surface it to end users should wrap it, not swallow it.
type ClashError struct {
	Spec     *TypeSpec
	Mode     ClashMode
	Class    string
	Existing *Representation
}

func (e *ClashError) Error() string {
	specName := "<nil>"
	if e.Spec != nil {
		specName = e.Spec.Name
	}
	return fmt.Sprintf("InterpreterError: class %q already bound while building %q (mode=%s)",
		e.Class, specName, e.Mode)
}

// ErrEmpty is the internal-only sentinel meaning "this special method is
// not defined" (§4.A.1, §7, §9). It must never escape to a client as a
// Python-visible exception. EmptyHandle and genericHandle (dispatch.go)
// return it, and CallSpecial passes it back unchanged, so the dispatch
// site that calls CallSpecial tests for it with IsEmpty.
var ErrEmpty = errors.New("empty: special method not defined")

// IsEmpty reports whether err is (or wraps) ErrEmpty.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsAttributeError reports whether err is an *AttributeError, matching the
// teacher's isAttributeError helper in internal/runtime/attributes.go but
// against a typed error instead of a string prefix.
func IsAttributeError(err error) bool {
	var ae *AttributeError
	return errors.As(err, &ae)
}
