package pytypecore

import "github.com/ATSOTECK/pytypecore/internal/types"

// Value is any host value this core can assign a Python type to.
type Value = types.Value

// Type is a Python type object: name, bases, MRO, dict, and the
// representation(s) binding it to host classes.
type Type = types.Type

// Runtime bundles a Registry and TypeFactory and exposes the operations
// that need both, including the attribute protocol and generic
// special-method dispatch.
type Runtime = types.Runtime

// Re-exported error types so callers outside this module can type-switch
// on the core's failures without reaching into internal/types themselves.
type (
	TypeError      = types.TypeError
	AttributeError = types.AttributeError
	OverflowError  = types.OverflowError
	ClashError     = types.ClashError
)

// NewRuntime constructs a Runtime, bootstrapping `object` and `type` onto
// a fresh Registry and TypeFactory.
func NewRuntime() *Runtime { return types.NewRuntime() }

// Object returns rt's bootstrap `object` type.
func Object(rt *Runtime) *Type { return rt.ObjectType }

// Metatype returns rt's bootstrap `type` type.
func Metatype(rt *Runtime) *Type { return rt.TypeType }
