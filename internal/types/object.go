package types

import "reflect"

// Value is any host value the core can assign a Python type to. It plays
// the same role the teacher's runtime.Value alias plays for PyObject: a
// deliberately wide type, narrowed by type assertion or capability checks
// at the point of use.
type Value any

// WithClass is implemented by host classes whose instances carry their own
// Python type rather than resolving it through a single canonical
// Representation. Instances of ReplaceableType, and every Shared
// Representation, require it.
type WithClass interface {
	PyType() *Type
}

// WithClassAssignment is implemented by instances that support `__class__`
// assignment (`i.__class__ = Y`). CheckClassAssignment must verify that the
// replacement type's representation class equals the instance's own host
// class before SetPyType is allowed to take effect; sharedInstance's
// implementation (subclass.go) does exactly that.
type WithClassAssignment interface {
	WithClass
	SetPyType(t *Type) error
	CheckClassAssignment(t *Type) error
}

// WithDict is implemented by instances that expose a mutable `__dict__`.
// Its absence is not an error: attribute set on an instance without one
// simply fails for names that resolve to nothing else, exactly as CPython
// behaves for `__slots__`-only instances.
type WithDict interface {
	InstanceDict() map[string]Value
}

// FastCall is the calling convention every callable consumed by this core
// is expected to satisfy, mirroring the teacher's PyBuiltinFunc/PyFunction
// split between a single slow uniform `Call` and optimised fixed-arity
// overloads (probed for by invoke, below).
type FastCall interface {
	Call(args []Value, kwnames []string) (Value, error)
}

// fastCall0/1/2/3 are optional optimised overloads a FastCall implementor
// may additionally satisfy; invoke (below) probes for these via type
// assertion before falling back to Call.
type fastCall0 interface{ Call0() (Value, error) }
type fastCall1 interface {
	Call1(a0 Value) (Value, error)
}
type fastCall2 interface {
	Call2(a0, a1 Value) (Value, error)
}
type fastCall3 interface {
	Call3(a0, a1, a2 Value) (Value, error)
}

// classOf returns the reflect.Type used as the Registry key for v. Pointer
// receivers are the norm for host classes in this codebase (as in the
// teacher's *PyInstance/*PyClass), so the registry keys on the pointer
// type's own reflect.Type (e.g. *kernel.Instance, not kernel.Instance),
// matching how Go values identify their "host class".
func classOf(v Value) reflect.Type {
	return reflect.TypeOf(v)
}

// invoke adapts a FastCall value to the uniform calling convention,
// preferring an optimised fixed-arity overload when one is implemented and
// the argument count matches and no keywords are present — the same
// arity-probing the teacher's gopher-lua-flavoured PyGoFunc/FastCall split
// performs in internal/runtime/calls.go.
func invoke(fn FastCall, args []Value, kwnames []string) (Value, error) {
	if len(kwnames) == 0 {
		switch len(args) {
		case 0:
			if f, ok := fn.(fastCall0); ok {
				return f.Call0()
			}
		case 1:
			if f, ok := fn.(fastCall1); ok {
				return f.Call1(args[0])
			}
		case 2:
			if f, ok := fn.(fastCall2); ok {
				return f.Call2(args[0], args[1])
			}
		case 3:
			if f, ok := fn.(fastCall3); ok {
				return f.Call3(args[0], args[1], args[2])
			}
		}
	}
	return fn.Call(args, kwnames)
}
