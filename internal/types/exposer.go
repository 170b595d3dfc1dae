package types

import (
	"reflect"
	"strings"
)

// exposeMethods reflects over a host "method impls" value — a stateless
// struct whose exported methods implement one special method each — and
// installs a MethodDescriptor (or NewMethodDescriptor for `__new__`) in
// t's dict for every method whose name matches the "Py"+PascalCase(dunder)
// convention (`PyAdd` for `__add__`, `PyGetitem` for `__getitem__`, and so
// on). This is the Type exposer of §4.H: natural Go method signatures are
// classified into a CallShape and wrapped into the uniform methodImpl
// calling convention, the same spirit as the reflection-driven binding
// 7CodeWizard-GoPy/bind/package.go performs at a coarser, whole-package
// grain — narrowed here to the handful of signature shapes a special
// method can take.
func exposeMethods(t *Type, methodImpls any) error {
	rv := reflect.ValueOf(methodImpls)
	for sm := SpecialMethod(0); sm < numSpecialMethods; sm++ {
		goName := "Py" + pascalFromDunder(sm.Dunder())
		m := rv.MethodByName(goName)
		if !m.IsValid() {
			continue
		}
		shape, impl, err := classifyAndAdapt(goName, m)
		if err != nil {
			return err
		}
		if sm == MNew {
			t.dict[sm.Dunder()] = &NewMethodDescriptor{
				Defining: t,
				Fn: func(cls *Type, args []Value, kwnames []string) (Value, error) {
					return impl(cls, args, kwnames)
				},
			}
			continue
		}
		t.dict[sm.Dunder()] = NewMethodDescriptorFor(sm.Dunder(), shape, impl)
	}
	return nil
}

// pascalFromDunder turns "__add__" into "Add" and "__getitem__" into
// "Getitem", the naming convention exposeMethods looks for.
func pascalFromDunder(dunder string) string {
	trimmed := strings.Trim(dunder, "_")
	parts := strings.Split(trimmed, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// classifyAndAdapt inspects a bound method's natural Go signature and
// returns both its CallShape (§4.H) and a methodImpl adapter that
// marshals the uniform (self, args, kwnames) convention into that
// signature via reflection.
//
// Supported shapes, receiver already bound so these are the parameter
// lists reflect.Value.Type() reports:
//
//	func(self Value) (Value, error)                          NOARGS
//	func(self, a0 Value) (Value, error)                      O1
//	func(self, a0, a1 Value) (Value, error)                  O2
//	func(self, a0, a1, a2 Value) (Value, error)              O3
//	func(self Value, args []Value) (Value, error)            POSITIONAL
//	func(self Value, args []Value, kwnames []string) (Value, error)  GENERAL
func classifyAndAdapt(name string, m reflect.Value) (CallShape, methodImpl, error) {
	mt := m.Type()
	if mt.NumOut() != 2 {
		return 0, nil, typeErrorf("%s: must return (Value, error)", name)
	}

	switch mt.NumIn() {
	case 1:
		return ShapeNoArgs, func(self Value, args []Value, kwnames []string) (Value, error) {
			if len(args) != 0 {
				return nil, typeErrorf("%s() takes no arguments (%d given)", name, len(args))
			}
			return callReflect(m, toArg(self, mt.In(0)))
		}, nil

	case 2:
		if mt.In(1).Kind() == reflect.Slice {
			return ShapePositional, func(self Value, args []Value, kwnames []string) (Value, error) {
				return callReflect(m, toArg(self, mt.In(0)), reflect.ValueOf(args))
			}, nil
		}
		return ShapeO1, func(self Value, args []Value, kwnames []string) (Value, error) {
			if len(args) != 1 {
				return nil, typeErrorf("%s() takes exactly one argument (%d given)", name, len(args))
			}
			return callReflect(m, toArg(self, mt.In(0)), toArg(args[0], mt.In(1)))
		}, nil

	case 3:
		if mt.In(1).Kind() == reflect.Slice && mt.In(2).Kind() == reflect.Slice {
			return ShapeGeneral, func(self Value, args []Value, kwnames []string) (Value, error) {
				return callReflect(m, toArg(self, mt.In(0)), reflect.ValueOf(args), reflect.ValueOf(kwnames))
			}, nil
		}
		return ShapeO2, func(self Value, args []Value, kwnames []string) (Value, error) {
			if len(args) != 2 {
				return nil, typeErrorf("%s() takes exactly two arguments (%d given)", name, len(args))
			}
			return callReflect(m, toArg(self, mt.In(0)), toArg(args[0], mt.In(1)), toArg(args[1], mt.In(2)))
		}, nil

	case 4:
		return ShapeO3, func(self Value, args []Value, kwnames []string) (Value, error) {
			if len(args) != 3 {
				return nil, typeErrorf("%s() takes exactly three arguments (%d given)", name, len(args))
			}
			return callReflect(m, toArg(self, mt.In(0)), toArg(args[0], mt.In(1)), toArg(args[1], mt.In(2)), toArg(args[2], mt.In(3)))
		}, nil

	default:
		return 0, nil, typeErrorf("%s: unsupported parameter count %d", name, mt.NumIn())
	}
}

func toArg(v Value, paramType reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(paramType)
	}
	return reflect.ValueOf(v)
}

func callReflect(m reflect.Value, args ...reflect.Value) (Value, error) {
	out := m.Call(args)
	var val Value
	if !out[0].IsNil() {
		val = out[0].Interface()
	}
	var err error
	if !out[1].IsNil() {
		err = out[1].Interface().(error)
	}
	return val, err
}
