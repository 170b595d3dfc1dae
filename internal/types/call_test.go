package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointMethods backs S5's P: __new__ stores (a, b) on a fresh instance,
// __init__ increments a shared counter every time it runs.
type pointMethods struct {
	initCount *int
}

func (m pointMethods) PyNew(cls Value, args []Value, kwnames []string) (Value, error) {
	t := cls.(*Type)
	inst := newSharedInstance(t, t.layout)
	inst.dict["a"] = args[0]
	inst.dict["b"] = args[1]
	return inst, nil
}

func (m pointMethods) PyInit(self Value, args []Value, kwnames []string) (Value, error) {
	*m.initCount++
	return nil, nil
}

// TestCallTypeInvokesNewThenInit checks S5: calling P(1, 2) runs __new__
// once and __init__ exactly once, and the resulting object's type is P.
func TestCallTypeInvokesNewThenInit(t *testing.T) {
	rt := NewRuntime()
	counter := 0

	p, err := rt.NewType("P", []*Type{rt.ObjectType}, nil, pointMethods{initCount: &counter}, nil)
	require.NoError(t, err)

	obj, err := rt.CallType(p, []Value{1, 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, counter)

	inst, ok := obj.(*sharedInstance)
	require.True(t, ok)
	assert.Equal(t, 1, inst.dict["a"])
	assert.Equal(t, 2, inst.dict["b"])

	objType := rt.PythonType(obj)
	assert.Same(t, p, objType)
}

// foreignNewMethods' __new__ returns an instance of an unrelated type,
// never the cls it was asked to build.
type foreignNewMethods struct {
	other *Type
}

func (m foreignNewMethods) PyNew(cls Value, args []Value, kwnames []string) (Value, error) {
	return newSharedInstance(m.other, m.other.layout), nil
}

func (m foreignNewMethods) PyInit(self Value, args []Value, kwnames []string) (Value, error) {
	panic("__init__ must not run for a foreign __new__ result")
}

// TestCallTypeSkipsInitForForeignResult checks that when __new__ returns an
// object whose type is not a subtype of cls, __init__ is not invoked.
func TestCallTypeSkipsInitForForeignResult(t *testing.T) {
	rt := NewRuntime()

	other, err := rt.NewType("Other", []*Type{rt.ObjectType}, nil, nil, nil)
	require.NoError(t, err)

	p, err := rt.NewType("P", []*Type{rt.ObjectType}, nil, foreignNewMethods{other: other}, nil)
	require.NoError(t, err)

	obj, err := rt.CallType(p, nil, nil)
	require.NoError(t, err)
	assert.Same(t, other, rt.PythonType(obj))
}

// TestCallTypeSingleArgReturnsType checks §4.C.4's type(x) fast path: one
// positional argument and no keywords against the metaclass itself returns
// x's own type, without running any __new__/__init__.
func TestCallTypeSingleArgReturnsType(t *testing.T) {
	rt := NewRuntime()

	p, err := rt.NewType("P", []*Type{rt.ObjectType}, nil, nil, nil)
	require.NoError(t, err)
	inst := newSharedInstance(p, p.layout)

	got, err := rt.CallType(rt.TypeType, []Value{inst}, nil)
	require.NoError(t, err)
	assert.Same(t, p, got)

	got, err = rt.CallType(rt.TypeType, []Value{rt.ObjectType}, nil)
	require.NoError(t, err)
	assert.Same(t, rt.TypeType, got)
}

// TestCallTypeThreeArgsBuildsClass checks that the three-argument form
// reaches type's own bootstrapped __new__ through the ordinary
// type.__call__ protocol, not just through the rt.NewType Go-level
// shortcut every other test in this file uses.
func TestCallTypeThreeArgsBuildsClass(t *testing.T) {
	rt := NewRuntime()

	result, err := rt.CallType(rt.TypeType, []Value{
		"Widget",
		[]*Type{rt.ObjectType},
		map[string]Value{"answer": 42},
	}, nil)
	require.NoError(t, err)

	widget, ok := result.(*Type)
	require.True(t, ok)
	assert.Equal(t, "Widget", widget.Name())
	res := widget.lookupMRO("answer")
	require.True(t, res.found())
	assert.Equal(t, 42, res.Value)
	assert.Same(t, rt.ObjectType, widget.Bases()[0])
}
