package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addMethods backs S6: __add__ returns a value read from a pointer so the
// test can flip it after the type is built, without rebuilding anything.
type addMethods struct {
	result *string
}

func (m addMethods) PyAdd(self, other Value) (Value, error) {
	return *m.result, nil
}

// TestMutationInvalidatesCache checks S6 and property 9: overwriting a
// type's __add__ changes what CallSpecial resolves without any other
// intervention, and deleting it falls through to ErrEmpty when nothing
// remains on the MRO.
func TestMutationInvalidatesCache(t *testing.T) {
	rt := NewRuntime()
	result := "a"

	typ, err := rt.NewType("X", []*Type{rt.ObjectType}, nil, addMethods{result: &result}, nil)
	require.NoError(t, err)

	x := newSharedInstance(typ, typ.layout)
	y := newSharedInstance(typ, typ.layout)

	got, err := rt.CallSpecial(MAdd, x, []Value{y}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	overwritten := NewMethodDescriptorFor("__add__", ShapeO1, func(self Value, args []Value, kwnames []string) (Value, error) {
		return "b", nil
	})
	require.NoError(t, rt.SetAttr(typ, "__add__", overwritten))

	got, err = rt.CallSpecial(MAdd, x, []Value{y}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	require.NoError(t, rt.DelAttr(typ, "__add__"))

	_, err = rt.CallSpecial(MAdd, x, []Value{y}, nil)
	require.Error(t, err)
	assert.True(t, IsEmpty(err))
}

// TestCacheRefreshPropagatesToSubtypes checks property 9 across
// inheritance: a subtype with no __add__ of its own picks up a change made
// to its base's __add__ without being touched directly.
func TestCacheRefreshPropagatesToSubtypes(t *testing.T) {
	rt := NewRuntime()
	result := "a"

	base, err := rt.NewType("Base", []*Type{rt.ObjectType}, nil, addMethods{result: &result}, nil)
	require.NoError(t, err)
	sub, err := rt.NewType("Sub", []*Type{base}, nil, nil, nil)
	require.NoError(t, err)

	inst := newSharedInstance(sub, sub.layout)
	other := newSharedInstance(sub, sub.layout)

	got, err := rt.CallSpecial(MAdd, inst, []Value{other}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	changed := NewMethodDescriptorFor("__add__", ShapeO1, func(self Value, args []Value, kwnames []string) (Value, error) {
		return "changed", nil
	})
	require.NoError(t, rt.SetAttr(base, "__add__", changed))

	got, err = rt.CallSpecial(MAdd, inst, []Value{other}, nil)
	require.NoError(t, err)
	assert.Equal(t, "changed", got)
}
