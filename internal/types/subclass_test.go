package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassAssignmentWithinClique checks S7: two ReplaceableTypes built
// with identical layouts (both plain, no slots) share one subclassLayout,
// so an instance can have its __class__ reassigned between them, but not
// to a type with an incompatible layout.
func TestClassAssignmentWithinClique(t *testing.T) {
	rt := NewRuntime()

	x, err := rt.NewType("X", []*Type{rt.ObjectType}, nil, nil, nil)
	require.NoError(t, err)
	y, err := rt.NewType("Y", []*Type{rt.ObjectType}, nil, nil, nil)
	require.NoError(t, err)
	require.Same(t, x.layout, y.layout)

	i := newSharedInstance(x, x.layout)
	require.Same(t, x, i.PyType())

	require.NoError(t, i.SetPyType(y))
	assert.Same(t, y, i.PyType())

	slotted, err := rt.NewType("Slotted", []*Type{rt.ObjectType}, map[string]Value{
		"__slots__": []string{"a"},
	}, nil, nil)
	require.NoError(t, err)
	require.NotSame(t, x.layout, slotted.layout)

	err = i.SetPyType(slotted)
	require.Error(t, err)
	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
	assert.Same(t, y, i.PyType())
}

// TestSubclassLayoutMemoization checks that two independently declared
// classes over the same base with the same __slots__ shape share a single
// memoized layout, while a different slot set gets its own.
func TestSubclassLayoutMemoization(t *testing.T) {
	rt := NewRuntime()

	a, err := rt.NewType("A", []*Type{rt.ObjectType}, map[string]Value{
		"__slots__": []string{"x", "y"},
	}, nil, nil)
	require.NoError(t, err)
	b, err := rt.NewType("B", []*Type{rt.ObjectType}, map[string]Value{
		"__slots__": []string{"y", "x"}, // same set, different declaration order
	}, nil, nil)
	require.NoError(t, err)
	assert.Same(t, a.layout, b.layout)

	c, err := rt.NewType("C", []*Type{rt.ObjectType}, map[string]Value{
		"__slots__": []string{"x"},
	}, nil, nil)
	require.NoError(t, err)
	assert.NotSame(t, a.layout, c.layout)
}
