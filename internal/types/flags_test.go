package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexMethods backs a type defining __index__, exercised purely for the
// HAS_INDEX kernel flag its presence should turn on.
type indexMethods struct{}

func (indexMethods) PyIndex(self Value) (Value, error) { return 1, nil }

// TestKernelFlagsReflectSpecialMethodPresence checks that HAS_INDEX turns
// on for a type defining __index__ and off again once it is deleted.
func TestKernelFlagsReflectSpecialMethodPresence(t *testing.T) {
	rt := NewRuntime()

	typ, err := rt.NewType("Indexable", []*Type{rt.ObjectType}, nil, indexMethods{}, nil)
	require.NoError(t, err)
	assert.True(t, typ.kernelFlags.Has(KernelHasIndex))

	require.NoError(t, rt.DelAttr(typ, "__index__"))
	assert.False(t, typ.kernelFlags.Has(KernelHasIndex))
}

// TestKernelMatchSelfTracksMatchArgs checks that KernelMatchSelf, unlike
// every other kernel flag, is driven by a plain namespace key rather than a
// dispatchable special method.
func TestKernelMatchSelfTracksMatchArgs(t *testing.T) {
	rt := NewRuntime()

	typ, err := rt.NewType("Point", []*Type{rt.ObjectType}, map[string]Value{
		"__match_args__": []string{"x", "y"},
	}, nil, nil)
	require.NoError(t, err)
	assert.True(t, typ.kernelFlags.Has(KernelMatchSelf))

	require.NoError(t, rt.DelAttr(typ, "__match_args__"))
	assert.False(t, typ.kernelFlags.Has(KernelMatchSelf))
}
