package types

import (
	"reflect"
	"testing"

	"github.com/ATSOTECK/pytypecore/internal/types/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReserveRejectsDoubleRegistration checks that binding the same host
// class to a second SimpleType raises a Clash instead of silently
// replacing the first Representation.
func TestReserveRejectsDoubleRegistration(t *testing.T) {
	rt := NewRuntime()
	hostClass := reflect.TypeOf(&kernel.Instance{})

	_, err := rt.Factory.Build(&TypeSpec{
		Name:         "First",
		Variant:      VariantSimple,
		Bases:        []*Type{rt.ObjectType},
		PrimaryClass: hostClass,
		Features:     FeatureBaseType,
	})
	require.NoError(t, err)

	_, err = rt.Factory.Build(&TypeSpec{
		Name:         "Second",
		Variant:      VariantSimple,
		Bases:        []*Type{rt.ObjectType},
		PrimaryClass: hostClass,
		Features:     FeatureBaseType,
	})
	require.Error(t, err)
	var clash *ClashError
	require.ErrorAs(t, err, &clash)
	assert.Equal(t, ClashExisting, clash.Mode)
}

// TestLayoutConflictDetection checks property 7: two bases whose
// ReplaceableType layouts are incompatible siblings cannot be combined.
func TestLayoutConflictDetection(t *testing.T) {
	rt := NewRuntime()

	a, err := rt.NewType("A", []*Type{rt.ObjectType}, map[string]Value{
		"__slots__": []string{"a"},
	}, nil, nil)
	require.NoError(t, err)
	b, err := rt.NewType("B", []*Type{rt.ObjectType}, map[string]Value{
		"__slots__": []string{"b"},
	}, nil, nil)
	require.NoError(t, err)
	require.NotSame(t, a.layout, b.layout)

	_, err = rt.NewType("C", []*Type{a, b}, nil, nil, nil)
	require.Error(t, err)
	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

// TestFeatureInheritance checks property 8: a heritable feature set on a
// base and not on the subtype's own spec is still visible through the
// subtype's HasFeature, while a non-heritable (lifecycle) flag is not
// picked up automatically.
func TestFeatureInheritance(t *testing.T) {
	rt := NewRuntime()

	base, err := rt.Factory.Build(&TypeSpec{
		Name:         "Base",
		Variant:      VariantSimple,
		Bases:        []*Type{rt.ObjectType},
		PrimaryClass: reflect.TypeOf(&kernel.Instance{}),
		Features:     FeatureBaseType | FeatureMatchSelf,
	})
	require.NoError(t, err)

	sub, err := rt.Factory.Build(&TypeSpec{
		Name:         "Sub",
		Variant:      VariantSimple,
		Bases:        []*Type{base},
		PrimaryClass: reflect.TypeOf(&kernel.BoxedFloat{}),
		Features:     FeatureBaseType,
	})
	require.NoError(t, err)

	assert.True(t, sub.HasFeature(FeatureMatchSelf), "heritable feature must flow from base")
	assert.False(t, sub.HasFeature(FeatureReadying), "lifecycle flag must not be inherited")
}
