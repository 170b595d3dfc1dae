package types

import (
	"reflect"
	"testing"

	"github.com/ATSOTECK/pytypecore/internal/types/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDescriptor is a data descriptor whose Get always returns a fixed
// value and whose Set/Delete record every call they receive.
type recordingDescriptor struct {
	getValue Value
	writes   []Value
	deletes  int
}

func (d *recordingDescriptor) Get(obj Value, owner *Type) (Value, error) {
	return d.getValue, nil
}

func (d *recordingDescriptor) Set(obj, value Value) error {
	d.writes = append(d.writes, value)
	return nil
}

func (d *recordingDescriptor) Delete(obj Value) error {
	d.deletes++
	return nil
}

// TestDescriptorPrecedenceOnTypeAndInstance checks S4: a metaclass data
// descriptor wins over a type's own raw dict value when read through the
// type itself, but the type's own raw value wins over a non-data attribute
// when read through an instance, and writing through the type invokes the
// descriptor's __set__.
func TestDescriptorPrecedenceOnTypeAndInstance(t *testing.T) {
	rt := NewRuntime()

	descr := &recordingDescriptor{getValue: 1}

	meta, err := rt.NewType("Meta", []*Type{rt.TypeType}, map[string]Value{
		"x": descr,
	}, nil, nil)
	require.NoError(t, err)

	typ, err := rt.NewType("T", []*Type{rt.ObjectType}, map[string]Value{
		"x": 2,
	}, nil, meta)
	require.NoError(t, err)
	require.Same(t, meta, typ.Metatype())

	got, err := rt.GetAttr(typ, "x")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	inst := kernel.NewInstance()
	instOfT := &typedInstance{Instance: inst, typ: typ}
	got, err = rt.GetAttr(instOfT, "x")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	require.NoError(t, rt.SetAttr(typ, "x", 3))
	assert.Equal(t, []Value{3}, descr.writes)
}

// typedInstance pairs a kernel.Instance with an explicit Python type,
// exercising the WithClass path the way a Canonical representation backed
// by a richer host class would, without needing a full registered type.
type typedInstance struct {
	*kernel.Instance
	typ *Type
}

func (i *typedInstance) PyType() *Type { return i.typ }

// TestImmutableTypeRejectsSetAndDelete checks property 6: a type built with
// FeatureImmutable refuses both setattr and delattr, leaving its dict
// unchanged.
func TestImmutableTypeRejectsSetAndDelete(t *testing.T) {
	rt := NewRuntime()

	spec := &TypeSpec{
		Name:         "Frozen",
		Variant:      VariantSimple,
		Bases:        []*Type{rt.ObjectType},
		PrimaryClass: reflect.TypeOf(&kernel.Instance{}),
		Features:     FeatureBaseType | FeatureImmutable,
		Namespace:    map[string]Value{"answer": 42},
	}
	frozen, err := rt.Factory.Build(spec)
	require.NoError(t, err)

	err = rt.SetAttr(frozen, "answer", 7)
	require.Error(t, err)
	assert.True(t, IsAttributeError(err), "setattr on an immutable type must raise AttributeError, got %T", err)

	err = rt.DelAttr(frozen, "answer")
	require.Error(t, err)
	assert.True(t, IsAttributeError(err), "delattr on an immutable type must raise AttributeError, got %T", err)

	res := frozen.lookupMRO("answer")
	require.True(t, res.found())
	assert.Equal(t, 42, res.Value)
}
