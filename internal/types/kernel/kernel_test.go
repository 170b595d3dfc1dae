package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInstanceDictIsLiveAndShared checks that InstanceDict hands back the
// same backing map across calls, so the attribute protocol's writes through
// one call are visible to a later read through another.
func TestInstanceDictIsLiveAndShared(t *testing.T) {
	i := NewInstance()
	d := i.InstanceDict()
	require.NotNil(t, d)
	assert.Empty(t, d)

	d["x"] = 1
	assert.Equal(t, 1, i.InstanceDict()["x"])
}

// TestNewInstanceIsIndependent checks that two Instances never share a dict.
func TestNewInstanceIsIndependent(t *testing.T) {
	a := NewInstance()
	b := NewInstance()
	a.InstanceDict()["x"] = 1
	assert.NotContains(t, b.InstanceDict(), "x")
}

// TestBoxedFloatCarriesValue checks BoxedFloat's only job: holding the raw
// value an AdoptiveType's second self-class wraps.
func TestBoxedFloatCarriesValue(t *testing.T) {
	f := NewBoxedFloat(3.5)
	assert.Equal(t, 3.5, f.Value)
}
