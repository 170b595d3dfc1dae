package types

import (
	"reflect"
	"testing"

	"github.com/ATSOTECK/pytypecore/internal/types/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFactoryBuildIsReentrant checks §4.F/§5: a Type built while the
// factory's session is already in progress (depth > 0, as bootstrap's
// object/type pair are) is staged rather than published immediately, and
// only becomes visible to the Registry once the outermost call flushes the
// batch.
func TestFactoryBuildIsReentrant(t *testing.T) {
	rt := NewRuntime()
	f := rt.Factory

	f.mu.Lock()
	f.depth++

	inner, err := f.buildLocked(&TypeSpec{
		Name:         "Inner",
		Variant:      VariantSimple,
		Bases:        []*Type{rt.ObjectType},
		PrimaryClass: reflect.TypeOf(&kernel.Instance{}),
		Features:     FeatureBaseType,
	})
	require.NoError(t, err)
	assert.Nil(t, rt.Registry.FindByName("Inner"), "staged type must not be visible before the session flushes")

	f.depth--
	f.publishBatch()
	f.mu.Unlock()

	assert.Same(t, inner, rt.Registry.FindByName("Inner"))
}

// TestFactoryBootstrapPublishesObjectAndTypeTogether checks that bootstrap's
// two buildLocked calls land in the Registry as one batch: by the time
// NewRuntime returns, both names resolve, and they share the batch's
// Representation bookkeeping rather than two separate publish calls.
func TestFactoryBootstrapPublishesObjectAndTypeTogether(t *testing.T) {
	rt := NewRuntime()

	assert.Same(t, rt.ObjectType, rt.Registry.FindByName("object"))
	assert.Same(t, rt.TypeType, rt.Registry.FindByName("type"))
	assert.Empty(t, rt.Factory.batch.types, "batch must be flushed once bootstrap's session closes")
	assert.Empty(t, rt.Factory.batch.reps, "batch must be flushed once bootstrap's session closes")
}
