package types

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// TypeSpec is the external interface for requesting a new type (§6): the
// name, bases, metaclass, variant, host classes, public namespace, and an
// optional "method impls" host value the exposer (exposer.go) reflects
// over to build descriptors for.
type TypeSpec struct {
	Name     string
	Variant  TypeVariant
	Bases    []*Type
	Metatype *Type
	Features Feature

	// PrimaryClass is the canonical host class for VariantSimple, and the
	// shared layout's host class for VariantReplaceable. AdoptedClasses
	// holds the self-classes for VariantAdoptive; PrimaryClass is ignored
	// in that case.
	PrimaryClass   reflect.Type
	AdoptedClasses []reflect.Type

	// Namespace seeds the type's dict directly (e.g. a class body already
	// evaluated by a caller above this core).
	Namespace map[string]Value

	// MethodImpls is reflected upon by the exposer to populate the dict
	// with MethodDescriptor/NewMethodDescriptor/etc. entries (§4.H). Nil
	// skips exposure, useful for types whose namespace is already complete.
	MethodImpls any

	// Layout is set for VariantReplaceable types built via NewType: the
	// memoized subclass layout (§4.G) this type's instances share with
	// the rest of its clique.
	Layout *subclassLayout
}

// TypeFactory is the reentrant single-writer that builds types (§4.F). All
// external requests funnel through Build, which takes the factory-global
// lock; construction performed recursively while the lock is already held
// (bootstrap building object and type, or resolving a base before its
// subclass) calls buildLocked directly, matching the teacher's pattern of
// guarding shared registries with a single mutex rather than
// fine-grained per-entry locks (internal/runtime/module.go's moduleMu,
// internal/runtime/types.go's stringInternPoolLock).
type TypeFactory struct {
	rt     *Runtime
	mu     sync.Mutex
	logger *slog.Logger

	// depth counts nested Build calls on the same external entry (e.g.
	// bootstrap building object then type before anything is published).
	// Only the outermost call (depth transitioning 0->1 and back to 1->0)
	// takes mu and flushes batch; calls made while depth > 0 reuse the
	// lock the outermost call already holds and just stage their result.
	// Like mu itself, depth assumes the single-writer discipline this type
	// is named for: one external goroutine drives the factory at a time, so
	// an unguarded read of depth to decide "am I the outermost call" is
	// never racing a second concurrent entry.
	depth int
	batch struct {
		types []*Type
		reps  []*Representation
	}
}

func newTypeFactory(rt *Runtime) *TypeFactory {
	return &TypeFactory{rt: rt, logger: slog.Default()}
}

// objectInstance is the minimal canonical representation backing the
// bootstrap `object` type: just an instance dict, enough to satisfy
// WithDict and exercise the attribute protocol end to end without any
// built-in-type semantics (§1 explicitly keeps those out of scope).
type objectInstance struct {
	dict map[string]Value
}

func newObjectInstance() *objectInstance { return &objectInstance{dict: make(map[string]Value)} }

func (o *objectInstance) InstanceDict() map[string]Value { return o.dict }

// bootstrap constructs the two types every Runtime needs before anything
// else can exist: `object` (Bases: nil, its own one-element MRO) and
// `type` (Bases: [object]), then closes the metaclass loop by pointing
// both at `type` as their own type. Equivalent to the teacher's
// "Set object's MRO to just itself" step in builtins_classes.go, performed
// here as two ordinary buildLocked calls instead of hand-wired struct
// literals, so the same construction path is exercised at bootstrap as for
// every later type. Both calls run as one reentrant session (depth goes
// 0->1 for their combined duration) so object and type publish to the
// Registry together in a single atomic batch, rather than object becoming
// visible to a concurrent reader a moment before type does.
func (f *TypeFactory) bootstrap() {
	f.mu.Lock()
	f.depth++

	objectType, err := f.buildLocked(&TypeSpec{
		Name:         "object",
		Variant:      VariantSimple,
		PrimaryClass: reflect.TypeOf(&objectInstance{}),
		Features:     FeatureBaseType | FastSubtypeObject,
	})
	if err != nil {
		panic(fmt.Sprintf("types: bootstrap of object failed: %v", err))
	}

	newDescr := &NewMethodDescriptor{}
	typeType, err := f.buildLocked(&TypeSpec{
		Name:         "type",
		Variant:      VariantSimple,
		PrimaryClass: reflect.TypeOf(&Type{}),
		Bases:        []*Type{objectType},
		Features:     FeatureBaseType | FeatureInstantiable | FastSubtypeType,
		Namespace:    map[string]Value{"__new__": newDescr},
	})
	if err != nil {
		panic(fmt.Sprintf("types: bootstrap of type failed: %v", err))
	}

	objectType.metatype = typeType
	typeType.metatype = typeType

	f.rt.ObjectType = objectType
	f.rt.TypeType = typeType

	// newDescr.Fn closes over rt.NewType, which needs ObjectType/TypeType
	// already set, and Defining, which needs typeType itself to exist —
	// both only available after the two buildLocked calls above return.
	newDescr.Defining = typeType
	newDescr.Fn = newTypeNewImpl(f.rt)

	f.depth--
	f.publishBatch()
	f.mu.Unlock()

	f.logger.Debug("bootstrap complete", "object", objectType.name, "type", typeType.name)
}

// Build constructs a new Type from spec. Build is reentrant (§4.F): a call
// made while another Build on the same call chain is already in progress —
// as bootstrap's two types are, and as a TypeSpec whose own construction
// needs to build further types would be — stages its result in the shared
// batch instead of publishing immediately. Only the outermost call
// publishes, so every Type built within one external entry becomes visible
// to the Registry in a single atomic step (§5).
func (f *TypeFactory) Build(spec *TypeSpec) (*Type, error) {
	top := f.depth == 0
	if top {
		f.mu.Lock()
	}
	f.depth++

	t, err := f.buildLocked(spec)

	f.depth--
	if top {
		f.publishBatch()
		f.mu.Unlock()
	}
	return t, err
}

// publishBatch flushes every Type/Representation staged by buildLocked
// during the session just completed into the Registry in one call, then
// clears the batch for the next session.
func (f *TypeFactory) publishBatch() {
	if len(f.batch.types) == 0 && len(f.batch.reps) == 0 {
		return
	}
	f.rt.Registry.publish(f.batch.types, f.batch.reps)
	f.batch.types = nil
	f.batch.reps = nil
}

// buildLocked performs the two-phase construction described in §4.F.
//
// Phase one ("Java-ready"): the Type struct exists, its MRO is
// linearised, its Representation(s) are reserved in the registry. At this
// point the type is internally consistent but not yet safe to run Python
// method lookups against — best_base and layout are settled, nothing is
// published.
//
// Phase two ("Python-ready"): the namespace is populated (from spec and,
// if MethodImpls is set, from the exposer), every Representation's
// special-method cache is resolved, kernel flags are computed, READY is
// set, and the result is staged in the factory's batch. buildLocked never
// publishes; the outermost Build (or bootstrap) publishes the whole batch
// to the Registry in one atomic step.
func (f *TypeFactory) buildLocked(spec *TypeSpec) (*Type, error) {
	if spec.Name == "" {
		return nil, typeErrorf("type spec has no name")
	}

	t := newType(spec.Name, spec.Variant, spec.Bases, spec.Metatype)
	t.features = spec.Features
	for _, b := range spec.Bases {
		t.features |= b.features & heritableFeatures
	}
	t.layout = spec.Layout

	mro, err := computeC3MRO(t, spec.Bases)
	if err != nil {
		return nil, err
	}
	t.mro = mro
	t.bestBase = computeBestBase(spec.Bases)

	reps, err := f.buildRepresentations(spec, t)
	if err != nil {
		return nil, err
	}
	t.reps = reps

	// Phase two.
	for k, v := range spec.Namespace {
		t.dict[k] = v
	}
	if spec.MethodImpls != nil {
		if err := exposeMethods(t, spec.MethodImpls); err != nil {
			return nil, err
		}
	}

	for name := range t.dict {
		if sm, ok := LookupSpecialMethod(name); ok {
			if bit, ok := kernelFlagFor(sm); ok {
				t.kernelFlags |= bit
			}
		}
		if name == matchArgsKey {
			t.kernelFlags |= KernelMatchSelf
		}
	}
	for _, r := range reps {
		for sm := SpecialMethod(0); sm < numSpecialMethods; sm++ {
			f.rt.refreshSlot(r, t, sm)
		}
	}

	t.features |= FeatureReady

	f.batch.types = append(f.batch.types, t)
	f.batch.reps = append(f.batch.reps, reps...)

	layoutID := ""
	if t.layout != nil {
		layoutID = t.layout.String()
	}
	f.logger.Debug("type constructed", "name", t.name, "variant", t.variant.String(), "bases", len(spec.Bases), "layout", layoutID)

	return t, nil
}

// buildRepresentations reserves and returns the Representation(s) spec
// needs, raising a Clash if any requested host class is already bound.
func (f *TypeFactory) buildRepresentations(spec *TypeSpec, t *Type) ([]*Representation, error) {
	switch spec.Variant {
	case VariantAdoptive:
		if len(spec.AdoptedClasses) == 0 {
			return nil, typeErrorf("%s: AdoptiveType requires at least one adopted class", spec.Name)
		}
		reps := make([]*Representation, 0, len(spec.AdoptedClasses))
		for i, hc := range spec.AdoptedClasses {
			r := newRepresentation(RepAdopted, hc, i, t)
			if err := f.rt.Registry.reserve(spec, hc, r); err != nil {
				return nil, err
			}
			reps = append(reps, r)
		}
		return reps, nil

	case VariantReplaceable:
		if spec.PrimaryClass == nil {
			return nil, typeErrorf("%s: ReplaceableType requires a shared host class", spec.Name)
		}
		if existing := f.rt.Registry.find(spec.PrimaryClass); existing != nil {
			if existing.Kind != RepShared {
				return nil, &ClashError{Spec: spec, Mode: ClashNotSharable, Class: spec.PrimaryClass.String(), Existing: existing}
			}
			return []*Representation{existing}, nil
		}
		r := newRepresentation(RepShared, spec.PrimaryClass, 0, nil)
		if err := f.rt.Registry.reserve(spec, spec.PrimaryClass, r); err != nil {
			return nil, err
		}
		return []*Representation{r}, nil

	default: // VariantSimple
		if spec.PrimaryClass == nil {
			return nil, typeErrorf("%s: SimpleType requires a canonical host class", spec.Name)
		}
		r := newRepresentation(RepCanonical, spec.PrimaryClass, 0, t)
		if err := f.rt.Registry.reserve(spec, spec.PrimaryClass, r); err != nil {
			return nil, err
		}
		return []*Representation{r}, nil
	}
}

// computeBestBase picks the "solid base" among bases (§4.C.5): it starts
// from bases[0] and moves to any later base that is a subtype of the
// current pick. Layouts are not compared here; checkLayoutCompatible
// (call.go) rejects incompatible layouts. With a single base this is just
// that base; with none it returns nil (object's case).
func computeBestBase(bases []*Type) *Type {
	if len(bases) == 0 {
		return nil
	}
	best := bases[0]
	for _, b := range bases[1:] {
		if b.IsSubtypeOf(best) {
			best = b
		}
	}
	return best
}
