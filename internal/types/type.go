package types

import (
	"reflect"
	"sync"
)

// TypeVariant tags which of the three construction shapes (§2) a Type was
// built as. Kept as an explicit tag rather than three separate Go types so
// that Registry, Factory, and the attribute protocol can share one pointer
// type throughout the core, matching the teacher's own preference for a
// single PyClass carrying a kind tag over a type hierarchy of its own.
type TypeVariant int

const (
	VariantSimple TypeVariant = iota
	VariantAdoptive
	VariantReplaceable
)

func (v TypeVariant) String() string {
	switch v {
	case VariantSimple:
		return "SimpleType"
	case VariantAdoptive:
		return "AdoptiveType"
	case VariantReplaceable:
		return "ReplaceableType"
	default:
		return "UnknownType"
	}
}

// Type is a Python type object: name, bases, linearised MRO, its own
// namespace dict, feature/kernel flags, and the representation(s) that
// bind it to host classes.
type Type struct {
	mu sync.RWMutex

	variant  TypeVariant
	name     string
	bases    []*Type
	mro      []*Type // computed by C3 linearisation (mro.go), self first
	dict     map[string]Value
	metatype *Type

	features    Feature
	kernelFlags KernelFlag
	version     uint64 // bumped on any dict/bases mutation (§4.C.3's post-change hook)

	// reps holds every Representation this type owns directly (more than
	// one only for AdoptiveType, one per adopted self-class). For a
	// ReplaceableType it holds the single Shared representation, the same
	// instance every other ReplaceableType in the Runtime also holds.
	reps []*Representation

	bestBase *Type // solid base used for layout-compatibility checks (§4.C.5)

	layout *subclassLayout // set for ReplaceableType instances with their own slots/dict

	// sharedCache holds the per-type special-method cache for
	// VariantReplaceable types. A Shared Representation's host class
	// backs many distinct Types at once (§2), so its cache cannot live on
	// the Representation the way Canonical/Adopted ones do — it would be
	// clobbered every time a sibling type resolved its own methods. Each
	// ReplaceableType keeps its own slot array instead; Canonical/Adopted
	// representations still cache on the Representation since those are
	// always owned by exactly one Type.
	sharedCache [numSpecialMethods]Handle
}

func newType(name string, variant TypeVariant, bases []*Type, metatype *Type) *Type {
	return &Type{
		variant:  variant,
		name:     name,
		bases:    bases,
		dict:     make(map[string]Value),
		metatype: metatype,
	}
}

func (t *Type) Name() string           { return t.name }
func (t *Type) Variant() TypeVariant   { return t.variant }
func (t *Type) Bases() []*Type         { return append([]*Type(nil), t.bases...) }
func (t *Type) MRO() []*Type           { return append([]*Type(nil), t.mro...) }
func (t *Type) HasFeature(f Feature) bool { return t.features.Has(f) }
func (t *Type) Metatype() *Type        { return t.metatype }

// PyType satisfies WithClass: a type object's own type is its metatype
// (type(int) is type, type(type) is type).
func (t *Type) PyType() *Type { return t.metatype }

// IsSubtypeOf reports whether t is u or descends from u in the MRO. It
// always walks the MRO and does not consult the FastSubtype* feature bits;
// those record the same fact redundantly for the two bootstrap roots
// (object and type, inherited by their subtypes), available to callers
// above this core that want to answer "is this an object subclass" without
// holding a *Type to compare against at all. No type in this core sets
// FastSubtypeException.
func (t *Type) IsSubtypeOf(u *Type) bool {
	if t == u {
		return true
	}
	for _, anc := range t.mro {
		if anc == u {
			return true
		}
	}
	return false
}

// dictPut installs name in t's own namespace, bumps t's version and runs
// recomputeDerivedState, which refreshes the special-method cache entries
// of t and of every registered subtype (§4.C.3's post-change hook). Called
// by `setattr(cls, name, value)`; class-body construction in buildLocked
// writes the dict directly.
func (t *Type) dictPut(rt *Runtime, name string, value Value) error {
	if t.features.Has(FeatureImmutable) {
		return attributeErrorf("cannot set %q: %s is immutable", name, t.name)
	}
	t.mu.Lock()
	t.dict[name] = value
	t.version++
	t.mu.Unlock()
	rt.recomputeDerivedState(t, name)
	return nil
}

// dictRemove deletes name from t's own namespace, if present.
func (t *Type) dictRemove(rt *Runtime, name string) error {
	t.mu.Lock()
	if _, ok := t.dict[name]; !ok {
		t.mu.Unlock()
		return attributeErrorf("%s has no attribute %q to delete", t.name, name)
	}
	if t.features.Has(FeatureImmutable) {
		t.mu.Unlock()
		return attributeErrorf("cannot delete %q: %s is immutable", name, t.name)
	}
	delete(t.dict, name)
	t.version++
	t.mu.Unlock()
	rt.recomputeDerivedState(t, name)
	return nil
}

// lookupMRO implements `lookup` (§4.B): walk self.mro in order, returning
// the first dict hit. Status is StatusFinal when the type the name was
// found on is immutable, StatusCurrent otherwise, and StatusOnce while t
// itself is still under construction (before READY is set).
func (t *Type) lookupMRO(name string) LookupResult {
	for _, cls := range t.mro {
		cls.mu.RLock()
		v, ok := cls.dict[name]
		cls.mu.RUnlock()
		if ok {
			status := StatusCurrent
			switch {
			case !t.features.Has(FeatureReady):
				status = StatusOnce
			case cls.features.Has(FeatureImmutable):
				status = StatusFinal
			}
			return LookupResult{Value: v, Where: cls, Status: status}
		}
	}
	return notFound()
}

// LookupExtended is `lookup_extended` (§4.B): like lookupMRO but also
// reports whether the name was found on t itself versus an ancestor.
func (t *Type) LookupExtended(name string) (res LookupResult, onSelf bool) {
	res = t.lookupMRO(name)
	return res, res.found() && res.Where == t
}

// Representations returns every Representation this type owns directly.
func (t *Type) Representations() []*Representation { return append([]*Representation(nil), t.reps...) }

// representationFor returns the Representation matching hostClass, used by
// the generic-invocation algorithm to find the cache slot for self's
// concrete Go type.
func (t *Type) representationFor(hostClass reflect.Type) *Representation {
	for _, r := range t.reps {
		if r.HostClass == hostClass {
			return r
		}
	}
	if len(t.reps) == 1 && t.reps[0].Kind == RepCanonical {
		return t.reps[0]
	}
	return nil
}
