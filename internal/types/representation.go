package types

import "reflect"

// RepKind distinguishes the three representation shapes described in §2:
// a type that is its own representation, a foreign host class adopted by
// one type under an index, and one host class shared by many types whose
// instances carry their own type pointer.
type RepKind int

const (
	RepCanonical RepKind = iota
	RepAdopted
	RepShared
)

type RepKind_ = RepKind // alias kept only so godoc groups the two names together

// Representation is the bridge between a host class (a reflect.Type) and
// the Python type(s) that use it to store instances. It owns the
// special-method cache: every catalogued SpecialMethod resolves to exactly
// one Handle per Representation, refreshed whenever the owning type's dict
// (or an ancestor's) changes (§4.A.3).
//
// Canonical: HostClass == the type's own instance struct, exactly one
// owning Type, cache resolved directly against that Type's MRO.
//
// Adopted: HostClass is a foreign class (e.g. a boxed float) the type does
// not control; Index distinguishes this self-class among several an
// AdoptiveType may adopt. Still exactly one owning Type.
//
// Shared: HostClass backs many owning Types at once (every ReplaceableType
// instance of a given layout); instances implement WithClass so the
// correct Type is read off the instance rather than the Representation.
type Representation struct {
	Kind      RepKind
	HostClass reflect.Type
	Index     int // self-class index within an AdoptiveType; 0 for Canonical/Shared

	// owner is set for Canonical and Adopted representations, where a
	// Representation belongs to exactly one Type. Shared representations
	// leave it nil and rely on WithClass instead.
	owner *Type

	cache   [numSpecialMethods]Handle
	version uint64 // not written by refreshSlot; caches are refreshed eagerly by recomputeDerivedState
}

func newRepresentation(kind RepKind, hostClass reflect.Type, index int, owner *Type) *Representation {
	r := &Representation{Kind: kind, HostClass: hostClass, Index: index, owner: owner}
	for i := range r.cache {
		r.cache[i] = EmptyHandle
	}
	return r
}

// PythonType returns the Type governing v through this Representation. For
// Canonical/Adopted representations that is always owner; for Shared
// representations it is read off the instance via WithClass, because a
// single Representation backs many different Types.
func (r *Representation) PythonType(v Value) *Type {
	if r.Kind == RepShared {
		if wc, ok := v.(WithClass); ok {
			return wc.PyType()
		}
		return nil
	}
	return r.owner
}

// HasFeature reports whether v's type carries the given public feature.
func HasFeature(rt *Runtime, v Value, f Feature) bool {
	t := rt.PythonType(v)
	if t == nil {
		return false
	}
	return t.features.Has(f)
}

// IsDataDescriptor reports whether v's type defines __set__ or __delete__
// (§4.B), consulting the cheap kernel-flag bits instead of performing two
// full method lookups.
func IsDataDescriptor(rt *Runtime, v Value) bool {
	if _, ok := v.(DataDescriptor); ok {
		return true
	}
	t := rt.PythonType(v)
	if t == nil {
		return false
	}
	return t.kernelFlags.Has(KernelHasSet) || t.kernelFlags.Has(KernelHasDelete)
}

// cacheDiscipline names which of the three resolution strategies (§4.A.3)
// a Representation's cache slot is using for a given SpecialMethod.
type cacheDiscipline int

const (
	disciplineEmpty cacheDiscipline = iota
	disciplineDirect
	disciplineGeneric
)

// refreshSlot recomputes the cache slot for sm against the representation's
// owning type (or, for Shared representations, against t which the caller
// must supply since the representation itself has no single owner).
//
// Direct discipline applies when the MRO lookup lands on a host-native
// MethodDescriptor with an implementation keyed by this representation's
// HostClass: the cache stores a Handle that calls straight into the Go
// method, skipping descriptor binding entirely. Generic discipline applies
// when the lookup result is anything else found on the type (a
// NewMethodDescriptor, a Python-level callable, a descriptor needing
// __get__, a method defined for a different self-class of an AdoptiveType,
// a MethodDescriptor holding only the wildcard implementation): the cache stores
// a Handle that reruns the full generic-invocation algorithm (§4.A.2) on
// every call, since the bound shape cannot be precomputed. Empty discipline
// applies when the special method is absent from the whole MRO.
func (rt *Runtime) refreshSlot(r *Representation, t *Type, sm SpecialMethod) {
	info := sm.Info()
	res := t.lookupMRO(info.Dunder)

	slot := func(h Handle) {
		if r.Kind == RepShared {
			t.sharedCache[sm] = h
		} else {
			r.cache[sm] = h
		}
	}

	if !res.found() {
		slot(EmptyHandle)
		return
	}
	if md, ok := res.Value.(*MethodDescriptor); ok {
		if _, ok := md.impls[r.HostClass]; ok {
			slot(func(args []Value, kwnames []string) (Value, error) {
				if len(args) == 0 {
					return nil, typeErrorf("%s(): missing self", info.Dunder)
				}
				return md.Call(args[0], args[1:], kwnames)
			})
			return
		}
	}
	slot(rt.genericHandle(info.Dunder))
}
