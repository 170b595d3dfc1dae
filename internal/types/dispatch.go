package types

// Runtime bundles the Registry and TypeFactory a running interpreter needs
// and exposes the operations that require both: resolving a value's
// Python type, the generic special-method invocation algorithm (§4.A.2),
// and the attribute protocol (§4.C.3). Keeping this state on an explicit
// receiver instead of package globals means tests can spin up an
// independent Runtime per case without bootstrap state leaking between
// them, the same isolation the teacher gets from constructing a fresh
// Interpreter per test in test/descriptor_test.go.
type Runtime struct {
	Registry *Registry
	Factory  *TypeFactory

	// ObjectType and TypeType are the two bootstrap types every other type
	// in a Runtime ultimately descends from / is an instance of.
	ObjectType *Type
	TypeType   *Type

	layouts *layoutRegistry
}

// NewRuntime constructs a Runtime with a fresh Registry and TypeFactory and
// bootstraps object and type onto it. No other built-in type is created
// at bootstrap.
func NewRuntime() *Runtime {
	rt := &Runtime{Registry: newRegistry(), layouts: newLayoutRegistry()}
	rt.Factory = newTypeFactory(rt)
	rt.Factory.bootstrap()
	return rt
}

// PythonType resolves type(v): the Representation for v's host class,
// consulted for its owning Type (Canonical/Adopted) or, for Shared
// representations, read off the instance via WithClass.
func (rt *Runtime) PythonType(v Value) *Type {
	if wc, ok := v.(WithClass); ok {
		return wc.PyType()
	}
	rep := rt.Registry.find(classOf(v))
	if rep == nil {
		return nil
	}
	return rep.PythonType(v)
}

// genericHandle implements §4.A.2's generic invocation algorithm as a
// Runtime-bound closure: given a dunder name, it returns a Handle that,
// each time it is called, looks the name up fresh on type(self)'s MRO,
// applies METHOD_DESCR bypass or descriptor binding, and falls back to
// ErrEmpty when the method is absent. This is the "Generic" cache
// discipline from §4.A.3: representations whose direct-dispatch
// fast path does not apply fall back to this closure rather than caching
// a resolved callable, because the bound shape can differ per call site
// (different self-classes of an AdoptiveType, or a descriptor that
// recomputes its binding every time).
func (rt *Runtime) genericHandle(dunder string) Handle {
	return func(args []Value, kwnames []string) (Value, error) {
		if len(args) == 0 {
			return nil, typeErrorf("%s(): missing self", dunder)
		}
		self := args[0]
		rest := args[1:]

		t := rt.PythonType(self)
		if t == nil {
			return nil, typeErrorf("%s(): self has no Python type", dunder)
		}

		res := t.lookupMRO(dunder)
		if !res.found() {
			return nil, ErrEmpty
		}

		// METHOD_DESCR bypass: a plain host method descriptor is invoked
		// directly against self without going through __get__, since
		// binding it would only re-produce a BoundMethod this call is
		// about to unwrap anyway.
		if md, ok := res.Value.(*MethodDescriptor); ok {
			return md.Call(self, rest, kwnames)
		}

		bound, err := rt.bindDescriptor(res.Value, self, t)
		if err != nil {
			return nil, err
		}
		fc, ok := bound.(FastCall)
		if !ok {
			return nil, typeErrorf("%s(): resolved value is not callable", dunder)
		}
		return invoke(fc, rest, kwnames)
	}
}

// bindDescriptor implements the descriptor-or-raw-value branch shared by
// the generic invocation algorithm and the attribute protocol: if val
// implements Descriptor, its __get__ is called with (obj, owner); a
// Go-level Empty result (val not a descriptor at all) just returns val
// unchanged, since "the raw value is the callable/attribute" per §4.A.2
// step 5 and §4.C.3.
func (rt *Runtime) bindDescriptor(val Value, obj Value, owner *Type) (Value, error) {
	if d, ok := val.(Descriptor); ok {
		return d.Get(obj, owner)
	}
	return val, nil
}

// recomputeDerivedState re-runs the §4.C.3 post-change hook after a type's
// dict changed: refresh every Representation's cache slot for the
// SpecialMethod touched (if name is one), recompute kernel flags for t
// and walk its known subtypes to invalidate theirs too, since an ancestor
// change can shadow or unshadow an inherited special method anywhere
// downstream of t in the MRO.
func (rt *Runtime) recomputeDerivedState(t *Type, name string) {
	sm, isSpecial := LookupSpecialMethod(name)
	if bit, ok := kernelFlagFor(sm); isSpecial && ok {
		t.mu.RLock()
		_, found := t.dict[name]
		t.mu.RUnlock()
		if found {
			t.kernelFlags |= bit
		} else {
			t.kernelFlags &^= bit
		}
	}
	if name == matchArgsKey {
		t.mu.RLock()
		_, found := t.dict[name]
		t.mu.RUnlock()
		if found {
			t.kernelFlags |= KernelMatchSelf
		} else {
			t.kernelFlags &^= KernelMatchSelf
		}
	}
	for _, affected := range rt.Registry.subtypesOf(t) {
		for _, r := range affected.reps {
			if isSpecial {
				rt.refreshSlot(r, affected, sm)
			} else {
				for s := SpecialMethod(0); s < numSpecialMethods; s++ {
					rt.refreshSlot(r, affected, s)
				}
			}
		}
	}
}

// CallSpecial invokes sm on self with the given extra arguments, returning
// ErrEmpty if no Representation or MRO entry defines it. This is the
// entry point arithmetic/comparison/iteration/call dispatch in a
// consuming interpreter is expected to use instead of reimplementing
// generic invocation itself.
func (rt *Runtime) CallSpecial(sm SpecialMethod, self Value, rest []Value, kwnames []string) (Value, error) {
	args := append([]Value{self}, rest...)
	if t := rt.PythonType(self); t != nil {
		if rep := t.representationFor(classOf(self)); rep != nil {
			if rep.Kind == RepShared {
				return t.sharedCache[sm](args, kwnames)
			}
			return rep.cache[sm](args, kwnames)
		}
	}
	return rt.genericHandle(sm.Dunder())(args, kwnames)
}
