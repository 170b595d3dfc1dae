package types

// CallType implements `type.__call__` (§4.C.4): resolve `__new__` on
// cls's MRO and invoke it with cls prepended, then — only if the result's
// own type is cls or a subtype of it — resolve and invoke `__init__` on
// the result. Constructing an instance of an unrelated type (a factory
// `__new__` returning something else entirely) skips `__init__` exactly
// as CPython does.
//
// Calling the metaclass itself (cls == rt.TypeType) is special-cased per
// §4.C.4: with exactly one positional argument and no keywords, `type(x)`
// means "what is x's type" and returns it directly without running any
// __new__/__init__ at all; with exactly three positional arguments it
// falls through to the general case below, which resolves `type`'s own
// `__new__` (wired at bootstrap, see newTypeNewImpl) to run the
// `type(name, bases, ns)` construction algorithm in NewType.
func (rt *Runtime) CallType(cls *Type, args []Value, kwnames []string) (Value, error) {
	if cls == rt.TypeType && len(args) == 1 && len(kwnames) == 0 {
		t := rt.PythonType(args[0])
		if t == nil {
			return nil, typeErrorf("type(): argument has no Python type")
		}
		return t, nil
	}

	newRes := cls.lookupMRO("__new__")
	if !newRes.found() {
		return nil, typeErrorf("cannot create %q instances: no __new__", cls.name)
	}
	newCallable, err := rt.bindDescriptor(newRes.Value, nil, cls)
	if err != nil {
		return nil, err
	}
	fc, ok := newCallable.(FastCall)
	if !ok {
		return nil, typeErrorf("%s.__new__ is not callable", cls.name)
	}
	obj, err := invoke(fc, append([]Value{cls}, args...), kwnames)
	if err != nil {
		return nil, err
	}

	objType := rt.PythonType(obj)
	if objType == nil || !objType.IsSubtypeOf(cls) {
		return obj, nil
	}

	if initRes := objType.lookupMRO("__init__"); initRes.found() {
		initCallable, err := rt.bindDescriptor(initRes.Value, obj, objType)
		if err != nil {
			return nil, err
		}
		if fc, ok := initCallable.(FastCall); ok {
			if _, err := invoke(fc, args, kwnames); err != nil {
				return nil, err
			}
		}
	}
	return obj, nil
}

// NewType implements the metaclass's `__new__`/`__init__` pair for the
// three-argument `type(name, bases, namespace)` call (§4.C.5): resolve the
// winning metaclass among the explicit one and every base's own type,
// compute best_base, detect layout conflicts between incompatible
// ReplaceableType layouts, and submit the resulting TypeSpec to the
// factory.
func (rt *Runtime) NewType(name string, bases []*Type, namespace map[string]Value, methodImpls any, explicitMeta *Type) (*Type, error) {
	for _, b := range bases {
		if !b.HasFeature(FeatureBaseType) {
			return nil, typeErrorf("type %q is not an acceptable base type", b.name)
		}
	}

	metatype, err := commonMetaclass(bases, explicitMeta)
	if err != nil {
		return nil, err
	}

	if err := checkLayoutCompatible(bases); err != nil {
		return nil, err
	}

	best := computeBestBase(bases)

	// A class statement (the three-argument `type(name, bases, ns)` call)
	// always produces a ReplaceableType, never a SimpleType: SimpleType is
	// reserved for host-native types registered directly through
	// TypeFactory.Build (object, type, and kernel-backed types), not for
	// anything built through the metaclass protocol (§2, §4.C.5).
	spec := &TypeSpec{
		Name:        name,
		Variant:     VariantReplaceable,
		Bases:       bases,
		Metatype:    metatype,
		Features:    FeatureBaseType | FeatureInstantiable | FeatureReplaceable,
		Namespace:   namespace,
		MethodImpls: methodImpls,
	}
	return rt.buildReplaceableOrSimple(spec, best)
}

// newTypeNewImpl adapts NewType to the NewMethodDescriptor.Fn shape so it
// can be installed as `type.__new__` at bootstrap (factory.go), closing the
// loop between the metaclass-call protocol (CallType, above) and the
// three-argument construction algorithm: calling `type(name, bases, ns)`
// through CallType(rt.TypeType, ...) reaches this exact function, not a
// separate, never-exercised code path.
func newTypeNewImpl(rt *Runtime) func(cls *Type, args []Value, kwnames []string) (Value, error) {
	return func(cls *Type, args []Value, kwnames []string) (Value, error) {
		if len(args) != 3 {
			return nil, typeErrorf("type.__new__() takes exactly 3 arguments (%d given)", len(args))
		}
		name, ok := args[0].(string)
		if !ok {
			return nil, typeErrorf("type.__new__(): name must be a string, not %T", args[0])
		}
		bases, err := toBasesSlice(args[1])
		if err != nil {
			return nil, err
		}
		namespace, ok := args[2].(map[string]Value)
		if !ok {
			return nil, typeErrorf("type.__new__(): namespace must be a dict, not %T", args[2])
		}
		return rt.NewType(name, bases, namespace, nil, cls)
	}
}

// toBasesSlice accepts either a ready []*Type or the []Value a caller
// assembling a Python-level tuple of base classes would naturally produce.
func toBasesSlice(v Value) ([]*Type, error) {
	switch bases := v.(type) {
	case []*Type:
		return bases, nil
	case []Value:
		out := make([]*Type, len(bases))
		for i, b := range bases {
			t, ok := b.(*Type)
			if !ok {
				return nil, typeErrorf("type.__new__(): bases[%d] is not a type object", i)
			}
			out[i] = t
		}
		return out, nil
	default:
		return nil, typeErrorf("type.__new__(): bases must be a tuple of type objects, not %T", v)
	}
}

// buildReplaceableOrSimple finishes NewType's work: a ReplaceableType
// built from a user class statement reuses its best base's shared layout
// (one host struct, many Python-level types, per §2's Shared
// Representation), so it is routed through subclass.go's layout builder
// instead of expecting a fresh PrimaryClass from the caller.
func (rt *Runtime) buildReplaceableOrSimple(spec *TypeSpec, best *Type) (*Type, error) {
	if spec.Variant != VariantReplaceable {
		return rt.Factory.Build(spec)
	}
	layout, err := rt.layoutFor(best, spec.Namespace)
	if err != nil {
		return nil, err
	}
	spec.PrimaryClass = layout.hostClass
	spec.Layout = layout
	return rt.Factory.Build(spec)
}

// commonMetaclass resolves which metaclass governs a new type: the most
// derived of the explicitly requested metaclass (if any) and every base's
// own type. A TypeError ("metaclass conflict") results if no single
// candidate is a subtype of all the others.
func commonMetaclass(bases []*Type, explicit *Type) (*Type, error) {
	candidates := make([]*Type, 0, len(bases)+1)
	if explicit != nil {
		candidates = append(candidates, explicit)
	}
	for _, b := range bases {
		if b.metatype != nil {
			candidates = append(candidates, b.metatype)
		}
	}
	if len(candidates) == 0 {
		return nil, typeErrorf("cannot determine metaclass: no bases and no explicit metaclass")
	}

	winner := candidates[0]
	for _, c := range candidates[1:] {
		switch {
		case c.IsSubtypeOf(winner):
			winner = c
		case winner.IsSubtypeOf(c):
			// winner already more derived, keep it
		default:
			return nil, typeErrorf("metaclass conflict: the metaclass of a derived class must be "+
				"a (non-strict) subclass of the metaclasses of all its bases, not %s and %s", winner.name, c.name)
		}
	}
	return winner, nil
}

// checkLayoutCompatible rejects bases whose ReplaceableType layouts are
// both set but incompatible (§4.C.5's layout-conflict detection,
// simplified to the shared-layout model subclass.go builds instead of
// CPython's C-struct field layout).
func checkLayoutCompatible(bases []*Type) error {
	var common *subclassLayout
	for _, b := range bases {
		if b.layout == nil {
			continue
		}
		if common == nil {
			common = b.layout
			continue
		}
		if common != b.layout {
			return typeErrorf("multiple bases have instance layout conflict (%s and %s)", bases[0].name, b.name)
		}
	}
	return nil
}
