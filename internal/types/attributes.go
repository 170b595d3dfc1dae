package types

// GetAttr implements the default `__getattribute__` algorithm (§4.C.3):
//
//  1. Look up name on type(obj)'s MRO.
//  2. If found and it is a data descriptor, its __get__ wins outright.
//  3. Otherwise consult the instance dict (if obj implements WithDict).
//  4. Otherwise, if the type lookup found a non-data descriptor or plain
//     value, bind/return it.
//  5. Otherwise fall back to `__getattr__` if the type defines one.
//  6. Otherwise AttributeError.
//
// Grounded on the teacher's defaultGetAttribute in
// internal/runtime/attributes.go, generalised from PyInstance's
// Dict-then-class-dict order to the full data-descriptor-first precedence
// CPython's object.__getattribute__ implements.
func (rt *Runtime) GetAttr(obj Value, name string) (Value, error) {
	if cls, ok := obj.(*Type); ok {
		return rt.getAttrOnType(cls, name)
	}

	t := rt.PythonType(obj)
	if t == nil {
		return nil, typeErrorf("getattr(): object has no Python type")
	}

	typeRes := t.lookupMRO(name)

	if typeRes.found() {
		if dd, ok := typeRes.Value.(DataDescriptor); ok {
			return dd.Get(obj, t)
		}
	}

	if wd, ok := obj.(WithDict); ok {
		if d := wd.InstanceDict(); d != nil {
			if v, ok := d[name]; ok {
				return v, nil
			}
		}
	}

	if typeRes.found() {
		return rt.bindDescriptor(typeRes.Value, obj, t)
	}

	if getattr := t.lookupMRO("__getattr__"); getattr.found() {
		bound, err := rt.bindDescriptor(getattr.Value, obj, t)
		if err != nil {
			return nil, err
		}
		if fc, ok := bound.(FastCall); ok {
			return invoke(fc, []Value{name}, nil)
		}
	}

	return nil, attributeErrorf("%s object has no attribute %q", t.name, name)
}

// getAttrOnType implements `type.__getattribute__`: a data descriptor on
// the metatype's MRO wins outright, then cls's own MRO (binding to the
// class rather than an instance), then a non-data attribute found on the
// metatype.
func (rt *Runtime) getAttrOnType(cls *Type, name string) (Value, error) {
	meta := cls.metatype
	if meta != nil {
		if metaRes := meta.lookupMRO(name); metaRes.found() {
			if dd, ok := metaRes.Value.(DataDescriptor); ok {
				return dd.Get(cls, meta)
			}
		}
	}
	if res := cls.lookupMRO(name); res.found() {
		return rt.bindDescriptor(res.Value, nil, cls)
	}
	if meta != nil {
		if metaRes := meta.lookupMRO(name); metaRes.found() {
			return rt.bindDescriptor(metaRes.Value, cls, meta)
		}
	}
	return nil, attributeErrorf("type object %q has no attribute %q", cls.name, name)
}

// setAttrOnType mirrors getAttrOnType's precedence for writes: a data
// descriptor on the metatype's MRO gets first refusal before the value
// lands directly in cls's own namespace.
func (rt *Runtime) setAttrOnType(cls *Type, name string, value Value) error {
	if cls.metatype != nil {
		if metaRes := cls.metatype.lookupMRO(name); metaRes.found() {
			if dd, ok := metaRes.Value.(DataDescriptor); ok {
				return dd.Set(cls, value)
			}
		}
	}
	return cls.dictPut(rt, name, value)
}

// delAttrOnType mirrors setAttrOnType for deletes.
func (rt *Runtime) delAttrOnType(cls *Type, name string) error {
	if cls.metatype != nil {
		if metaRes := cls.metatype.lookupMRO(name); metaRes.found() {
			if dd, ok := metaRes.Value.(DataDescriptor); ok {
				return dd.Delete(cls)
			}
		}
	}
	return cls.dictRemove(rt, name)
}

// SetAttr implements `__setattr__` (§4.C.3): a data descriptor found on
// type(obj) gets first refusal, otherwise the value lands in obj's
// instance dict, otherwise AttributeError (no dict, e.g. a `__slots__`-only
// instance with no field for this name).
func (rt *Runtime) SetAttr(obj Value, name string, value Value) error {
	if cls, ok := obj.(*Type); ok {
		return rt.setAttrOnType(cls, name, value)
	}

	t := rt.PythonType(obj)
	if t == nil {
		return typeErrorf("setattr(): object has no Python type")
	}

	if typeRes := t.lookupMRO(name); typeRes.found() {
		if dd, ok := typeRes.Value.(DataDescriptor); ok {
			return dd.Set(obj, value)
		}
	}

	wd, ok := obj.(WithDict)
	if !ok {
		return attributeErrorf("%s object has no attribute %q", t.name, name)
	}
	d := wd.InstanceDict()
	if d == nil {
		return attributeErrorf("%s object has no __dict__", t.name)
	}
	d[name] = value
	return nil
}

// DelAttr implements `__delattr__`, mirroring SetAttr's precedence.
func (rt *Runtime) DelAttr(obj Value, name string) error {
	if cls, ok := obj.(*Type); ok {
		return rt.delAttrOnType(cls, name)
	}

	t := rt.PythonType(obj)
	if t == nil {
		return typeErrorf("delattr(): object has no Python type")
	}

	if typeRes := t.lookupMRO(name); typeRes.found() {
		if dd, ok := typeRes.Value.(DataDescriptor); ok {
			return dd.Delete(obj)
		}
	}

	wd, ok := obj.(WithDict)
	if !ok {
		return attributeErrorf("%s object has no attribute %q", t.name, name)
	}
	d := wd.InstanceDict()
	if d == nil {
		return attributeErrorf("%s object has no __dict__", t.name)
	}
	if _, ok := d[name]; !ok {
		return attributeErrorf("%s object has no attribute %q", t.name, name)
	}
	delete(d, name)
	return nil
}
