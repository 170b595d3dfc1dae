package types

import "reflect"

// CallShape classifies a host method's parameter shape so the call path can
// pick an optimised dispatch instead of always marshalling through a
// generic varargs-plus-keywords path (§4.H). Mirrors the arity-specific
// overloads (Call0/Call1/Call2/Call3) the teacher exposes on FastCall.
type CallShape int

const (
	ShapeNoArgs CallShape = iota
	ShapeO1
	ShapeO2
	ShapeO3
	ShapePositional // varargs, positional-only
	ShapeGeneral    // accepts keywords or collects *args/**kwargs
)

// methodImpl is one self-class's implementation of a MethodDescriptor.
type methodImpl func(self Value, args []Value, kwnames []string) (Value, error)

// MethodDescriptor is a direct handle to a host-implemented method, with
// first-parameter adaption for `self` (§4.H). AdoptiveType members need one
// implementation per self-class (§4.C.2); impls is keyed by the concrete Go
// type of self, with a nil key serving as the wildcard used by
// SimpleType/ReplaceableType members that only ever see one shape of self.
type MethodDescriptor struct {
	Name  string
	Shape CallShape
	impls map[reflect.Type]methodImpl
}

// NewMethodDescriptorFor builds a method descriptor with a single
// implementation, used for SimpleType/ReplaceableType members.
func NewMethodDescriptorFor(name string, shape CallShape, fn methodImpl) *MethodDescriptor {
	return &MethodDescriptor{Name: name, Shape: shape, impls: map[reflect.Type]methodImpl{nil: fn}}
}

// AddSelfClass registers an additional self-class implementation, used by
// AdoptiveType members that must dispatch differently per representation.
func (m *MethodDescriptor) AddSelfClass(selfClass reflect.Type, fn methodImpl) {
	if m.impls == nil {
		m.impls = make(map[reflect.Type]methodImpl)
	}
	m.impls[selfClass] = fn
}

func (m *MethodDescriptor) implFor(self Value) (methodImpl, bool) {
	if fn, ok := m.impls[reflect.TypeOf(self)]; ok {
		return fn, true
	}
	fn, ok := m.impls[nil]
	return fn, ok
}

// Call invokes the implementation registered for self's concrete class.
func (m *MethodDescriptor) Call(self Value, args []Value, kwnames []string) (Value, error) {
	fn, ok := m.implFor(self)
	if !ok {
		return nil, typeErrorf("%s() has no implementation for self-class %T", m.Name, self)
	}
	return fn(self, args, kwnames)
}

// Get implements the descriptor protocol's binding step: a bound method
// that, when called, prepends obj as self.
func (m *MethodDescriptor) Get(obj Value, owner *Type) (Value, error) {
	if obj == nil {
		return m, nil // unbound access via the class itself
	}
	return &BoundMethod{Descr: m, Self: obj}, nil
}

// BoundMethod is the result of binding a MethodDescriptor to an instance.
type BoundMethod struct {
	Descr *MethodDescriptor
	Self  Value
}

func (b *BoundMethod) Call(args []Value, kwnames []string) (Value, error) {
	return b.Descr.Call(b.Self, args, kwnames)
}

// StaticMethodDescriptor wraps a callable so binding never prepends self.
type StaticMethodDescriptor struct {
	Fn FastCall
}

func (s *StaticMethodDescriptor) Get(obj Value, owner *Type) (Value, error) {
	return s.Fn, nil
}

// ClassMethodDescriptor wraps a callable so binding always prepends the
// owning type (never the instance), matching `classmethod`.
type ClassMethodDescriptor struct {
	Fn methodImpl
}

func (c *ClassMethodDescriptor) Get(obj Value, owner *Type) (Value, error) {
	return &boundClassMethod{descr: c, owner: owner}, nil
}

type boundClassMethod struct {
	descr *ClassMethodDescriptor
	owner *Type
}

func (b *boundClassMethod) Call(args []Value, kwnames []string) (Value, error) {
	return b.descr.Fn(b.owner, args, kwnames)
}

// NewMethodDescriptor wraps a type's `__new__` implementation, validating
// that the class passed as the first argument is a subtype of the defining
// type before invoking the implementation (§4.C.4, §4.H).
type NewMethodDescriptor struct {
	Defining *Type
	Fn       func(cls *Type, args []Value, kwnames []string) (Value, error)
}

func (n *NewMethodDescriptor) Get(obj Value, owner *Type) (Value, error) {
	return n, nil // __new__ is effectively a static method: never bound to an instance
}

func (n *NewMethodDescriptor) Call(args []Value, kwnames []string) (Value, error) {
	if len(args) == 0 {
		return nil, typeErrorf("%s.__new__(): not enough arguments", n.Defining.name)
	}
	cls, ok := args[0].(*Type)
	if !ok {
		return nil, typeErrorf("%s.__new__(X): X is not a type object", n.Defining.name)
	}
	if !cls.IsSubtypeOf(n.Defining) {
		return nil, typeErrorf("%s.__new__(%s): %s is not a subtype of %s",
			n.Defining.name, cls.name, cls.name, n.Defining.name)
	}
	return n.Fn(cls, args[1:], kwnames)
}

// PropertyDescriptor is the data-descriptor backing `property()`. Per
// CPython semantics a property is always a data descriptor: Set/Delete
// raise AttributeError when the corresponding accessor is absent rather
// than falling through to instance-dict storage.
type PropertyDescriptor struct {
	Fget, Fset, Fdel FastCall
	Doc              string
}

func (p *PropertyDescriptor) Get(obj Value, owner *Type) (Value, error) {
	if obj == nil {
		return p, nil
	}
	if p.Fget == nil {
		return nil, attributeErrorf("unreadable attribute")
	}
	return p.Fget.Call([]Value{obj}, nil)
}

func (p *PropertyDescriptor) Set(obj, value Value) error {
	if p.Fset == nil {
		return attributeErrorf("property has no setter")
	}
	_, err := p.Fset.Call([]Value{obj, value}, nil)
	return err
}

func (p *PropertyDescriptor) Delete(obj Value) error {
	if p.Fdel == nil {
		return attributeErrorf("property has no deleter")
	}
	_, err := p.Fdel.Call([]Value{obj}, nil)
	return err
}

// Descriptor is implemented by every object that binds to an instance via
// `__get__`.
type Descriptor interface {
	Get(obj Value, owner *Type) (Value, error)
}

// DataDescriptor is implemented by descriptors that also define `__set__`
// and/or `__delete__`, giving them precedence over the instance dict
// (§4.C.3, invariant iv in the glossary's "Data descriptor" entry).
type DataDescriptor interface {
	Descriptor
	Set(obj, value Value) error
	Delete(obj Value) error
}

var (
	_ Descriptor     = (*MethodDescriptor)(nil)
	_ Descriptor     = (*StaticMethodDescriptor)(nil)
	_ Descriptor     = (*ClassMethodDescriptor)(nil)
	_ Descriptor     = (*NewMethodDescriptor)(nil)
	_ DataDescriptor = (*PropertyDescriptor)(nil)
)
