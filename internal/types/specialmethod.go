package types

// Kind classifies a SpecialMethod's calling shape, matching §4.A's
// signature categories one-for-one.
type Kind int

const (
	KindUnary Kind = iota
	KindBinary
	KindTernary
	KindCall           // (self, args[], kwnames[])
	KindPredicate      // returns bool
	KindBinaryPredicate
	KindLen            // returns int
	KindSetItem        // (self, key, value)
	KindDelItem        // (self, key)
	KindGetAttr        // (self, name string)
	KindSetAttr
	KindDelAttr
	KindDescrGet // (self, obj, ownerType)
	KindInit     // same shape as KindCall, conventionally returns None
)

func (k Kind) String() string {
	names := [...]string{
		"UNARY", "BINARY", "TERNARY", "CALL", "PREDICATE", "BINARY_PREDICATE",
		"LEN", "SETITEM", "DELITEM", "GETATTR", "SETATTR", "DELATTR",
		"DESCRGET", "INIT",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UNKNOWN"
}

// SpecialMethod enumerates the special methods this core knows about. The
// catalogue is a representative slice of CPython's dunder set — one or
// more members for every Kind except KindTernary, which has none — rather
// than an exhaustive ~80-entry mirror;
// §1 keeps concrete built-in semantics out of scope, so the catalogue only
// needs enough members to exercise every dispatch path and cache
// discipline, not every operator CPython ships.
type SpecialMethod int

const (
	MAdd SpecialMethod = iota
	MRAdd
	MSub
	MRSub
	MMul
	MRMul
	MTrueDiv
	MRTrueDiv
	MNeg
	MPos
	MInvert
	MEq
	MNe
	MLt
	MLe
	MGt
	MGe
	MBool
	MLen
	MGetItem
	MSetItem
	MDelItem
	MIter
	MNext
	MContains
	MCall
	MStr
	MRepr
	MHash
	MGetAttribute
	MGetAttr
	MSetAttr
	MDelAttr
	MGet
	MSet
	MDelete
	MNew
	MInit
	MIndex
	numSpecialMethods
)

// specialMethodInfo is the catalogue entry for one SpecialMethod: its
// dunder name, calling shape, optional reverse peer for binary arithmetic
// coercion, and a Cacheable mark (false for a handful of introspection-only
// dunders, matching the teacher's distinction between cached operator
// slots and everything else resolved through getAttr). refreshSlot does
// not read Cacheable: every SpecialMethod has a cache slot in every
// Representation and ReplaceableType, and all of them are refreshed alike.
type specialMethodInfo struct {
	Dunder    string
	Kind      Kind
	Reverse   SpecialMethod // self if no reverse peer
	Cacheable bool
}

var methodCatalogue = buildCatalogue()

func buildCatalogue() map[SpecialMethod]specialMethodInfo {
	c := map[SpecialMethod]specialMethodInfo{
		MAdd:          {"__add__", KindBinary, MRAdd, true},
		MRAdd:         {"__radd__", KindBinary, MAdd, true},
		MSub:          {"__sub__", KindBinary, MRSub, true},
		MRSub:         {"__rsub__", KindBinary, MSub, true},
		MMul:          {"__mul__", KindBinary, MRMul, true},
		MRMul:         {"__rmul__", KindBinary, MMul, true},
		MTrueDiv:      {"__truediv__", KindBinary, MRTrueDiv, true},
		MRTrueDiv:     {"__rtruediv__", KindBinary, MTrueDiv, true},
		MNeg:          {"__neg__", KindUnary, -1, true},
		MPos:          {"__pos__", KindUnary, -1, true},
		MInvert:       {"__invert__", KindUnary, -1, true},
		MEq:           {"__eq__", KindBinaryPredicate, MEq, true},
		MNe:           {"__ne__", KindBinaryPredicate, MNe, true},
		MLt:           {"__lt__", KindBinaryPredicate, MGt, true},
		MLe:           {"__le__", KindBinaryPredicate, MGe, true},
		MGt:           {"__gt__", KindBinaryPredicate, MLt, true},
		MGe:           {"__ge__", KindBinaryPredicate, MLe, true},
		MBool:         {"__bool__", KindPredicate, -1, true},
		MLen:          {"__len__", KindLen, -1, true},
		MGetItem:      {"__getitem__", KindBinary, -1, true},
		MSetItem:      {"__setitem__", KindSetItem, -1, true},
		MDelItem:      {"__delitem__", KindDelItem, -1, true},
		MIter:         {"__iter__", KindUnary, -1, true},
		MNext:         {"__next__", KindUnary, -1, true},
		MContains:     {"__contains__", KindBinaryPredicate, -1, true},
		MCall:         {"__call__", KindCall, -1, true},
		MStr:          {"__str__", KindUnary, -1, true},
		MRepr:         {"__repr__", KindUnary, -1, true},
		MHash:         {"__hash__", KindLen, -1, true},
		MGetAttribute: {"__getattribute__", KindGetAttr, -1, true},
		MGetAttr:      {"__getattr__", KindGetAttr, -1, false},
		MSetAttr:      {"__setattr__", KindSetAttr, -1, true},
		MDelAttr:      {"__delattr__", KindDelAttr, -1, true},
		MGet:          {"__get__", KindDescrGet, -1, false},
		MSet:          {"__set__", KindSetAttr, -1, false},
		MDelete:       {"__delete__", KindUnary, -1, false},
		MNew:          {"__new__", KindCall, -1, true},
		MInit:         {"__init__", KindInit, -1, true},
		MIndex:        {"__index__", KindUnary, -1, true},
	}
	for sm, info := range c {
		if info.Reverse == -1 {
			info.Reverse = sm
			c[sm] = info
		}
	}
	return c
}

var dunderToMethod = buildDunderIndex()

func buildDunderIndex() map[string]SpecialMethod {
	idx := make(map[string]SpecialMethod, len(methodCatalogue))
	for sm, info := range methodCatalogue {
		idx[info.Dunder] = sm
	}
	return idx
}

// LookupSpecialMethod returns the SpecialMethod for a dunder name. The
// boolean reports whether this core treats the name as one of its
// catalogued special methods at all, cacheable or not.
func LookupSpecialMethod(dunder string) (SpecialMethod, bool) {
	sm, ok := dunderToMethod[dunder]
	return sm, ok
}

// Info returns the catalogue entry for sm.
func (sm SpecialMethod) Info() specialMethodInfo { return methodCatalogue[sm] }

// Dunder returns the conventional `__xxx__` name for sm.
func (sm SpecialMethod) Dunder() string { return methodCatalogue[sm].Dunder }

// Handle is the uniform calling convention for a special-method
// implementation: args[0] is `self` by the same convention the teacher's
// callDunder uses when it prepends the instance (internal/runtime/operations.go).
// kwnames is nil for every Kind except KindCall/KindInit.
type Handle func(args []Value, kwnames []string) (Value, error)

// EmptyHandle is the canonical "not defined" handle shared by every
// signature family (§4.A.1): invoking it always yields ErrEmpty. A
// Representation whose cache slot holds EmptyHandle signals that the
// special method is absent for that representation.
func EmptyHandle(args []Value, kwnames []string) (Value, error) {
	return nil, ErrEmpty
}
