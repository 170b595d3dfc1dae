package types

// Feature is a bitmask of public, Python-visible type flags (§2's feature
// flags: BASETYPE, IMMUTABLE, REPLACEABLE, INSTANTIABLE, SEQUENCE, MAPPING,
// MATCH_SELF, METHOD_DESCR, READY, READYING, MUTABLE, ABSTRACT, and the
// fast-subtype bits recording descent from common bases).
type Feature uint32

const (
	FeatureBaseType Feature = 1 << iota
	FeatureImmutable
	FeatureReplaceable
	FeatureInstantiable
	FeatureSequence
	FeatureMapping
	FeatureMatchSelf
	FeatureMethodDescr
	FeatureReady
	FeatureReadying
	FeatureMutable
	FeatureAbstract
	// FastSubtype bits record answers to common queries ("is this an
	// object subclass", "is this a type subclass") as flags; IsSubtypeOf
	// itself does not read them and always walks the MRO.
	FastSubtypeObject
	FastSubtypeType
	FastSubtypeException
)

func (f Feature) Has(bit Feature) bool { return f&bit != 0 }

// heritableFeatures is every Feature a subtype picks up from its bases
// automatically (§8 property 8), excluding the lifecycle-only bits
// (READY/READYING) that describe a single type's own construction state
// rather than a trait a subtype should inherit.
const heritableFeatures = FeatureBaseType | FeatureImmutable | FeatureReplaceable |
	FeatureInstantiable | FeatureSequence | FeatureMapping | FeatureMatchSelf |
	FeatureMethodDescr | FeatureMutable | FeatureAbstract |
	FastSubtypeObject | FastSubtypeType | FastSubtypeException

// KernelFlag is a bitmask of private, implementation-only flags the factory
// derives from the names present in a type's own dict (HAS_GET, HAS_SET,
// etc. in §2); names inherited from bases do not set them. IsDataDescriptor
// consults them instead of performing a full method lookup.
type KernelFlag uint32

const (
	KernelHasGet KernelFlag = 1 << iota
	KernelHasSet
	KernelHasDelete
	KernelHasGetItem
	KernelHasIter
	KernelHasNext
	KernelHasIndex
	KernelHasInit
	// KernelMatchSelf tracks presence of `__match_args__` in a type's own
	// dict, not a SpecialMethod — no catalogue entry dispatches through it,
	// so it is recomputed by a direct dict-key check (factory.go's
	// buildLocked, dispatch.go's recomputeDerivedState) rather than through
	// kernelFlagFor.
	KernelMatchSelf
)

func (k KernelFlag) Has(bit KernelFlag) bool { return k&bit != 0 }

// matchArgsKey is the one kernel-flag trigger that is a plain namespace
// key rather than a dispatchable special method.
const matchArgsKey = "__match_args__"

// kernelFlagFor maps a defined special method to the kernel flag bit it
// turns on, used when recomputing a type's kernel flags after its dict
// changes (§4.C.3's post-change hook).
func kernelFlagFor(sm SpecialMethod) (KernelFlag, bool) {
	switch sm {
	case MGet:
		return KernelHasGet, true
	case MSet:
		return KernelHasSet, true
	case MDelete:
		return KernelHasDelete, true
	case MGetItem:
		return KernelHasGetItem, true
	case MIter:
		return KernelHasIter, true
	case MNext:
		return KernelHasNext, true
	case MIndex:
		return KernelHasIndex, true
	case MInit:
		return KernelHasInit, true
	default:
		return 0, false
	}
}
