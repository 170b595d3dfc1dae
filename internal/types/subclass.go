package types

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// subclassLayout is the result of the subclass-representation builder
// (§4.G): a memoized description of the instance shape a clique of
// user-defined classes share. The original (Jython) mechanism synthesizes a
// fresh host class per clique (new fields for `__dict__`/`__class__`/slots);
// the JVM-bytecode emission that does this for a managed platform has no
// idiomatic Go analogue — Go cannot generate new struct types at runtime.
// Instead every ReplaceableType clique shares the single sharedInstance Go
// struct, and the layout record carries the metadata (allowed slot names,
// whether a `__dict__` exists) that would otherwise have been baked into
// distinct generated fields. Equivalence is keyed on (bestBase, sorted
// slot names, hasDict), matching the clique key the original groups
// classes by, and memoized in a Runtime-wide table so two unrelated
// classes declaring the same `__slots__` shape over the same base share
// one layout, exactly as they would share one synthesized class there.
type subclassLayout struct {
	id       uuid.UUID
	hostClass reflect.Type
	base     *Type
	slots    []string
	hasDict  bool
}

// String identifies a layout by its clique id, the form factory.go's
// construction log uses to tell two distinct memoized layouts apart
// without printing their full slot lists.
func (l *subclassLayout) String() string {
	return fmt.Sprintf("layout-%s", l.id)
}

// sharedInstanceHostClass is the Registry key every ReplaceableType's
// Representation is reserved under: the pointer-to-sharedInstance
// reflect.Type, matching classOf's convention of keying on reflect.TypeOf
// of the pointer values actually passed around (object.go).
var sharedInstanceHostClass = reflect.TypeOf(&sharedInstance{})

// sharedInstance is the single host struct backing every ReplaceableType
// instance regardless of which user-defined class built it. Its own
// Layout pointer stands in for the per-clique struct shape a synthesized
// class would otherwise encode directly in its fields.
type sharedInstance struct {
	mu     sync.RWMutex
	typ    *Type
	dict   map[string]Value
	slots  map[string]Value
	layout *subclassLayout
}

func newSharedInstance(t *Type, layout *subclassLayout) *sharedInstance {
	s := &sharedInstance{typ: t, layout: layout}
	if layout.hasDict {
		s.dict = make(map[string]Value)
	}
	if len(layout.slots) > 0 {
		s.slots = make(map[string]Value, len(layout.slots))
	}
	return s
}

func (s *sharedInstance) PyType() *Type { return s.typ }

func (s *sharedInstance) SetPyType(t *Type) error {
	if err := s.CheckClassAssignment(t); err != nil {
		return err
	}
	s.mu.Lock()
	s.typ = t
	s.mu.Unlock()
	return nil
}

// CheckClassAssignment implements `__class__` assignment's layout check
// (§4.G): the replacement type's representation class must equal this
// instance's own host class, i.e. the new type must also be a
// ReplaceableType built over a compatible layout.
func (s *sharedInstance) CheckClassAssignment(t *Type) error {
	if t.variant != VariantReplaceable || t.layout == nil {
		return typeErrorf("__class__ assignment: %q is not a compatible layout", t.name)
	}
	if t.layout != s.layout {
		return typeErrorf("__class__ assignment: %q has an incompatible instance layout", t.name)
	}
	return nil
}

func (s *sharedInstance) InstanceDict() map[string]Value {
	if s.layout.hasDict {
		return s.dict
	}
	return nil
}

var (
	_ WithClassAssignment = (*sharedInstance)(nil)
	_ WithDict            = (*sharedInstance)(nil)
)

// layoutRegistry memoizes subclassLayouts by equivalence class so
// identical (base, slots, hasDict) triples collapse onto one layout
// instead of minting a fresh one per class statement.
type layoutRegistry struct {
	mu    sync.Mutex
	byKey map[layoutKey]*subclassLayout
}

type layoutKey struct {
	base    *Type
	slots   string // slot names joined with "\x00", sorted
	hasDict bool
}

func newLayoutRegistry() *layoutRegistry {
	return &layoutRegistry{byKey: make(map[layoutKey]*subclassLayout)}
}

// layoutFor returns the memoized subclassLayout for best's clique, given
// the slots and __dict__ requested by a class body's namespace, creating
// one if this is the first class to ask for this exact shape.
func (rt *Runtime) layoutFor(best *Type, namespace map[string]Value) (*subclassLayout, error) {
	slots, hasDict := extractSlots(namespace)

	if best != nil && best.layout != nil {
		// A subclass of an existing ReplaceableType is keyed on its
		// parent layout's base together with the subclass's own requested
		// shape, regardless of ancestry depth: it shares the parent's
		// layout only when it requests the same slots and __dict__.
		best = best.layout.base
	}

	key := layoutKey{base: best, slots: joinSorted(slots), hasDict: hasDict}

	rt.layouts.mu.Lock()
	defer rt.layouts.mu.Unlock()
	if existing, ok := rt.layouts.byKey[key]; ok {
		return existing, nil
	}
	layout := &subclassLayout{
		id:        uuid.New(),
		hostClass: sharedInstanceHostClass,
		base:      best,
		slots:     slots,
		hasDict:   hasDict,
	}
	rt.layouts.byKey[key] = layout
	return layout, nil
}

// extractSlots reads a `__slots__` entry out of a class namespace, if
// present, and reports whether the class still gets a `__dict__` (true
// whenever `__slots__` is absent, matching default Python behaviour).
func extractSlots(namespace map[string]Value) (slots []string, hasDict bool) {
	raw, ok := namespace["__slots__"]
	if !ok {
		return nil, true
	}
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), false
	case string:
		return []string{v}, false
	default:
		return nil, true
	}
}

func joinSorted(names []string) string {
	sorted := append([]string(nil), names...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	joined := ""
	for i, s := range sorted {
		if i > 0 {
			joined += "\x00"
		}
		joined += s
	}
	return joined
}
