package types

import (
	"reflect"
	"sync"
)

// Registry maps host classes to the Representation that binds them to a
// Python type. Reads go through a lock-free-for-readers RWMutex exactly
// like the teacher's moduleRegistry/moduleMu pair (internal/runtime/module.go)
// and the type_registry.go pattern from the wider example pack: writers
// take the write lock only to publish a batch atomically, readers never
// block each other. Published entries are visible to any goroutine.
// Unpublished ("workshop") entries are read only by reserve's clash check;
// find and FindByName read the published maps alone, so a type under
// construction never leaks a half-built Representation to any reader.
type Registry struct {
	mu        sync.RWMutex
	published map[reflect.Type]*Representation
	byName    map[string]*Type
	children  map[*Type][]*Type // direct-subtype index, kept for recomputeDerivedState's subtypesOf walk

	workshopMu sync.Mutex
	workshop   map[reflect.Type]*Representation
}

func newRegistry() *Registry {
	return &Registry{
		published: make(map[reflect.Type]*Representation),
		byName:    make(map[string]*Type),
		children:  make(map[*Type][]*Type),
		workshop:  make(map[reflect.Type]*Representation),
	}
}

// find resolves hostClass to its published Representation, or nil.
func (r *Registry) find(hostClass reflect.Type) *Representation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.published[hostClass]
}

// FindByName resolves a published type by its fully-qualified name.
func (r *Registry) FindByName(name string) *Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// reserve stakes a claim on hostClass in the workshop map while a
// TypeFactory session is building the Representation for it. Must be
// called with the factory's global lock held; returns a Clash if another
// in-progress or published Representation already owns hostClass.
func (r *Registry) reserve(spec *TypeSpec, hostClass reflect.Type, rep *Representation) error {
	if existing := r.find(hostClass); existing != nil {
		return &ClashError{Spec: spec, Mode: ClashExisting, Class: hostClass.String(), Existing: existing}
	}
	r.workshopMu.Lock()
	defer r.workshopMu.Unlock()
	if existing, ok := r.workshop[hostClass]; ok {
		return &ClashError{Spec: spec, Mode: ClashExisting, Class: hostClass.String(), Existing: existing}
	}
	r.workshop[hostClass] = rep
	return nil
}

// publish moves every Representation built for a TypeFactory session from
// the workshop into the published map in one atomic step, along with the
// Type(s) that own them, and records each new type's place in the
// bases-to-children index. This is the happens-before edge: nothing a
// reader observes in published was visible before this call returned.
func (r *Registry) publish(types []*Type, reps []*Representation) {
	r.workshopMu.Lock()
	for _, rep := range reps {
		delete(r.workshop, rep.HostClass)
	}
	r.workshopMu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range reps {
		r.published[rep.HostClass] = rep
	}
	for _, t := range types {
		r.byName[t.name] = t
		for _, b := range t.bases {
			r.children[b] = append(r.children[b], t)
		}
	}
}

// subtypesOf returns every registered type that has t in its MRO,
// including t itself, by walking the children index transitively. Used by
// recomputeDerivedState to invalidate caches anywhere a change to t could
// be observed through inheritance.
func (r *Registry) subtypesOf(t *Type) []*Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[*Type]bool{t: true}
	queue := []*Type{t}
	result := []*Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range r.children[cur] {
			if !seen[child] {
				seen[child] = true
				result = append(result, child)
				queue = append(queue, child)
			}
		}
	}
	return result
}
