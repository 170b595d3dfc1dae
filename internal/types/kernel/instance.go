package kernel

import (
	"sync"

	"github.com/ATSOTECK/pytypecore/internal/types"
)

// Instance is the canonical host class for a SimpleType built purely to
// exercise the core: it is its own representation (type(x) is resolved
// through the Registry rather than an instance-carried pointer, unlike
// sharedInstance's Shared representation) and carries an instance dict and
// nothing else. A Python-level class built over Instance gets `__dict__`
// attribute storage and descriptor dispatch for free, with no built-in
// arithmetic, formatting, or container behaviour baked in.
type Instance struct {
	mu   sync.RWMutex
	dict map[string]types.Value
}

// NewInstance constructs a fresh, empty Instance.
func NewInstance() *Instance {
	return &Instance{dict: make(map[string]types.Value)}
}

func (i *Instance) InstanceDict() map[string]types.Value {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.dict
}

var _ types.WithDict = (*Instance)(nil)
