package ai

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps provider ids to dialects. It is the lookup table the client
// dispatches on; registration normally happens once at startup, but lookups
// are safe to run concurrently with late registrations.
type Registry struct {
	mu       sync.RWMutex
	dialects map[ProviderID]Dialect
}

// NewRegistry returns a registry holding the given dialects.
func NewRegistry(dialects ...Dialect) *Registry {
	registry := &Registry{dialects: make(map[ProviderID]Dialect, len(dialects))}
	for _, dialect := range dialects {
		registry.Register(dialect)
	}
	return registry
}

// Register adds or replaces the dialect for dialect.ID().
func (r *Registry) Register(dialect Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialects[dialect.ID()] = dialect
}

// Lookup returns the dialect registered under id.
func (r *Registry) Lookup(id ProviderID) (Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dialect, ok := r.dialects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}
	return dialect, nil
}

// IDs returns the registered provider ids in lexical order.
func (r *Registry) IDs() []ProviderID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ProviderID, 0, len(r.dialects))
	for id := range r.dialects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
