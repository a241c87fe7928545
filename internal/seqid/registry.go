package seqid

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the kinds the store is allowed to build sequence queries
// for. Collection and field names come from here, never from request input.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Kind),
	}
}

// DefaultRegistry returns a registry holding every known kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range []Kind{User, Food, Order, DeliveryPerson, DeliveryAssignment, Review, ContactMessage} {
		r.Register(k)
	}
	return r
}

// Register adds k under its name, replacing any previous entry.
func (r *Registry) Register(k Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[k.Name] = k
}

// Lookup returns the registered kind with the given name.
func (r *Registry) Lookup(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kinds[name]
	if !ok {
		return Kind{}, fmt.Errorf("kind %q is not registered", name)
	}
	return k, nil
}

// Verify reports an error unless k matches its registered definition exactly.
func (r *Registry) Verify(k Kind) error {
	registered, err := r.Lookup(k.Name)
	if err != nil {
		return err
	}
	if registered != k {
		return fmt.Errorf("kind %q does not match its registration", k.Name)
	}
	return nil
}

// List returns all registered kinds sorted by name.
func (r *Registry) List() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Name < kinds[j].Name
	})
	return kinds
}
