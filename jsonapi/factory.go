package jsonapi

import (
	"fmt"
	"sync"
)

// ResourceFactory constructs resource objects and is the single source of
// object identity during a pass. Implementations shared across concurrent
// passes must be internally synchronized; Dispense mutates only the
// pass-local pool it is handed.
type ResourceFactory interface {
	// Instantiate constructs a fresh, unpooled resource of the given type.
	// Used for identity-less relationship stubs where only a URL is known.
	Instantiate(typ string) (*Resource, error)

	// Dispense returns the pooled resource for (typ, id), constructing and
	// pooling a new one if none exists. A non-negative targetIndex hints
	// which externally supplied mapping target the representation should
	// update in place.
	Dispense(typ, id string, pool *ResourcePool, targetIndex int) (*Resource, error)
}

// Registry maps resource type names to their declared field sets and serves
// as the default ResourceFactory. Safe for concurrent use once populated.
type Registry struct {
	mu     sync.RWMutex
	fields map[string][]Field
	strict bool
}

// NewRegistry returns an empty type registry. Unregistered types materialize
// as resources with no declared fields; use NewStrictRegistry to reject them
// instead.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[string][]Field)}
}

// NewStrictRegistry returns a registry whose factory methods fail with
// ErrUnknownResourceType for unregistered types.
func NewStrictRegistry() *Registry {
	return &Registry{fields: make(map[string][]Field), strict: true}
}

// RegisterType declares the field set for a resource type. Registering a
// type twice replaces its field set.
func (r *Registry) RegisterType(name string, fields ...Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[name] = fields
}

// FieldsFor returns the declared field set for a type.
func (r *Registry) FieldsFor(name string) ([]Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields, ok := r.fields[name]
	return fields, ok
}

// Instantiate implements ResourceFactory.
func (r *Registry) Instantiate(typ string) (*Resource, error) {
	fields, ok := r.FieldsFor(typ)
	if !ok && r.strict {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResourceType, typ)
	}
	return &Resource{Type: typ, Fields: fields}, nil
}

// Dispense implements ResourceFactory. Lookup order: an already pooled
// resource for (typ, id); then the hinted mapping target, adopting it and
// assigning the id; then a newly instantiated resource added to the pool.
func (r *Registry) Dispense(typ, id string, pool *ResourcePool, targetIndex int) (*Resource, error) {
	if res, ok := pool.Get(typ, id); ok {
		return res, nil
	}
	if target, ok := pool.Target(targetIndex); ok && target.Type == typ {
		if target.ID == "" || target.ID == id {
			target.ID = id
			return target, nil
		}
	}
	res, err := r.Instantiate(typ)
	if err != nil {
		return nil, err
	}
	res.ID = id
	pool.Add(res)
	return res, nil
}
