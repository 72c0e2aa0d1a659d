package jsonapi

// ResourcePool is the working set of resource objects accumulated during one
// deserialization pass. It is seeded with externally supplied mapping targets
// and grown by factory dispensing. A pool belongs to a single pass and is not
// safe for concurrent use.
type ResourcePool struct {
	resources []*Resource
	targets   []*Resource
}

func newResourcePool() *ResourcePool {
	return &ResourcePool{}
}

// Seed adds mapping targets to the pool before a pass runs. Target order is
// significant: the mapping-target index passed during extraction refers to it.
func (p *ResourcePool) Seed(targets ...*Resource) {
	for _, t := range targets {
		if t == nil {
			continue
		}
		p.targets = append(p.targets, t)
		p.resources = append(p.resources, t)
	}
}

// Add appends a freshly dispensed resource to the pool.
func (p *ResourcePool) Add(r *Resource) {
	p.resources = append(p.resources, r)
}

// Get returns the pooled resource for (typ, id), scanning in insertion order.
func (p *ResourcePool) Get(typ, id string) (*Resource, bool) {
	for _, r := range p.resources {
		if r.Type == typ && r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Target returns the mapping target at the given index, if any.
func (p *ResourcePool) Target(index int) (*Resource, bool) {
	if index < 0 || index >= len(p.targets) {
		return nil, false
	}
	return p.targets[index], true
}

// All returns the pooled resources in insertion order. The returned slice is
// the pool's own backing; callers must not mutate it.
func (p *ResourcePool) All() []*Resource {
	return p.resources
}

// Len returns the number of pooled resources.
func (p *ResourcePool) Len() int {
	return len(p.resources)
}
