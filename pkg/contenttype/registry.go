package contenttype

import (
	"sort"
	"sync"
)

// Registry is an explicit lookup table of registered content types keyed by
// slug. Factories are added by Register when created WithRegistry.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Factory)}
}

// Add records f under its slug, replacing any previous entry
func (r *Registry) Add(f *Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[f.Slug()] = f
}

// Get returns the factory registered under slug
func (r *Registry) Get(slug string) (*Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.types[slug]
	return f, ok
}

// Slugs returns the registered slugs in sorted order
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.types))
	for slug := range r.types {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// All returns the registered factories ordered by slug
func (r *Registry) All() []*Factory {
	slugs := r.Slugs()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Factory, 0, len(slugs))
	for _, slug := range slugs {
		if f, ok := r.types[slug]; ok {
			out = append(out, f)
		}
	}
	return out
}
