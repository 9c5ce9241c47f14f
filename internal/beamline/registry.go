package beamline

import "sort"

// ElementRegistry is the single owning collection of every distinct entity
// created during model construction. It is append-only and insertion-ordered,
// and deduplicates by identity: adding the same entity pointer twice is a
// silent no-op, so shared component definitions referenced by several
// occurrences are counted once.
type ElementRegistry struct {
	entities []ModelEntity
	seen     map[ModelEntity]struct{}
}

// NewElementRegistry creates an empty registry.
func NewElementRegistry() *ElementRegistry {
	return &ElementRegistry{seen: make(map[ModelEntity]struct{})}
}

// Add registers e, returning true if it was newly added and false if the
// entity was already present.
func (r *ElementRegistry) Add(e ModelEntity) bool {
	if e == nil {
		return false
	}
	if _, ok := r.seen[e]; ok {
		return false
	}
	r.seen[e] = struct{}{}
	r.entities = append(r.entities, e)
	return true
}

// Contains reports whether e has been registered.
func (r *ElementRegistry) Contains(e ModelEntity) bool {
	_, ok := r.seen[e]
	return ok
}

// Size returns the number of distinct registered entities.
func (r *ElementRegistry) Size() int { return len(r.entities) }

// Each calls fn for every registered entity in insertion order.
func (r *ElementRegistry) Each(fn func(ModelEntity)) {
	for _, e := range r.entities {
		fn(e)
	}
}

// CountByType returns the number of registered entities per type tag.
func (r *ElementRegistry) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.entities {
		counts[e.Type()]++
	}
	return counts
}

// Types returns the registered type tags in sorted order, for deterministic
// statistics output.
func (r *ElementRegistry) Types() []string {
	counts := r.CountByType()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
