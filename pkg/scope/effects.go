package scope

import (
	"sort"
	"strings"
)

// Effect is a subscription handle. Registries compare effects by pointer so
// removal excises the exact registration.
type Effect struct {
	fn func(changed string)
}

// NewEffect wraps fn. fn receives the path that was written, not the value;
// effects re-read whatever they depend on.
func NewEffect(fn func(changed string)) *Effect {
	return &Effect{fn: fn}
}

// Run invokes the effect.
func (e *Effect) Run(changed string) {
	if e == nil || e.fn == nil {
		return
	}
	e.fn(changed)
}

// Registry maps property paths to ordered effect lists. A (path, effect)
// pair appears at most once.
type Registry struct {
	entries map[string][]*Effect
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]*Effect)}
}

// Add appends e under path. It reports false when the pair already exists.
func (r *Registry) Add(path string, e *Effect) bool {
	if e == nil || path == "" {
		return false
	}
	if r.entries == nil {
		r.entries = make(map[string][]*Effect)
	}
	for _, existing := range r.entries[path] {
		if existing == e {
			return false
		}
	}
	r.entries[path] = append(r.entries[path], e)
	return true
}

// Remove deletes the registration of e under path.
func (r *Registry) Remove(path string, e *Effect) bool {
	list := r.entries[path]
	for i, existing := range list {
		if existing != e {
			continue
		}
		next := make([]*Effect, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(r.entries, path)
		} else {
			r.entries[path] = next
		}
		return true
	}
	return false
}

// Has reports whether e is registered under path.
func (r *Registry) Has(path string, e *Effect) bool {
	for _, existing := range r.entries[path] {
		if existing == e {
			return true
		}
	}
	return false
}

// Len returns the number of effects registered under path.
func (r *Registry) Len(path string) int {
	return len(r.entries[path])
}

// Total returns the number of registrations across all paths.
func (r *Registry) Total() int {
	total := 0
	for _, list := range r.entries {
		total += len(list)
	}
	return total
}

// Paths returns the registered paths in lexical order.
func (r *Registry) Paths() []string {
	out := make([]string, 0, len(r.entries))
	for path := range r.entries {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Trigger runs the effects affected by a write to path: those under path
// itself, then those under descendant paths in lexical order, then those
// under ancestor paths from nearest to farthest. Each list runs in
// registration order against a snapshot, so effects may subscribe or
// unsubscribe while running. An effect registered under several affected
// paths runs once.
func (r *Registry) Trigger(path string) {
	for _, e := range r.affected(path) {
		e.Run(path)
	}
}

func (r *Registry) affected(path string) []*Effect {
	var out []*Effect
	seen := make(map[*Effect]struct{})
	collect := func(list []*Effect) {
		for _, e := range list {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	collect(r.entries[path])

	prefix := path + "."
	var descendants []string
	for key := range r.entries {
		if strings.HasPrefix(key, prefix) {
			descendants = append(descendants, key)
		}
	}
	sort.Strings(descendants)
	for _, key := range descendants {
		collect(r.entries[key])
	}

	for parent := path; ; {
		idx := strings.LastIndexByte(parent, '.')
		if idx < 0 {
			break
		}
		parent = parent[:idx]
		collect(r.entries[parent])
	}
	return out
}
