package instance

import (
	"sync"

	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/scope"
)

// MarkerIndex maps boundary marker nodes to the context list of the instance
// that stamped them, so nested templates anchored at a marker can find their
// ambient contexts without walking back up through instances.
type MarkerIndex struct {
	mu      sync.RWMutex
	entries map[*dom.Node][]scope.Context
}

// DefaultMarkers is the index instances use unless configured otherwise.
var DefaultMarkers = NewMarkerIndex()

// NewMarkerIndex returns an empty index.
func NewMarkerIndex() *MarkerIndex {
	return &MarkerIndex{entries: make(map[*dom.Node][]scope.Context)}
}

// Set records contexts for marker.
func (m *MarkerIndex) Set(marker *dom.Node, contexts []scope.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[marker] = contexts
}

// Lookup returns the contexts recorded for marker.
func (m *MarkerIndex) Lookup(marker *dom.Node) ([]scope.Context, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	contexts, ok := m.entries[marker]
	return contexts, ok
}

// Delete forgets marker.
func (m *MarkerIndex) Delete(marker *dom.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, marker)
}

// Len returns the number of recorded markers.
func (m *MarkerIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Ambient returns the contexts of the nearest recorded marker at or before
// node: node itself, then its preceding siblings from nearest to farthest,
// then the same for each ancestor.
func (m *MarkerIndex) Ambient(node *dom.Node) ([]scope.Context, bool) {
	for cur := node; cur != nil; cur = cur.Parent() {
		if contexts, ok := m.Lookup(cur); ok {
			return contexts, true
		}
		parent := cur.Parent()
		if parent == nil {
			break
		}
		for i := parent.IndexOf(cur) - 1; i >= 0; i-- {
			sibling, _ := parent.ChildAt(i)
			if contexts, ok := m.Lookup(sibling); ok {
				return contexts, true
			}
		}
	}
	return nil, false
}
