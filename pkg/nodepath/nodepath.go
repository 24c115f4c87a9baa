// Package nodepath addresses nodes structurally. A Path is captured once
// against a template's original tree and resolved against any clone with the
// same shape, so it never depends on node identity.
package nodepath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-stamp/pkg/dom"
)

// Path is a sequence of child indexes walked from a root.
type Path []int

// Capture records the path from root down to node. It reports false when
// node is not a descendant of root.
func Capture(root, node *dom.Node) (Path, bool) {
	if root == nil || node == nil || node == root {
		return nil, false
	}
	var reversed []int
	for cur := node; cur != root; cur = cur.Parent() {
		parent := cur.Parent()
		if parent == nil {
			return nil, false
		}
		reversed = append(reversed, parent.IndexOf(cur))
	}
	out := make(Path, len(reversed))
	for i, idx := range reversed {
		out[len(reversed)-1-i] = idx
	}
	return out, true
}

// Resolve walks p from root. It returns nil when any step is out of range.
func Resolve(root *dom.Node, p Path) *dom.Node {
	if root == nil || len(p) == 0 {
		return nil
	}
	cur := root
	for _, idx := range p {
		next, ok := cur.ChildAt(idx)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// ResolveIn walks p from a retained child list, the first step indexing into
// nodes. It resolves the same node Resolve would have found under the
// original parent, even after the nodes moved into another tree.
func ResolveIn(nodes []*dom.Node, p Path) *dom.Node {
	if len(p) == 0 || p[0] < 0 || p[0] >= len(nodes) {
		return nil
	}
	if len(p) == 1 {
		return nodes[p[0]]
	}
	return Resolve(nodes[p[0]], p[1:])
}

// String renders the path as dot separated indexes, e.g. "0.2.1".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether both paths address the same position.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Parse reads the dotted form produced by String.
func Parse(raw string) (Path, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("nodepath: empty path")
	}
	parts := strings.Split(trimmed, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("nodepath: invalid step %q in %q: %w", part, raw, err)
		}
		if idx < 0 {
			return nil, fmt.Errorf("nodepath: negative step %d in %q", idx, raw)
		}
		out = append(out, idx)
	}
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so paths can be read from
// YAML and TOML documents in their dotted form.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
