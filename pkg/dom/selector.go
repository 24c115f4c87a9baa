package dom

import (
	"fmt"
	"strings"
)

// Selector is a compiled selector list. Supported syntax: type selectors,
// `*`, `#id`, `.class`, `[attr]`, `[attr=value]`, the descendant combinator
// (whitespace) and comma separated alternatives.
type Selector struct {
	alternatives [][]compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// CompileSelector parses a selector string.
func CompileSelector(raw string) (Selector, error) {
	var sel Selector
	for _, part := range strings.Split(raw, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return Selector{}, fmt.Errorf("dom: empty selector in %q", raw)
		}
		chain := make([]compound, 0, len(fields))
		for _, field := range fields {
			c, err := parseCompound(field)
			if err != nil {
				return Selector{}, err
			}
			chain = append(chain, c)
		}
		sel.alternatives = append(sel.alternatives, chain)
	}
	return sel, nil
}

func parseCompound(raw string) (compound, error) {
	var c compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(raw) {
			ch := raw[i]
			if ch == '#' || ch == '.' || ch == '[' {
				break
			}
			i++
		}
		return raw[start:i]
	}

	if i < len(raw) && raw[i] != '#' && raw[i] != '.' && raw[i] != '[' {
		tag := readIdent()
		if tag != "*" {
			c.tag = strings.ToLower(tag)
		}
	}
	for i < len(raw) {
		switch raw[i] {
		case '#':
			i++
			id := readIdent()
			if id == "" {
				return compound{}, fmt.Errorf("dom: empty id in selector %q", raw)
			}
			c.id = id
		case '.':
			i++
			class := readIdent()
			if class == "" {
				return compound{}, fmt.Errorf("dom: empty class in selector %q", raw)
			}
			c.classes = append(c.classes, class)
		case '[':
			end := strings.IndexByte(raw[i:], ']')
			if end < 0 {
				return compound{}, fmt.Errorf("dom: unterminated attribute selector %q", raw)
			}
			body := raw[i+1 : i+end]
			i += end + 1
			name, value, hasValue := strings.Cut(body, "=")
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				return compound{}, fmt.Errorf("dom: empty attribute name in selector %q", raw)
			}
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			c.attrs = append(c.attrs, attrMatch{name: name, value: value, hasValue: hasValue})
		default:
			return compound{}, fmt.Errorf("dom: unexpected %q in selector %q", raw[i], raw)
		}
	}
	return c, nil
}

func (c compound) matches(n *Node) bool {
	if n.Type != ElementNode {
		return false
	}
	if c.tag != "" && c.tag != n.Tag {
		return false
	}
	if c.id != "" {
		if id, _ := n.Attribute("id"); id != c.id {
			return false
		}
	}
	if len(c.classes) > 0 {
		classAttr, _ := n.Attribute("class")
		have := strings.Fields(classAttr)
		for _, want := range c.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, am := range c.attrs {
		value, ok := n.Attribute(am.name)
		if !ok || (am.hasValue && value != am.value) {
			return false
		}
	}
	return true
}

// Match reports whether n satisfies the selector.
func (s Selector) Match(n *Node) bool {
	for _, chain := range s.alternatives {
		if matchChain(chain, n) {
			return true
		}
	}
	return false
}

func matchChain(chain []compound, n *Node) bool {
	last := len(chain) - 1
	if !chain[last].matches(n) {
		return false
	}
	idx := last - 1
	for cur := n.parent; cur != nil && idx >= 0; cur = cur.parent {
		if chain[idx].matches(cur) {
			idx--
		}
	}
	return idx < 0
}

// QuerySelector returns the first descendant of n matching raw, or nil when
// nothing matches or the selector is malformed.
func (n *Node) QuerySelector(raw string) *Node {
	sel, err := CompileSelector(raw)
	if err != nil {
		return nil
	}
	return QueryIn(sel, n.ChildNodes())
}

// QuerySelectorAll returns every descendant of n matching raw.
func (n *Node) QuerySelectorAll(raw string) []*Node {
	sel, err := CompileSelector(raw)
	if err != nil {
		return nil
	}
	var out []*Node
	Walk(n, func(node *Node) bool {
		if sel.Match(node) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// QueryIn searches each node in nodes and their descendants in document
// order and returns the first match.
func QueryIn(sel Selector, nodes []*Node) *Node {
	for _, node := range nodes {
		if sel.Match(node) {
			return node
		}
		var found *Node
		Walk(node, func(child *Node) bool {
			if found != nil {
				return false
			}
			if sel.Match(child) {
				found = child
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
