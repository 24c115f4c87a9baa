package dom

import (
	"errors"
	"strings"
)

// NodeType identifies the kind of a Node.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
	FragmentNode
	ShadowRootNode
	DocumentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case FragmentNode:
		return "fragment"
	case ShadowRootNode:
		return "shadow-root"
	case DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}

// ErrNotChild is returned by InsertBefore when the reference node is not a
// child of the receiver.
var ErrNotChild = errors.New("dom: reference node is not a child")

// ErrHierarchy is returned when an insertion would make a node its own
// ancestor or place a document/shadow root inside another tree.
var ErrHierarchy = errors.New("dom: invalid hierarchy")

// Attr is a single element attribute. Order of insertion is preserved.
type Attr struct {
	Name  string
	Value string
}

// Node is a vertex of the render tree.
type Node struct {
	Type NodeType
	// Tag is the lower-cased element name for element nodes.
	Tag string
	// Data holds text or comment content.
	Data string
	// Marker flags comment nodes that delimit a nested template boundary.
	Marker bool

	parent    *Node
	children  []*Node
	attrs     []Attr
	props     map[string]any
	listeners map[string][]*Listener

	shadow         *Node
	host           *Node
	delegatesFocus bool

	adoptable bool
	adopted   []*StyleSheet
}

// NewElement returns a detached element node.
func NewElement(tag string) *Node {
	return &Node{Type: ElementNode, Tag: strings.ToLower(strings.TrimSpace(tag))}
}

// NewText returns a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment returns a detached comment node.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// NewMarker returns a comment node flagged as a template boundary marker.
func NewMarker(data string) *Node {
	return &Node{Type: CommentNode, Data: data, Marker: true}
}

// NewFragment returns an empty document fragment. Appending a fragment moves
// its children, leaving the fragment empty.
func NewFragment() *Node {
	return &Node{Type: FragmentNode}
}

// NewDocument returns a document root. adoptable reports whether the host
// supports constructible style-sheet adoption at the document level.
func NewDocument(adoptable bool) *Node {
	return &Node{Type: DocumentNode, adoptable: adoptable}
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// ChildNodes returns a snapshot of the node's children.
func (n *Node) ChildNodes() []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return append([]*Node(nil), n.children...)
}

// ChildAt returns the child at index i.
func (n *Node) ChildAt(i int) (*Node, bool) {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// IndexOf returns the index of child within n, or -1.
func (n *Node) IndexOf(child *Node) int {
	if n == nil {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Attribute returns the named attribute value.
func (n *Node) Attribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, attr := range n.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttribute creates or replaces an attribute.
func (n *Node) SetAttribute(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	for i, attr := range n.attrs {
		if attr.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute deletes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, attr := range n.attrs {
		if attr.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the attribute list.
func (n *Node) Attrs() []Attr {
	return append([]Attr(nil), n.attrs...)
}

// Prop returns a node property. Properties are host-side state that is not
// reflected into markup (value, checked, arbitrary component inputs).
func (n *Node) Prop(name string) (any, bool) {
	if n == nil || n.props == nil {
		return nil, false
	}
	value, ok := n.props[name]
	return value, ok
}

// SetProp assigns a node property.
func (n *Node) SetProp(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
}

// TextContent concatenates the data of all descendant text nodes.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode, CommentNode:
		return n.Data
	}
	var b strings.Builder
	Walk(n, func(node *Node) bool {
		if node.Type == TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}

// SetTextContent replaces the children with a single text node. For text and
// comment nodes the data is replaced in place.
func (n *Node) SetTextContent(text string) {
	switch n.Type {
	case TextNode, CommentNode:
		n.Data = text
		return
	}
	n.removeAll()
	if text != "" {
		n.AppendChild(NewText(text))
	}
}

// Clone copies the node. Deep clones copy the subtree. Listeners, parent
// links and shadow roots are never copied.
func (n *Node) Clone(deep bool) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Type:      n.Type,
		Tag:       n.Tag,
		Data:      n.Data,
		Marker:    n.Marker,
		adoptable: n.adoptable,
	}
	if len(n.attrs) > 0 {
		out.attrs = append([]Attr(nil), n.attrs...)
	}
	if len(n.props) > 0 {
		out.props = make(map[string]any, len(n.props))
		for k, v := range n.props {
			out.props[k] = v
		}
	}
	if deep {
		for _, child := range n.children {
			c := child.Clone(true)
			c.parent = out
			out.children = append(out.children, c)
		}
	}
	return out
}

// GetRootNode returns the topmost ancestor. Shadow roots terminate the walk.
func (n *Node) GetRootNode() *Node {
	cur := n
	for cur != nil && cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Connected reports whether the node is attached to a document, crossing
// shadow boundaries through their hosts.
func (n *Node) Connected() bool {
	root := n.GetRootNode()
	for root != nil {
		switch root.Type {
		case DocumentNode:
			return true
		case ShadowRootNode:
			if root.host == nil {
				return false
			}
			root = root.host.GetRootNode()
		default:
			return false
		}
	}
	return false
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}
