package dom

// AppendChild appends child to n, detaching it from any previous parent.
// Appending a fragment moves the fragment's children instead.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child immediately before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) error {
	if child == nil {
		return nil
	}
	if ref != nil && ref.parent != n {
		return ErrNotChild
	}
	if child.Type == DocumentNode || child.Type == ShadowRootNode {
		return ErrHierarchy
	}
	if child.Contains(n) {
		return ErrHierarchy
	}

	var moving []*Node
	if child.Type == FragmentNode {
		moving = child.children
		child.children = nil
		for _, c := range moving {
			c.parent = nil
		}
	} else {
		if child == ref {
			return nil
		}
		child.Remove()
		moving = []*Node{child}
	}
	if len(moving) == 0 {
		return nil
	}

	idx := len(n.children)
	if ref != nil {
		idx = n.IndexOf(ref)
	}
	next := make([]*Node, 0, len(n.children)+len(moving))
	next = append(next, n.children[:idx]...)
	next = append(next, moving...)
	next = append(next, n.children[idx:]...)
	n.children = next
	for _, c := range moving {
		c.parent = n
	}
	return nil
}

// RemoveChild removes child from n. It reports false when child is not a
// child of n.
func (n *Node) RemoveChild(child *Node) bool {
	idx := n.IndexOf(child)
	if idx < 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	child.parent = nil
	return true
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	if n == nil || n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

func (n *Node) removeAll() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// ShadowInit configures AttachShadow.
type ShadowInit struct {
	DelegatesFocus bool
}

// AttachShadow creates an isolated render scope for an element. Calling it
// twice returns the existing root.
func (n *Node) AttachShadow(init ShadowInit) *Node {
	if n.shadow != nil {
		return n.shadow
	}
	root := &Node{
		Type:           ShadowRootNode,
		host:           n,
		delegatesFocus: init.DelegatesFocus,
		adoptable:      true,
	}
	n.shadow = root
	return root
}

// ShadowRoot returns the element's shadow root, if any.
func (n *Node) ShadowRoot() *Node {
	return n.shadow
}

// Host returns the element hosting a shadow root.
func (n *Node) Host() *Node {
	return n.host
}

// DelegatesFocus reports the flag the shadow root was created with.
func (n *Node) DelegatesFocus() bool {
	return n.delegatesFocus
}
