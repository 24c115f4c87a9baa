package dom

// Walk visits the descendants of root in document order, excluding root
// itself. Returning false from visit skips the node's subtree.
func Walk(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	for _, child := range root.ChildNodes() {
		if visit(child) {
			Walk(child, visit)
		}
	}
}

// Markers returns the template boundary markers under root in document order.
func Markers(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Type == CommentNode && n.Marker {
			out = append(out, n)
		}
		return true
	})
	return out
}
