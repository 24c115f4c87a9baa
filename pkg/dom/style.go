package dom

// StyleSheet is a constructible style sheet that can be shared by several
// adoption points without being cloned.
type StyleSheet struct {
	Text string
}

// SupportsAdoption reports whether the node accepts adopted style sheets.
// Only shadow roots and documents created with adoption enabled do.
func (n *Node) SupportsAdoption() bool {
	if n == nil {
		return false
	}
	return (n.Type == ShadowRootNode || n.Type == DocumentNode) && n.adoptable
}

// AdoptedStyleSheets returns a copy of the adopted sheet list.
func (n *Node) AdoptedStyleSheets() []*StyleSheet {
	return append([]*StyleSheet(nil), n.adopted...)
}

// SetAdoptedStyleSheets replaces the adopted sheet list. It reports false when
// the node does not support adoption.
func (n *Node) SetAdoptedStyleSheets(sheets []*StyleSheet) bool {
	if !n.SupportsAdoption() {
		return false
	}
	n.adopted = append([]*StyleSheet(nil), sheets...)
	return true
}
