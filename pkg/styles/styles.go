// Package styles attaches component styles to a render root, adopting a
// shared sheet where the host supports it and appending a <style> element
// where it does not.
package styles

import (
	"github.com/goliatone/go-stamp/pkg/dom"
)

// Style is the style object a component definition declares. Exactly one of
// Sheet and Element is set.
type Style struct {
	Sheet   *dom.StyleSheet
	Element *dom.Node
}

// CSS builds a Style from text. adoptable selects a constructible sheet,
// shared by every root it is adopted into; otherwise the style is a <style>
// element cloned into each root.
func CSS(text string, adoptable bool) Style {
	if adoptable {
		return Style{Sheet: &dom.StyleSheet{Text: text}}
	}
	el := dom.NewElement("style")
	el.SetTextContent(text)
	return Style{Element: el}
}

// IsZero reports whether s carries no style.
func (s Style) IsZero() bool {
	return s.Sheet == nil && s.Element == nil
}

// Text returns the style source.
func (s Style) Text() string {
	switch {
	case s.Sheet != nil:
		return s.Sheet.Text
	case s.Element != nil:
		return s.Element.TextContent()
	}
	return ""
}

// Attach applies s to root. A sheet is adopted by root, or by root's root
// node when root itself cannot adopt; a sheet already adopted there is not
// added twice. When neither can adopt, or s is an element style, a fresh
// <style> element is appended to root and returned so the caller can remove
// it again. Adoption returns nil.
func Attach(root *dom.Node, s Style) *dom.Node {
	if root == nil || s.IsZero() {
		return nil
	}
	if s.Sheet != nil {
		for _, point := range []*dom.Node{root, root.GetRootNode()} {
			if point.SupportsAdoption() {
				adopt(point, s.Sheet)
				return nil
			}
		}
		el := dom.NewElement("style")
		el.SetTextContent(s.Sheet.Text)
		root.AppendChild(el)
		return el
	}
	el := s.Element.Clone(true)
	root.AppendChild(el)
	return el
}

func adopt(point *dom.Node, sheet *dom.StyleSheet) {
	sheets := point.AdoptedStyleSheets()
	for _, existing := range sheets {
		if existing == sheet {
			return
		}
	}
	point.SetAdoptedStyleSheets(append(sheets, sheet))
}
