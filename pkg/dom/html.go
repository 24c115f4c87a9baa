package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup in a body context and returns a fragment
// holding the resulting nodes.
func ParseFragment(markup string) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	frag := NewFragment()
	for _, hn := range parsed {
		if node := fromHTML(hn); node != nil {
			frag.AppendChild(node)
		}
	}
	return frag, nil
}

// SetInnerHTML replaces the children of n with the parsed markup. Callers are
// responsible for sanitising untrusted input first.
func (n *Node) SetInnerHTML(markup string) error {
	frag, err := ParseFragment(markup)
	if err != nil {
		return err
	}
	n.removeAll()
	return n.AppendChild(frag)
}

// InnerHTML renders the children of n.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	for _, child := range n.children {
		_ = renderNode(&buf, child)
	}
	return buf.String()
}

// Render writes n as HTML. Fragments, documents and shadow roots render their
// children; elements with a shadow root emit it as a declarative
// `<template shadowrootmode="open">` first child.
func Render(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	switch n.Type {
	case FragmentNode, DocumentNode, ShadowRootNode:
		for _, child := range n.children {
			if err := renderNode(w, child); err != nil {
				return err
			}
		}
		return nil
	}
	return renderNode(w, n)
}

// RenderString is Render into a string.
func RenderString(n *Node) string {
	var buf bytes.Buffer
	_ = Render(&buf, n)
	return buf.String()
}

func renderNode(w io.Writer, n *Node) error {
	hn := toHTML(n)
	if hn == nil {
		return nil
	}
	if err := html.Render(w, hn); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

func fromHTML(hn *html.Node) *Node {
	var out *Node
	switch hn.Type {
	case html.ElementNode:
		out = NewElement(hn.Data)
		for _, attr := range hn.Attr {
			name := attr.Key
			if attr.Namespace != "" {
				name = attr.Namespace + ":" + attr.Key
			}
			out.SetAttribute(name, attr.Val)
		}
	case html.TextNode:
		return NewText(hn.Data)
	case html.CommentNode:
		return NewComment(hn.Data)
	default:
		return nil
	}
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		if child := fromHTML(c); child != nil {
			out.AppendChild(child)
		}
	}
	return out
}

func toHTML(n *Node) *html.Node {
	switch n.Type {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.Data}
	case ElementNode:
		hn := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
		for _, attr := range n.attrs {
			hn.Attr = append(hn.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
		}
		if n.shadow != nil {
			tpl := &html.Node{
				Type:     html.ElementNode,
				Data:     "template",
				DataAtom: atom.Template,
				Attr:     []html.Attribute{{Key: "shadowrootmode", Val: "open"}},
			}
			appendHTMLChildren(tpl, n.shadow)
			hn.AppendChild(tpl)
		}
		appendHTMLChildren(hn, n)
		return hn
	default:
		return nil
	}
}

func appendHTMLChildren(dst *html.Node, src *Node) {
	for _, child := range src.children {
		if c := toHTML(child); c != nil {
			dst.AppendChild(c)
		}
	}
}
