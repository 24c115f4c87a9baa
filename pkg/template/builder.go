package template

import (
	"fmt"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/nodepath"
)

// Builder assembles a template from markup, addressing nodes by selector and
// capturing their paths against the parsed tree.
type Builder struct {
	content *dom.Node
	factory *bind.Factory
	options []Option
	err     error
}

// NewBuilder parses markup. A nil factory uses bind.NewFactory().
func NewBuilder(markup string, factory *bind.Factory) *Builder {
	if factory == nil {
		factory = bind.NewFactory()
	}
	b := &Builder{factory: factory}
	b.content, b.err = dom.ParseFragment(markup)
	return b
}

// Content exposes the parsed tree so callers can capture paths manually.
func (b *Builder) Content() *dom.Node {
	return b.content
}

func (b *Builder) locate(selector string) (nodepath.Path, bool) {
	if b.err != nil {
		return nil, false
	}
	sel, err := dom.CompileSelector(selector)
	if err != nil {
		b.err = fmt.Errorf("template: %w", err)
		return nil, false
	}
	node := dom.QueryIn(sel, b.content.ChildNodes())
	if node == nil {
		b.err = fmt.Errorf("template: selector %q matches nothing", selector)
		return nil, false
	}
	p, _ := nodepath.Capture(b.content, node)
	return p, true
}

// Bind adds a binding on the first node matching selector.
func (b *Builder) Bind(selector, property, value string) *Builder {
	p, ok := b.locate(selector)
	if !ok {
		return b
	}
	return b.BindPath(p, property, value)
}

// BindPath adds a binding on the node at p.
func (b *Builder) BindPath(p nodepath.Path, property, value string) *Builder {
	if b.err != nil {
		return b
	}
	d, err := b.factory.Create(property, value)
	if err != nil {
		b.err = fmt.Errorf("template: bind %s at %s: %w", property, p, err)
		return b
	}
	d.Path = p
	b.options = append(b.options, WithBinds(d))
	return b
}

// Mount declares the first node matching selector as a component mount point.
func (b *Builder) Mount(selector string) *Builder {
	if p, ok := b.locate(selector); ok {
		b.options = append(b.options, WithMounts(p))
	}
	return b
}

// Marker flags the comment at p as a boundary marker.
func (b *Builder) Marker(p nodepath.Path) *Builder {
	b.options = append(b.options, WithMarkers(p))
	return b
}

// StampHook adds a pre-insertion hook on the first node matching selector.
func (b *Builder) StampHook(selector string, fn HookFunc) *Builder {
	if p, ok := b.locate(selector); ok {
		b.options = append(b.options, WithStampHook(p, fn))
	}
	return b
}

// AfterStampHook adds a post-insertion hook on the first node matching
// selector.
func (b *Builder) AfterStampHook(selector string, fn HookFunc) *Builder {
	if p, ok := b.locate(selector); ok {
		b.options = append(b.options, WithAfterStampHook(p, fn))
	}
	return b
}

// Build returns the template or the first error recorded while building.
func (b *Builder) Build() (*Template, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.content, b.options...)
}

// MustBuild panics when Build fails. Useful for package-level definitions.
func (b *Builder) MustBuild() *Template {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
