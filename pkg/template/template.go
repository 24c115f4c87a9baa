// Package template holds the immutable blueprint a TemplateInstance is
// stamped from: the content tree, bind descriptors addressed by node path,
// nested component mount points, and the two hook lists run around insertion.
package template

import (
	"fmt"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/nodepath"
	"github.com/goliatone/go-stamp/pkg/scope"
)

// HookFunc runs against a resolved node with the instance's context list.
type HookFunc func(node *dom.Node, contexts []scope.Context)

// Hook targets a node by path.
type Hook struct {
	Path nodepath.Path
	Fn   HookFunc
}

// Template is shared by every instance of a component definition and never
// changes after construction.
type Template struct {
	content    *dom.Node
	mounts     []nodepath.Path
	binds      []bind.Descriptor
	stamp      []Hook
	afterStamp []Hook
}

// Option configures New.
type Option func(*Template) error

// WithBinds appends descriptors. Each descriptor must carry a path that
// resolves in the content tree.
func WithBinds(descriptors ...bind.Descriptor) Option {
	return func(t *Template) error {
		for _, d := range descriptors {
			if nodepath.Resolve(t.content, d.Path) == nil {
				return fmt.Errorf("template: bind %q path %s does not resolve", d.Property, d.Path)
			}
			if d.Apply == nil {
				return fmt.Errorf("template: bind %q at %s has no apply function", d.Property, d.Path)
			}
			t.binds = append(t.binds, d.Clone())
		}
		return nil
	}
}

// WithMounts declares nested component mount points.
func WithMounts(paths ...nodepath.Path) Option {
	return func(t *Template) error {
		for _, p := range paths {
			node := nodepath.Resolve(t.content, p)
			if node == nil || node.Type != dom.ElementNode {
				return fmt.Errorf("template: mount path %s does not resolve to an element", p)
			}
			t.mounts = append(t.mounts, append(nodepath.Path(nil), p...))
		}
		return nil
	}
}

// WithStampHook adds a hook run against the clone before insertion.
func WithStampHook(path nodepath.Path, fn HookFunc) Option {
	return func(t *Template) error {
		if fn == nil {
			return fmt.Errorf("template: stamp hook at %s is nil", path)
		}
		t.stamp = append(t.stamp, Hook{Path: path, Fn: fn})
		return nil
	}
}

// WithAfterStampHook adds a hook run against the inserted nodes.
func WithAfterStampHook(path nodepath.Path, fn HookFunc) Option {
	return func(t *Template) error {
		if fn == nil {
			return fmt.Errorf("template: after-stamp hook at %s is nil", path)
		}
		t.afterStamp = append(t.afterStamp, Hook{Path: path, Fn: fn})
		return nil
	}
}

// WithMarkers flags comment nodes as template boundary markers.
func WithMarkers(paths ...nodepath.Path) Option {
	return func(t *Template) error {
		for _, p := range paths {
			node := nodepath.Resolve(t.content, p)
			if node == nil || node.Type != dom.CommentNode {
				return fmt.Errorf("template: marker path %s does not resolve to a comment", p)
			}
			node.Marker = true
		}
		return nil
	}
}

// New builds a template over content. content is owned by the template from
// here on; callers must not mutate it.
func New(content *dom.Node, options ...Option) (*Template, error) {
	if content == nil {
		return nil, fmt.Errorf("template: content is required")
	}
	if content.Type != dom.FragmentNode {
		frag := dom.NewFragment()
		frag.AppendChild(content)
		content = frag
	}
	t := &Template{content: content}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Clone returns a fresh deep copy of the content fragment.
func (t *Template) Clone() *dom.Node {
	return t.content.Clone(true)
}

// Mounts returns the nested component mount paths.
func (t *Template) Mounts() []nodepath.Path {
	out := make([]nodepath.Path, len(t.mounts))
	for i, p := range t.mounts {
		out[i] = append(nodepath.Path(nil), p...)
	}
	return out
}

// Binds returns copies of the bind descriptors in declaration order.
func (t *Template) Binds() []bind.Descriptor {
	out := make([]bind.Descriptor, len(t.binds))
	for i, d := range t.binds {
		out[i] = d.Clone()
	}
	return out
}

// StampHooks returns the hooks run before insertion.
func (t *Template) StampHooks() []Hook {
	return append([]Hook(nil), t.stamp...)
}

// AfterStampHooks returns the hooks run after insertion.
func (t *Template) AfterStampHooks() []Hook {
	return append([]Hook(nil), t.afterStamp...)
}
