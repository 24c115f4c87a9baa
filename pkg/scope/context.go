package scope

import (
	"errors"
	"strings"
)

// Kind tags the closed set of context implementations.
type Kind int

const (
	KindModel Kind = iota
	KindStatic
)

// ErrReadOnly is returned when writing to a Static context.
var ErrReadOnly = errors.New("scope: context is read-only")

// Context is the capability set the binding engine needs from a data
// context.
type Context interface {
	// Kind identifies the concrete context kind.
	Kind() Kind
	// HasProp reports whether the context exposes the root property name.
	HasProp(name string) bool
	// Get resolves a dotted property path.
	Get(path string) (any, bool)
	// Set writes a dotted property path and notifies subscribed effects.
	Set(path string, value any) error
	// AddEffect subscribes e to changes of path.
	AddEffect(path string, e *Effect)
	// RemoveEffect removes the exact registration of e under path.
	RemoveEffect(path string, e *Effect) bool
	// Effects exposes the context's registry.
	Effects() *Registry

	sealed()
}

// Func is a callable a context exposes to function-call bindings and
// observers. receiver is the context that exposed the function.
type Func func(receiver Context, args ...any) (any, error)

// RootSegment returns the first segment of a dotted path.
func RootSegment(path string) string {
	root, _, _ := strings.Cut(strings.TrimSpace(path), ".")
	return root
}

// Find returns the first context in contexts exposing the root segment of
// path.
func Find(contexts []Context, path string) (Context, bool) {
	root := RootSegment(path)
	if root == "" {
		return nil, false
	}
	for _, ctx := range contexts {
		if ctx != nil && ctx.HasProp(root) {
			return ctx, true
		}
	}
	return nil, false
}

// Subscribe registers e under path on the first context exposing it and
// returns that context as the initiator. It returns nil when no context
// exposes the property; nothing is registered in that case.
func Subscribe(contexts []Context, path string, e *Effect) Context {
	ctx, ok := Find(contexts, path)
	if !ok {
		return nil
	}
	ctx.AddEffect(path, e)
	return ctx
}
