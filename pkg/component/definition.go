package component

import (
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/signature"
	"github.com/goliatone/go-stamp/pkg/styles"
	"github.com/goliatone/go-stamp/pkg/template"
)

// Definition describes a component type. Every controller created from it
// shares the Template and CSS.
type Definition struct {
	// Name is the tag the component is registered under. It must contain a
	// hyphen.
	Name     string
	Template *template.Template
	// Observers are watch signatures such as `total(items, tax)`. They are
	// parsed when the definition is registered.
	Observers []string
	CSS       styles.Style
	// Props seeds each controller's model. Nested maps and slices are copied
	// per controller.
	Props   map[string]any
	Methods map[string]scope.Func
	Config  Config

	calls []signature.Call
}

func (d Definition) clone() Definition {
	out := d
	out.Observers = append([]string(nil), d.Observers...)
	out.calls = append([]signature.Call(nil), d.calls...)
	if d.Methods != nil {
		out.Methods = make(map[string]scope.Func, len(d.Methods))
		for name, fn := range d.Methods {
			out.Methods[name] = fn
		}
	}
	if d.Props != nil {
		out.Props = copyMap(d.Props)
	}
	return out
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
