package bind

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/scope"
)

var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

func defaultSanitizer() *bluemonday.Policy {
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.UGCPolicy()
	})
	return sanitizer
}

// Applier returns the apply function for a property name:
//
//	text, textContent   replace the node's text
//	html, innerHTML     replace the children with sanitised markup
//	attr:name, name$    set the attribute (nil/false removes it)
//	class:name          toggle a class by truthiness
//	anything else       node property, or component property on mount points
func (f *Factory) Applier(property string) ApplyFunc {
	switch {
	case property == "text" || property == "textContent":
		return func(target Target, _ []scope.Context, _ Mode, value any, _ scope.Context) {
			if target.Node != nil {
				target.Node.SetTextContent(stringify(value))
			}
		}
	case property == "html" || property == "innerHTML":
		policy := f.sanitizer
		logger := f.logger
		return func(target Target, _ []scope.Context, _ Mode, value any, _ scope.Context) {
			if target.Node == nil {
				return
			}
			clean := policy.Sanitize(stringify(value))
			if err := target.Node.SetInnerHTML(clean); err != nil {
				logger.Warn().Err(err).Msg("html binding rejected markup")
			}
		}
	case strings.HasPrefix(property, "attr:") || strings.HasSuffix(property, "$"):
		name := strings.TrimSuffix(strings.TrimPrefix(property, "attr:"), "$")
		return func(target Target, _ []scope.Context, _ Mode, value any, _ scope.Context) {
			if target.Node == nil {
				return
			}
			switch v := value.(type) {
			case nil:
				target.Node.RemoveAttribute(name)
			case bool:
				if v {
					target.Node.SetAttribute(name, "")
				} else {
					target.Node.RemoveAttribute(name)
				}
			default:
				target.Node.SetAttribute(name, stringify(v))
			}
		}
	case strings.HasPrefix(property, "class:"):
		class := strings.TrimPrefix(property, "class:")
		return func(target Target, _ []scope.Context, _ Mode, value any, _ scope.Context) {
			if target.Node != nil {
				toggleClass(target.Node, class, Truthy(value))
			}
		}
	default:
		logger := f.logger
		return func(target Target, _ []scope.Context, _ Mode, value any, _ scope.Context) {
			if target.Context != nil {
				if err := target.Context.Set(property, value); err != nil {
					logger.Warn().Err(err).Str("property", property).Msg("component property write failed")
				}
				return
			}
			if target.Node != nil {
				target.Node.SetProp(property, value)
			}
		}
	}
}

func readNode(node *dom.Node, property string) any {
	switch {
	case property == "text" || property == "textContent":
		return node.TextContent()
	case property == "html" || property == "innerHTML":
		return node.InnerHTML()
	case strings.HasPrefix(property, "attr:") || strings.HasSuffix(property, "$"):
		name := strings.TrimSuffix(strings.TrimPrefix(property, "attr:"), "$")
		value, ok := node.Attribute(name)
		if !ok {
			return nil
		}
		return value
	case strings.HasPrefix(property, "class:"):
		classAttr, _ := node.Attribute("class")
		for _, c := range strings.Fields(classAttr) {
			if c == strings.TrimPrefix(property, "class:") {
				return true
			}
		}
		return false
	default:
		value, _ := node.Prop(property)
		return value
	}
}

func toggleClass(node *dom.Node, class string, on bool) {
	classAttr, _ := node.Attribute("class")
	fields := strings.Fields(classAttr)
	out := fields[:0]
	present := false
	for _, c := range fields {
		if c == class {
			present = true
			if !on {
				continue
			}
		}
		out = append(out, c)
	}
	if on && !present {
		out = append(out, class)
	}
	if len(out) == 0 {
		node.RemoveAttribute("class")
		return
	}
	node.SetAttribute("class", strings.Join(out, " "))
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
