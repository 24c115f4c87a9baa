package bind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/signature"
)

// Expression is a parsed binding value.
type Expression struct {
	Depend []Token
	// Call is set for `fn(...)` values, including calls without arguments.
	Call   bool
	Negate bool
	TwoWay bool
}

// ParseValue parses a binding value. `[[expr]]` binds one way and `{{expr}}`
// two ways; a leading `!` inside the brackets negates. Values without
// brackets are constants. The boolean result reports whether raw was a
// binding at all.
func ParseValue(raw string) (Expression, bool, error) {
	trimmed := strings.TrimSpace(raw)
	var inner string
	var twoWay bool
	switch {
	case strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]]") && len(trimmed) >= 4:
		inner = trimmed[2 : len(trimmed)-2]
	case strings.HasPrefix(trimmed, "{{") && strings.HasSuffix(trimmed, "}}") && len(trimmed) >= 4:
		inner = trimmed[2 : len(trimmed)-2]
		twoWay = true
	default:
		return Expression{Depend: []Token{Token("'" + raw + "'")}}, false, nil
	}

	inner = strings.TrimSpace(inner)
	negate := strings.HasPrefix(inner, "!")
	if negate {
		inner = strings.TrimSpace(inner[1:])
	}
	deps, isCall, err := signature.Parse(inner)
	if err != nil {
		return Expression{}, true, fmt.Errorf("bind: %w", err)
	}
	expr := Expression{Depend: Tokens(deps...), Call: isCall, Negate: negate, TwoWay: twoWay}
	if twoWay && (expr.Call || expr.Depend[0].IsLiteral()) {
		return Expression{}, true, fmt.Errorf("bind: two-way binding %q must target a single property path", raw)
	}
	return expr, true, nil
}

// Option configures a Factory.
type Option func(*Factory)

// WithSanitizer overrides the policy applied to `html` bindings.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(f *Factory) {
		if policy != nil {
			f.sanitizer = policy
		}
	}
}

// WithEvent maps a property to the view event its two-way bindings listen
// to.
func WithEvent(property, event string) Option {
	return func(f *Factory) {
		property = strings.TrimSpace(property)
		event = strings.TrimSpace(event)
		if property == "" || event == "" {
			return
		}
		f.events[property] = event
	}
}

// WithLogger sets the logger used for back-apply diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// Factory builds descriptors from property/value pairs and supplies the
// apply and back-apply functions for them.
type Factory struct {
	sanitizer *bluemonday.Policy
	events    map[string]string
	logger    zerolog.Logger
}

// NewFactory returns a factory with the default property handlers.
func NewFactory(options ...Option) *Factory {
	f := &Factory{
		events: map[string]string{
			"value":   "input",
			"checked": "change",
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.sanitizer == nil {
		f.sanitizer = defaultSanitizer()
	}
	return f
}

// Create builds an unresolved descriptor (no Path) for property bound to
// value.
func (f *Factory) Create(property, value string) (Descriptor, error) {
	property = strings.TrimSpace(property)
	if property == "" {
		return Descriptor{}, fmt.Errorf("bind: property is required")
	}
	expr, _, err := ParseValue(value)
	if err != nil {
		return Descriptor{}, err
	}
	d := Descriptor{
		Property: property,
		Depend:   expr.Depend,
		Call:     expr.Call,
		Negate:   expr.Negate,
		TwoWay:   expr.TwoWay,
		Apply:    f.Applier(property),
	}
	if d.TwoWay {
		d.Event = f.EventFor(property)
		d.BackApply = f.BackApplier(d)
	}
	return d, nil
}

// EventFor returns the view event two-way bindings of property listen to.
// Unmapped properties use `<property>-changed`.
func (f *Factory) EventFor(property string) string {
	if event, ok := f.events[property]; ok {
		return event
	}
	return property + "-changed"
}

// BackApplier returns the view-to-model writer for a two-way descriptor.
// Node targets listen for d.Event; component targets subscribe to the
// component property. The model is written only when its value differs,
// which stops component targets from echoing forever.
func (f *Factory) BackApplier(d Descriptor) BackApplier {
	if len(d.Depend) != 1 || d.Depend[0].IsLiteral() {
		return nil
	}
	path := string(d.Depend[0])
	property := d.Property
	negate := d.Negate
	logger := f.logger

	write := func(contexts []scope.Context, value any) {
		if negate {
			value = Negate(value)
		}
		ctx, ok := scope.Find(contexts, path)
		if !ok {
			logger.Debug().Str("path", path).Msg("two-way binding has no owning context")
			return
		}
		if current, ok := ctx.Get(path); ok && reflect.DeepEqual(current, value) {
			return
		}
		if err := ctx.Set(path, value); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("back-apply write failed")
		}
	}

	return func(target Target, contexts []scope.Context) func() {
		if target.Context != nil {
			component := target.Context
			effect := scope.NewEffect(func(string) {
				value, _ := component.Get(property)
				write(contexts, value)
			})
			component.AddEffect(property, effect)
			return func() { component.RemoveEffect(property, effect) }
		}
		node := target.Node
		if node == nil {
			return func() {}
		}
		event := d.Event
		if event == "" {
			event = f.EventFor(property)
		}
		listener := dom.NewListener(func(dom.Event) {
			write(contexts, readNode(node, property))
		})
		node.AddEventListener(event, listener)
		return func() { node.RemoveEventListener(event, listener) }
	}
}
