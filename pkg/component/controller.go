package component

import (
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/instance"
	"github.com/goliatone/go-stamp/pkg/observer"
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/styles"
)

// Controller is a live component: its own reactive model plus the lifecycle
// that stamps the definition's template into the render root on connect and
// tears it down on disconnect. Components call Connected and Disconnected
// from their own entry points.
type Controller struct {
	*scope.Model

	registry *Registry
	def      Definition
	host     *dom.Node
	root     *dom.Node

	inst      *instance.Instance
	observers []*observer.Observer
	style     *dom.Node
	connected bool
}

func newController(r *Registry, def Definition, host *dom.Node) *Controller {
	c := &Controller{
		Model:    scope.NewModel(def.Props),
		registry: r,
		def:      def,
		host:     host,
	}
	for name, fn := range def.Methods {
		c.Define(name, fn)
	}
	c.root = c.pickRoot()
	for _, call := range def.calls {
		c.observers = append(c.observers, observer.New(call, observer.WithLogger(r.logger)))
	}
	return c
}

func (c *Controller) pickRoot() *dom.Node {
	cfg := c.def.Config
	if cfg.LightDOM {
		if cfg.Root != nil {
			return cfg.Root
		}
		return c.host
	}
	return c.host.AttachShadow(dom.ShadowInit{DelegatesFocus: cfg.DelegatesFocus})
}

// Name returns the component name.
func (c *Controller) Name() string { return c.def.Name }

// Context implements instance.Controller.
func (c *Controller) Context() scope.Context { return c.Model }

// Host returns the element the component is attached to.
func (c *Controller) Host() *dom.Node { return c.host }

// Root returns the node the template is stamped into.
func (c *Controller) Root() *dom.Node { return c.root }

// Instance returns the live template instance, or nil while disconnected.
func (c *Controller) Instance() *instance.Instance { return c.inst }

// IsConnected reports whether Connected ran without a matching Disconnected.
func (c *Controller) IsConnected() bool { return c.connected }

// Contexts returns the context list the template is bound against: the
// component model, then the ambient contexts of the nearest marker before the
// host, if any.
func (c *Controller) Contexts() []scope.Context {
	contexts := []scope.Context{c.Model}
	if ambient, ok := c.registry.markers.Ambient(c.host); ok {
		contexts = append(contexts, ambient...)
	}
	return contexts
}

// Connected stamps the template into the root, wires observers and attaches
// the component style. Calling it again while connected does nothing.
func (c *Controller) Connected() {
	if c.connected {
		return
	}
	c.connected = true
	logger := c.registry.logger.With().Str("component", c.def.Name).Logger()
	contexts := c.Contexts()

	if c.def.Template != nil {
		inst, err := instance.New(c.def.Template,
			instance.WithLogger(logger),
			instance.WithResolver(c.registry),
			instance.WithFactory(c.registry.factory),
			instance.WithMarkerIndex(c.registry.markers),
			instance.WithEqualityGuard(c.def.Config.EqualityGuard),
		)
		if err == nil {
			_, err = inst.Attach(c.root, nil, contexts...)
		}
		if err != nil {
			logger.Error().Err(err).Msg("template attach failed")
		} else {
			c.inst = inst
		}
	}

	for _, o := range c.observers {
		o.Attach(contexts)
	}

	if !c.def.CSS.IsZero() {
		c.style = styles.Attach(c.root, c.def.CSS)
	}
}

// Disconnected detaches the template instance, the observers and any style
// element Connected appended. The controller can be connected again
// afterwards.
func (c *Controller) Disconnected() {
	if !c.connected {
		return
	}
	c.connected = false
	if c.inst != nil {
		c.inst.Detach()
		c.inst = nil
	}
	for _, o := range c.observers {
		o.Detach()
	}
	if c.style != nil {
		c.style.Remove()
		c.style = nil
	}
}
