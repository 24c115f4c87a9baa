// Package stamp is the top-level entry point: it wires a component registry,
// a bind factory and a logger into an Engine that stamps templates into a
// host tree and keeps them bound to their contexts.
package stamp

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/component"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/instance"
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/template"
)

// Template aliases template.Template for callers that only import the root
// package.
type Template = template.Template

// Instance aliases instance.Instance.
type Instance = instance.Instance

// Context aliases scope.Context.
type Context = scope.Context

// Definition aliases component.Definition.
type Definition = component.Definition

// Config aliases component.Config.
type Config = component.Config

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger shared by every layer.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBindOptions forwards options to the engine's bind factory.
func WithBindOptions(options ...bind.Option) Option {
	return func(e *Engine) {
		e.bindOptions = append(e.bindOptions, options...)
	}
}

// WithEqualityGuard enables the equality guard on instances the engine
// stamps directly.
func WithEqualityGuard(enabled bool) Option {
	return func(e *Engine) {
		e.equalityGuard = enabled
	}
}

// WithMarkerIndex isolates the engine's marker contexts from
// instance.DefaultMarkers.
func WithMarkerIndex(index *instance.MarkerIndex) Option {
	return func(e *Engine) {
		if index != nil {
			e.markers = index
		}
	}
}

// Engine bundles the collaborators a template needs at runtime.
type Engine struct {
	logger        zerolog.Logger
	bindOptions   []bind.Option
	equalityGuard bool
	markers       *instance.MarkerIndex

	factory  *bind.Factory
	registry *component.Registry
}

// New builds an engine. Without options it is silent and uses the default
// property handlers.
func New(options ...Option) *Engine {
	e := &Engine{
		logger:  zerolog.Nop(),
		markers: instance.DefaultMarkers,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	factoryOptions := append([]bind.Option{bind.WithLogger(e.logger)}, e.bindOptions...)
	e.factory = bind.NewFactory(factoryOptions...)
	e.registry = component.NewRegistry(
		component.WithLogger(e.logger),
		component.WithFactory(e.factory),
		component.WithMarkerIndex(e.markers),
	)
	return e
}

// Factory returns the bind factory templates should be compiled with.
func (e *Engine) Factory() *bind.Factory { return e.factory }

// Registry returns the component registry.
func (e *Engine) Registry() *component.Registry { return e.registry }

// Logger returns the engine logger.
func (e *Engine) Logger() zerolog.Logger { return e.logger }

// Register adds a component definition.
func (e *Engine) Register(def Definition) error {
	return e.registry.Register(def)
}

// Builder starts a template from markup using the engine's factory.
func (e *Engine) Builder(markup string) *template.Builder {
	return template.NewBuilder(markup, e.factory)
}

// Stamp instantiates tpl and appends it to host, bound to contexts.
func (e *Engine) Stamp(tpl *Template, host *dom.Node, contexts ...Context) (*Instance, error) {
	inst, err := instance.New(tpl,
		instance.WithLogger(e.logger),
		instance.WithResolver(e.registry),
		instance.WithFactory(e.factory),
		instance.WithMarkerIndex(e.markers),
		instance.WithEqualityGuard(e.equalityGuard),
	)
	if err != nil {
		return nil, err
	}
	return inst.Attach(host, nil, contexts...)
}

// Mount creates the component name on host and connects it. cfg, when set,
// replaces the definition's Config.
func (e *Engine) Mount(name string, host *dom.Node, cfg *Config) (*component.Controller, error) {
	ctrl, err := e.registry.New(name, host, cfg)
	if err != nil {
		return nil, err
	}
	ctrl.Connected()
	return ctrl, nil
}

// View is a template stamped into a fragment of its own, for callers that
// render markup rather than patch an existing tree.
type View struct {
	Host     *dom.Node
	Instance *Instance
}

// HTML renders the view's current state.
func (v *View) HTML() string {
	var buf bytes.Buffer
	_ = dom.Render(&buf, v.Host)
	return buf.String()
}

// View stamps tpl into a new fragment bound to contexts.
func (e *Engine) View(tpl *Template, contexts ...Context) (*View, error) {
	host := dom.NewFragment()
	inst, err := e.Stamp(tpl, host, contexts...)
	if err != nil {
		return nil, fmt.Errorf("stamp: view: %w", err)
	}
	return &View{Host: host, Instance: inst}, nil
}

// Stamp is the one-shot form of Engine.Stamp with a default engine.
func Stamp(tpl *Template, host *dom.Node, contexts ...Context) (*Instance, error) {
	return New().Stamp(tpl, host, contexts...)
}
