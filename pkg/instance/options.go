package instance

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/scope"
)

// Controller is a nested component mounted at a template mount point.
type Controller interface {
	// Context is the component's own context; bindings on the mount node
	// write component properties through it.
	Context() scope.Context
	// Connected runs once the mount node is part of the host tree.
	Connected()
	// Disconnected tears the component down.
	Disconnected()
}

// Resolver instantiates controllers for mount points. name is the node's
// `is` attribute, or its tag when the attribute is absent. Controllers are
// created in light mode, rendering into node itself.
type Resolver interface {
	Controller(name string, node *dom.Node) (Controller, bool)
}

// Option configures New.
type Option func(*config)

type config struct {
	logger        zerolog.Logger
	resolver      Resolver
	factory       *bind.Factory
	markers       *MarkerIndex
	equalityGuard bool
}

func defaultConfig() config {
	return config{
		logger:  zerolog.Nop(),
		markers: DefaultMarkers,
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithResolver sets the controller resolver used for mount points.
func WithResolver(resolver Resolver) Option {
	return func(cfg *config) {
		cfg.resolver = resolver
	}
}

// WithFactory sets the factory ReplaceBind uses to build descriptors.
func WithFactory(factory *bind.Factory) Option {
	return func(cfg *config) {
		if factory != nil {
			cfg.factory = factory
		}
	}
}

// WithMarkerIndex overrides the index marker contexts are recorded in.
func WithMarkerIndex(index *MarkerIndex) Option {
	return func(cfg *config) {
		if index != nil {
			cfg.markers = index
		}
	}
}

// WithEqualityGuard skips re-applying a binding whose value is deeply equal
// to the value it last applied. Off by default: every dependency write
// re-applies.
func WithEqualityGuard(enabled bool) Option {
	return func(cfg *config) {
		cfg.equalityGuard = enabled
	}
}
