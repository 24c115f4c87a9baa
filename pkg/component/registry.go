package component

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/instance"
	"github.com/goliatone/go-stamp/pkg/signature"
)

var (
	// ErrUnknownComponent is returned when no definition matches a name.
	ErrUnknownComponent = errors.New("component: unknown component")
	// ErrDuplicateComponent is returned when a name is registered twice.
	ErrDuplicateComponent = errors.New("component: component already registered")
	// ErrInvalidName is returned for names without a hyphen.
	ErrInvalidName = errors.New("component: name must contain a hyphen")
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger handed to controllers and their instances.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithFactory sets the bind factory instances use for ReplaceBind.
func WithFactory(factory *bind.Factory) Option {
	return func(r *Registry) {
		if factory != nil {
			r.factory = factory
		}
	}
}

// WithMarkerIndex sets the index used to record and look up marker contexts.
func WithMarkerIndex(index *instance.MarkerIndex) Option {
	return func(r *Registry) {
		if index != nil {
			r.markers = index
		}
	}
}

// Registry holds component definitions keyed by tag name and creates
// controllers for them. It is the resolver instances use for mount points.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition

	logger  zerolog.Logger
	factory *bind.Factory
	markers *instance.MarkerIndex
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		definitions: make(map[string]Definition),
		logger:      zerolog.Nop(),
		markers:     instance.DefaultMarkers,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.factory == nil {
		r.factory = bind.NewFactory(bind.WithLogger(r.logger))
	}
	return r
}

// Register validates def, parses its observer signatures and stores it.
func (r *Registry) Register(def Definition) error {
	name := normalize(def.Name)
	if name == "" {
		return fmt.Errorf("component: component name is required")
	}
	if !strings.Contains(name, "-") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	def.Name = name

	calls := make([]signature.Call, 0, len(def.Observers))
	for _, raw := range def.Observers {
		call, err := signature.ParseCall(raw)
		if err != nil {
			return fmt.Errorf("component: %s observer: %w", name, err)
		}
		calls = append(calls, call)
	}
	def.calls = calls

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateComponent, name)
	}
	r.definitions[name] = def.clone()
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns a copy of the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[normalize(name)]
	if !ok {
		return Definition{}, false
	}
	return def.clone(), true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.definitions[normalize(name)]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates a controller for the component name hosted by host. cfg, when
// non-nil, replaces the definition's own Config.
func (r *Registry) New(name string, host *dom.Node, cfg *Config) (*Controller, error) {
	if host == nil || host.Type != dom.ElementNode {
		return nil, fmt.Errorf("component: %s: host must be an element", name)
	}
	def, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	if cfg != nil {
		def.Config = *cfg
	}
	return newController(r, def, host), nil
}

// Controller implements instance.Resolver. Mounted components keep their
// definition's Config but render into the mount node directly.
func (r *Registry) Controller(name string, node *dom.Node) (instance.Controller, bool) {
	def, ok := r.Lookup(name)
	if !ok {
		r.logger.Debug().Str("component", name).Msg("mount point not resolved")
		return nil, false
	}
	cfg := def.Config
	cfg.LightDOM, cfg.Root = true, nil
	ctrl, err := r.New(name, node, &cfg)
	if err != nil {
		r.logger.Debug().Err(err).Str("component", name).Msg("mount point not resolved")
		return nil, false
	}
	return ctrl, true
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
