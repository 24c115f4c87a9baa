package bind

import (
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/nodepath"
	"github.com/goliatone/go-stamp/pkg/scope"
)

// Mode tells an apply function why it runs: the initial application, or a
// write to one of its dependencies.
type Mode struct {
	Initial bool
	// Changed is the written property path for reactive applications.
	Changed string
}

// InitialMode is passed on the first application of a binding.
var InitialMode = Mode{Initial: true}

// Target is what a binding writes into. Context is set when the node is the
// mount point of a nested component; property writes then go to the
// component instead of the node.
type Target struct {
	Node    *dom.Node
	Context scope.Context
}

// ApplyFunc writes value into target. initiator is the context owning the
// first dependency (nil for literals and unresolved tokens).
type ApplyFunc func(target Target, contexts []scope.Context, mode Mode, value any, initiator scope.Context)

// BackApplier installs a view-to-model writer for a two-way binding and
// returns the function that removes it.
type BackApplier func(target Target, contexts []scope.Context) (detach func())

// Descriptor describes a single binding. Template-level descriptors are
// shared by every instance and must not be mutated; instances clone them.
type Descriptor struct {
	Path     nodepath.Path
	Property string
	Depend   []Token
	Apply    ApplyFunc
	Call     bool
	Negate   bool
	TwoWay   bool
	// Event is the view event a two-way binding listens to.
	Event     string
	BackApply BackApplier
}

// Clone returns a copy that shares no slices with d.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Path = append(nodepath.Path(nil), d.Path...)
	out.Depend = append([]Token(nil), d.Depend...)
	return out
}

// IsCall reports whether the descriptor is a function-call binding.
func (d Descriptor) IsCall() bool {
	return d.Call || len(d.Depend) > 1
}
