package instance

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/nodepath"
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/template"
)

// State is the lifecycle state of an Instance.
type State int

const (
	Created State = iota
	Attached
	Detached
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadyAttached is returned by Attach on an attached instance.
	ErrAlreadyAttached = errors.New("instance: already attached")
	// ErrDetached is returned when operating on a detached instance.
	ErrDetached = errors.New("instance: detached")
	// ErrNotAttached is returned by ReplaceBind before Attach.
	ErrNotAttached = errors.New("instance: not attached")
	// ErrNoTarget is returned when Attach has nowhere to insert.
	ErrNoTarget = errors.New("instance: no insertion target")
)

// Mount is a nested component slot in the instance's controller arena.
type Mount struct {
	ID         int
	Path       nodepath.Path
	Name       string
	Controller Controller
}

type boundBind struct {
	desc       bind.Descriptor
	node       *dom.Node
	initiators bind.Initiators
	effect     *scope.Effect
	detachBack func()

	last    any
	applied bool
	removed bool
}

// Instance is one materialised occurrence of a template.
type Instance struct {
	cfg   config
	tpl   *template.Template
	state State

	clone *dom.Node
	nodes []*dom.Node
	binds []*boundBind

	nested     []*Instance
	mounts     []*Mount
	mountIndex map[*dom.Node]int
	afterStamp []template.Hook

	contexts []scope.Context
}

// New clones tpl, instantiates controllers for its mount points and
// resolves its bind descriptors against the clone.
func New(tpl *template.Template, options ...Option) (*Instance, error) {
	if tpl == nil {
		return nil, fmt.Errorf("instance: template is required")
	}
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.factory == nil {
		cfg.factory = bind.NewFactory(bind.WithLogger(cfg.logger))
	}

	inst := &Instance{
		cfg:        cfg,
		tpl:        tpl,
		clone:      tpl.Clone(),
		mountIndex: make(map[*dom.Node]int),
		afterStamp: tpl.AfterStampHooks(),
	}

	for _, p := range tpl.Mounts() {
		inst.mount(p)
	}

	inst.nodes = inst.clone.ChildNodes()
	for _, d := range tpl.Binds() {
		inst.binds = append(inst.binds, &boundBind{
			desc: d,
			node: nodepath.Resolve(inst.clone, d.Path),
		})
	}
	return inst, nil
}

func (inst *Instance) mount(p nodepath.Path) {
	node := nodepath.Resolve(inst.clone, p)
	if node == nil {
		return
	}
	name := componentName(node)
	if inst.cfg.resolver == nil {
		inst.cfg.logger.Warn().Str("component", name).Str("path", p.String()).Msg("mount point without resolver")
		return
	}
	ctrl, ok := inst.cfg.resolver.Controller(name, node)
	if !ok || ctrl == nil {
		inst.cfg.logger.Warn().Str("component", name).Str("path", p.String()).Msg("unknown component at mount point")
		return
	}
	m := &Mount{ID: len(inst.mounts), Path: p, Name: name, Controller: ctrl}
	inst.mounts = append(inst.mounts, m)
	inst.mountIndex[node] = m.ID
	inst.afterStamp = append(inst.afterStamp, template.Hook{
		Path: p,
		Fn:   func(*dom.Node, []scope.Context) { ctrl.Connected() },
	})
}

func componentName(node *dom.Node) string {
	if is, ok := node.Attribute("is"); ok && strings.TrimSpace(is) != "" {
		return strings.TrimSpace(is)
	}
	return node.Tag
}

// Attach stamps the instance into the host tree. The clone is inserted before
// before when it is set (into before's parent), otherwise appended to target.
// Stamp hooks and initial binding values run before insertion; after-stamp
// hooks, including nested component connection, run after.
func (inst *Instance) Attach(target, before *dom.Node, contexts ...scope.Context) (*Instance, error) {
	switch inst.state {
	case Attached:
		return inst, ErrAlreadyAttached
	case Detached:
		return inst, ErrDetached
	}
	parent := target
	if before != nil {
		parent = before.Parent()
	}
	if parent == nil {
		return inst, ErrNoTarget
	}

	inst.contexts = append([]scope.Context(nil), contexts...)

	for _, marker := range dom.Markers(inst.clone) {
		inst.cfg.markers.Set(marker, inst.contexts)
	}
	for _, hook := range inst.tpl.StampHooks() {
		if node := nodepath.Resolve(inst.clone, hook.Path); node != nil {
			hook.Fn(node, inst.contexts)
		}
	}
	for _, b := range inst.binds {
		inst.attachBind(b)
	}
	for _, b := range inst.binds {
		inst.applyBind(b, bind.InitialMode)
	}

	if err := parent.InsertBefore(inst.clone, before); err != nil {
		return inst, fmt.Errorf("instance: insert: %w", err)
	}
	inst.state = Attached

	for _, hook := range inst.afterStamp {
		if node := nodepath.ResolveIn(inst.nodes, hook.Path); node != nil {
			hook.Fn(node, inst.contexts)
		}
	}
	return inst, nil
}

func (inst *Instance) attachBind(b *boundBind) {
	if b.node == nil {
		return
	}
	b.effect = scope.NewEffect(func(changed string) {
		inst.applyBind(b, bind.Mode{Changed: changed})
	})
	b.initiators = make(bind.Initiators, len(b.desc.Depend))
	for _, token := range b.desc.Depend {
		if token.IsLiteral() {
			b.initiators[token] = nil
			continue
		}
		b.initiators[token] = scope.Subscribe(inst.contexts, string(token), b.effect)
	}
	if b.desc.TwoWay && b.desc.BackApply != nil {
		b.detachBack = b.desc.BackApply(inst.target(b.node), inst.contexts)
	}
}

func (inst *Instance) applyBind(b *boundBind, mode bind.Mode) {
	if b.node == nil || b.removed || b.desc.Apply == nil {
		return
	}
	value := b.desc.Value(b.initiators, inst.cfg.logger)
	if b.desc.Negate {
		value = bind.Negate(value)
	}
	if inst.cfg.equalityGuard && b.applied && reflect.DeepEqual(b.last, value) {
		return
	}
	b.last, b.applied = value, true

	var initiator scope.Context
	if len(b.desc.Depend) > 0 {
		initiator = b.initiators[b.desc.Depend[0]]
	}
	b.desc.Apply(inst.target(b.node), inst.contexts, mode, value, initiator)
}

func (inst *Instance) unbind(b *boundBind) {
	b.removed = true
	for token, ctx := range b.initiators {
		if ctx != nil {
			ctx.RemoveEffect(string(token), b.effect)
		}
	}
	b.initiators = nil
	if b.detachBack != nil {
		b.detachBack()
		b.detachBack = nil
	}
}

func (inst *Instance) target(node *dom.Node) bind.Target {
	t := bind.Target{Node: node}
	if id, ok := inst.mountIndex[node]; ok {
		t.Context = inst.mounts[id].Controller.Context()
	}
	return t
}

// Detach tears the instance down: nested instances and mounted components
// first, then every effect and back-applier registered by its bindings, then
// the nodes it inserted. A second call is a no-op.
func (inst *Instance) Detach() {
	if inst.state == Detached {
		inst.cfg.logger.Debug().Msg("instance already detached")
		return
	}
	for _, child := range inst.nested {
		child.Detach()
	}
	for _, m := range inst.mounts {
		m.Controller.Disconnected()
	}
	for _, b := range inst.binds {
		inst.unbind(b)
	}
	for _, node := range inst.nodes {
		node.Remove()
	}
	for _, marker := range inst.markerNodes() {
		inst.cfg.markers.Delete(marker)
	}
	inst.state = Detached
}

func (inst *Instance) markerNodes() []*dom.Node {
	var out []*dom.Node
	for _, node := range inst.nodes {
		if node.Type == dom.CommentNode && node.Marker {
			out = append(out, node)
		}
		out = append(out, dom.Markers(node)...)
	}
	return out
}

// Adopt registers child as nested: it is detached before this instance.
func (inst *Instance) Adopt(child *Instance) {
	if child == nil || child == inst {
		return
	}
	inst.nested = append(inst.nested, child)
}

// RemoveBind removes the bindings of property on the node at path, including
// their effects and back-appliers. It is a no-op when the path no longer
// resolves or nothing is bound.
func (inst *Instance) RemoveBind(path nodepath.Path, property string) {
	node := nodepath.ResolveIn(inst.nodes, path)
	if node == nil {
		return
	}
	kept := inst.binds[:0]
	for _, b := range inst.binds {
		if b.node == node && b.desc.Property == property {
			inst.unbind(b)
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(inst.binds); i++ {
		inst.binds[i] = nil
	}
	inst.binds = kept
}

// ReplaceBind rebinds property on the node at path to value, a binding value
// in the form accepted by bind.ParseValue, and applies it immediately.
func (inst *Instance) ReplaceBind(path nodepath.Path, property, value string) error {
	switch inst.state {
	case Created:
		return ErrNotAttached
	case Detached:
		return ErrDetached
	}
	node := nodepath.ResolveIn(inst.nodes, path)
	if node == nil {
		return nil
	}
	d, err := inst.cfg.factory.Create(property, value)
	if err != nil {
		return fmt.Errorf("instance: replace bind: %w", err)
	}
	inst.RemoveBind(path, property)
	d.Path = append(nodepath.Path(nil), path...)
	b := &boundBind{desc: d, node: node}
	inst.binds = append(inst.binds, b)
	inst.attachBind(b)
	inst.applyBind(b, bind.InitialMode)
	return nil
}

// QuerySelector returns the first node owned by the instance matching
// selector, or nil.
func (inst *Instance) QuerySelector(selector string) *dom.Node {
	sel, err := dom.CompileSelector(selector)
	if err != nil {
		return nil
	}
	return dom.QueryIn(sel, inst.nodes)
}

// State returns the lifecycle state.
func (inst *Instance) State() State { return inst.state }

// Nodes returns the top-level nodes the instance owns.
func (inst *Instance) Nodes() []*dom.Node {
	return append([]*dom.Node(nil), inst.nodes...)
}

// Contexts returns the context list supplied to Attach.
func (inst *Instance) Contexts() []scope.Context {
	return append([]scope.Context(nil), inst.contexts...)
}

// Mounts returns the controller arena.
func (inst *Instance) Mounts() []Mount {
	out := make([]Mount, len(inst.mounts))
	for i, m := range inst.mounts {
		out[i] = *m
	}
	return out
}

// BindCount returns the number of live bindings.
func (inst *Instance) BindCount() int { return len(inst.binds) }
