package scope

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// Model is the reactive context kind. Data is held as nested maps and slices
// addressed with dotted paths ("user.name", "items.0.title").
type Model struct {
	data    map[string]any
	effects *Registry
	exprs   map[string]jp.Expr
}

// NewModel returns a model over data. The map is used directly, not copied.
func NewModel(data map[string]any) *Model {
	if data == nil {
		data = make(map[string]any)
	}
	return &Model{
		data:    data,
		effects: NewRegistry(),
		exprs:   make(map[string]jp.Expr),
	}
}

func (m *Model) sealed() {}

// Kind implements Context.
func (m *Model) Kind() Kind { return KindModel }

// HasProp implements Context.
func (m *Model) HasProp(name string) bool {
	_, ok := m.data[RootSegment(name)]
	return ok
}

// Get implements Context.
func (m *Model) Get(path string) (any, bool) {
	return lookup(m.data, path, m.expr)
}

// Set writes value at path, creating intermediate maps, then triggers the
// effects affected by the write.
func (m *Model) Set(path string, value any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("scope: empty property path")
	}
	if !strings.Contains(path, ".") {
		m.data[path] = value
	} else if err := m.expr(path).Set(m.data, value); err != nil {
		return fmt.Errorf("scope: set %q: %w", path, err)
	}
	m.effects.Trigger(path)
	return nil
}

// Notify triggers the effects for path without writing. Use it after mutating
// a value obtained from Get in place.
func (m *Model) Notify(path string) {
	m.effects.Trigger(strings.TrimSpace(path))
}

// Define registers a function under name so bindings and observers can call
// it. Defining does not trigger effects.
func (m *Model) Define(name string, fn Func) {
	m.data[strings.TrimSpace(name)] = fn
}

// AddEffect implements Context.
func (m *Model) AddEffect(path string, e *Effect) {
	m.effects.Add(path, e)
}

// RemoveEffect implements Context.
func (m *Model) RemoveEffect(path string, e *Effect) bool {
	return m.effects.Remove(path, e)
}

// Effects implements Context.
func (m *Model) Effects() *Registry { return m.effects }

// Data returns the backing map.
func (m *Model) Data() map[string]any { return m.data }

func (m *Model) expr(path string) jp.Expr {
	if x, ok := m.exprs[path]; ok {
		return x
	}
	x := compilePath(path)
	m.exprs[path] = x
	return x
}

// compilePath builds a child-only JSONPath expression from a dotted path.
// Numeric segments index into slices.
func compilePath(path string) jp.Expr {
	x := jp.R()
	for _, segment := range strings.Split(path, ".") {
		segment = strings.TrimSpace(segment)
		if idx, err := strconv.Atoi(segment); err == nil {
			x = x.N(idx)
			continue
		}
		x = x.C(segment)
	}
	return x
}

func lookup(data map[string]any, path string, compile func(string) jp.Expr) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}
	if !strings.Contains(path, ".") {
		value, ok := data[path]
		return value, ok
	}
	results := compile(path).Get(data)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}
