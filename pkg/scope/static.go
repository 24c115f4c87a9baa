package scope

// Static is a read-only context over a snapshot of values. It accepts effect
// registrations so bindings can subscribe uniformly, but they never fire.
type Static struct {
	values  map[string]any
	effects *Registry
}

// NewStatic returns a read-only context over values.
func NewStatic(values map[string]any) *Static {
	if values == nil {
		values = make(map[string]any)
	}
	return &Static{values: values, effects: NewRegistry()}
}

func (s *Static) sealed() {}

// Kind implements Context.
func (s *Static) Kind() Kind { return KindStatic }

// HasProp implements Context.
func (s *Static) HasProp(name string) bool {
	_, ok := s.values[RootSegment(name)]
	return ok
}

// Get implements Context.
func (s *Static) Get(path string) (any, bool) {
	return lookup(s.values, path, compilePath)
}

// Set implements Context. Static contexts reject writes.
func (s *Static) Set(string, any) error { return ErrReadOnly }

// AddEffect implements Context.
func (s *Static) AddEffect(path string, e *Effect) { s.effects.Add(path, e) }

// RemoveEffect implements Context.
func (s *Static) RemoveEffect(path string, e *Effect) bool { return s.effects.Remove(path, e) }

// Effects implements Context.
func (s *Static) Effects() *Registry { return s.effects }
