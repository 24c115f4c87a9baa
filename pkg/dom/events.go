package dom

// Event is dispatched to listeners registered on a node.
type Event struct {
	Type   string
	Target *Node
	Detail any
}

// Listener wraps an event callback. Listeners are compared by pointer so a
// registration can be removed exactly.
type Listener struct {
	Fn func(Event)
}

// NewListener wraps fn.
func NewListener(fn func(Event)) *Listener {
	return &Listener{Fn: fn}
}

// AddEventListener registers l for events of the given type. Registering the
// same listener twice is a no-op.
func (n *Node) AddEventListener(event string, l *Listener) {
	if l == nil || l.Fn == nil || event == "" {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*Listener)
	}
	for _, existing := range n.listeners[event] {
		if existing == l {
			return
		}
	}
	n.listeners[event] = append(n.listeners[event], l)
}

// RemoveEventListener unregisters l. It reports whether l was registered.
func (n *Node) RemoveEventListener(event string, l *Listener) bool {
	list := n.listeners[event]
	for i, existing := range list {
		if existing == l {
			n.listeners[event] = append(list[:i], list[i+1:]...)
			if len(n.listeners[event]) == 0 {
				delete(n.listeners, event)
			}
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners registered for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// Dispatch invokes the listeners registered for evt.Type on n in registration
// order. Events do not bubble.
func (n *Node) Dispatch(evt Event) {
	if evt.Target == nil {
		evt.Target = n
	}
	list := append([]*Listener(nil), n.listeners[evt.Type]...)
	for _, l := range list {
		l.Fn(evt)
	}
}
