package scope

import (
	"testing"
)

func TestModel_GetSet(t *testing.T) {
	m := NewModel(map[string]any{
		"user": map[string]any{"name": "Alice"},
		"tags": []any{"a", "b"},
	})

	if v, ok := m.Get("user.name"); !ok || v != "Alice" {
		t.Fatalf("expected Alice, got %v (ok=%v)", v, ok)
	}
	if v, ok := m.Get("tags.1"); !ok || v != "b" {
		t.Fatalf("expected b, got %v (ok=%v)", v, ok)
	}
	if _, ok := m.Get("user.missing"); ok {
		t.Fatalf("expected missing path to be absent")
	}

	fired := 0
	m.AddEffect("user.name", NewEffect(func(string) { fired++ }))
	if err := m.Set("user.name", "Bob"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := m.Get("user.name"); v != "Bob" {
		t.Fatalf("expected Bob, got %v", v)
	}
	if fired != 1 {
		t.Fatalf("expected effect to fire once, got %d", fired)
	}
}

func TestModel_HasPropUsesRootSegment(t *testing.T) {
	m := NewModel(map[string]any{"user": map[string]any{}})
	if !m.HasProp("user") || !m.HasProp("user.name") {
		t.Fatalf("expected root segment lookup")
	}
	if m.HasProp("account") {
		t.Fatalf("unexpected property")
	}
}

func TestSubscribe_FirstContextWins(t *testing.T) {
	inner := NewModel(map[string]any{"title": "inner"})
	outer := NewModel(map[string]any{"title": "outer", "user": map[string]any{}})
	e := NewEffect(func(string) {})

	if got := Subscribe([]Context{inner, outer}, "title", e); got != inner {
		t.Fatalf("expected inner to own title")
	}
	if got := Subscribe([]Context{inner, outer}, "user.name", e); got != outer {
		t.Fatalf("expected outer to own user")
	}
	if got := Subscribe([]Context{inner, outer}, "missing", e); got != nil {
		t.Fatalf("expected no initiator")
	}
	if inner.Effects().Total() != 1 || outer.Effects().Total() != 1 {
		t.Fatalf("unexpected registrations: inner=%d outer=%d", inner.Effects().Total(), outer.Effects().Total())
	}
}

func TestStatic_ReadOnly(t *testing.T) {
	s := NewStatic(map[string]any{"greeting": "hi"})
	if err := s.Set("greeting", "yo"); err != ErrReadOnly {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if v, _ := s.Get("greeting"); v != "hi" {
		t.Fatalf("unexpected value %v", v)
	}
	var ctx Context = s
	if ctx.Kind() != KindStatic {
		t.Fatalf("unexpected kind")
	}
}
