package scope

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_AddIsUniquePerPair(t *testing.T) {
	reg := NewRegistry()
	e := NewEffect(func(string) {})
	if !reg.Add("user.name", e) {
		t.Fatalf("expected first add to succeed")
	}
	if reg.Add("user.name", e) {
		t.Fatalf("expected duplicate add to be rejected")
	}
	if !reg.Add("user", e) {
		t.Fatalf("same effect under another path is allowed")
	}
	if reg.Total() != 2 {
		t.Fatalf("expected 2 registrations, got %d", reg.Total())
	}
}

func TestRegistry_RemoveExactCallback(t *testing.T) {
	reg := NewRegistry()
	var calls []string
	a := NewEffect(func(string) { calls = append(calls, "a") })
	b := NewEffect(func(string) { calls = append(calls, "b") })
	reg.Add("title", a)
	reg.Add("title", b)

	if reg.Remove("title", NewEffect(func(string) {})) {
		t.Fatalf("removing an unknown effect must fail")
	}
	if !reg.Remove("title", a) {
		t.Fatalf("expected a removed")
	}
	reg.Trigger("title")

	if diff := cmp.Diff([]string{"b"}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	reg.Remove("title", b)
	if len(reg.Paths()) != 0 {
		t.Fatalf("expected empty path lists to be dropped, got %v", reg.Paths())
	}
}

func TestRegistry_TriggerOrder(t *testing.T) {
	reg := NewRegistry()
	var calls []string
	record := func(name string) *Effect {
		return NewEffect(func(changed string) { calls = append(calls, name+"<"+changed) })
	}
	reg.Add("user", record("user"))
	reg.Add("user.name", record("name1"))
	reg.Add("user.address.city", record("city"))
	reg.Add("user.name", record("name2"))
	reg.Add("other", record("other"))

	reg.Trigger("user.name")
	reg.Trigger("user")

	want := []string{
		"name1<user.name", "name2<user.name", "user<user.name",
		"user<user", "city<user", "name1<user", "name2<user",
	}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("trigger order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_EffectRunsOncePerTrigger(t *testing.T) {
	reg := NewRegistry()
	count := 0
	e := NewEffect(func(string) { count++ })
	reg.Add("user", e)
	reg.Add("user.name", e)
	reg.Trigger("user.name")
	if count != 1 {
		t.Fatalf("expected a single run, got %d", count)
	}
}

func TestRegistry_UnsubscribeWhileRunning(t *testing.T) {
	reg := NewRegistry()
	var calls []string
	var a *Effect
	a = NewEffect(func(string) {
		calls = append(calls, "a")
		reg.Remove("x", a)
	})
	reg.Add("x", a)
	reg.Add("x", NewEffect(func(string) { calls = append(calls, "b") }))

	reg.Trigger("x")
	reg.Trigger("x")

	if diff := cmp.Diff([]string{"a", "b", "b"}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}
