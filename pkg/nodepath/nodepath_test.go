package nodepath

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stamp/pkg/dom"
)

func mustFragment(t *testing.T, markup string) *dom.Node {
	t.Helper()
	frag, err := dom.ParseFragment(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return frag
}

func TestCaptureResolve_AcrossClones(t *testing.T) {
	original := mustFragment(t, `<div><p>a</p><ul><li>x</li><li>y</li></ul></div>`)
	target := original.QuerySelectorAll("li")[1]

	path, ok := Capture(original, target)
	if !ok {
		t.Fatalf("capture failed")
	}
	if diff := cmp.Diff(Path{0, 1, 1}, path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}

	clone := original.Clone(true)
	got := Resolve(clone, path)
	if got == nil || got == target || got.TextContent() != "y" {
		t.Fatalf("expected the clone's second li, got %v", got)
	}
}

func TestResolveIn_AfterNodesMoved(t *testing.T) {
	frag := mustFragment(t, `<span>a</span><b>c</b>`)
	nodes := frag.ChildNodes()

	host := dom.NewElement("div")
	host.AppendChild(dom.NewElement("hr"))
	host.AppendChild(frag)

	got := ResolveIn(nodes, Path{1, 0})
	if got == nil || got.Data != "c" {
		t.Fatalf("expected text node c, got %v", got)
	}
	if Resolve(frag, Path{1, 0}) != nil {
		t.Fatalf("expected the emptied fragment to resolve nothing")
	}
}

func TestResolve_OutOfRange(t *testing.T) {
	frag := mustFragment(t, `<div></div>`)
	for _, p := range []Path{nil, {1}, {0, 0}, {-1}} {
		if got := Resolve(frag, p); got != nil {
			t.Fatalf("path %v: expected nil, got %v", p, got)
		}
		if got := ResolveIn(frag.ChildNodes(), p); got != nil {
			t.Fatalf("path %v: expected nil from ResolveIn, got %v", p, got)
		}
	}
}

func TestParse(t *testing.T) {
	p, err := Parse(" 0.2.10 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.String() != "0.2.10" {
		t.Fatalf("unexpected string %q", p.String())
	}
	for _, bad := range []string{"", "a.1", "1.-2", "1..2"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
