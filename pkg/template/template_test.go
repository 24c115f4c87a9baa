package template

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/nodepath"
	"github.com/goliatone/go-stamp/pkg/scope"
)

func TestBuilder_CapturesPaths(t *testing.T) {
	tpl, err := NewBuilder(`<section><p></p><p class="x"></p></section>`, nil).
		Bind("p.x", "text", "[[title]]").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	binds := tpl.Binds()
	if len(binds) != 1 {
		t.Fatalf("expected one bind, got %d", len(binds))
	}
	if diff := cmp.Diff(nodepath.Path{0, 1}, binds[0].Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bind.Tokens("title"), binds[0].Depend); diff != "" {
		t.Fatalf("depend mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Errors(t *testing.T) {
	cases := map[string]*Builder{
		"missing selector": NewBuilder(`<p></p>`, nil).Bind("span", "text", "[[x]]"),
		"bad value":        NewBuilder(`<p></p>`, nil).Bind("p", "text", "[[fn(]]"),
		"missing mount":    NewBuilder(`<p>t</p>`, nil).Mount("span"),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := b.Build(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNew_ValidatesPaths(t *testing.T) {
	content, err := dom.ParseFragment(`<p>text</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	apply := func(bind.Target, []scope.Context, bind.Mode, any, scope.Context) {}
	if _, err := New(content, WithBinds(bind.Descriptor{Path: nodepath.Path{3}, Apply: apply})); err == nil {
		t.Fatalf("expected unresolved bind path error")
	}
	if _, err := New(content, WithMounts(nodepath.Path{0, 0})); err == nil {
		t.Fatalf("expected mount on a text node to fail")
	}
	if _, err := New(content, WithMarkers(nodepath.Path{0})); err == nil {
		t.Fatalf("expected marker on an element to fail")
	}
}

func TestTemplate_ClonesAreIndependent(t *testing.T) {
	tpl := NewBuilder(`<p>a</p>`, nil).MustBuild()
	first := tpl.Clone()
	second := tpl.Clone()
	p, _ := first.ChildAt(0)
	p.SetTextContent("changed")
	if got := dom.RenderString(second); got != "<p>a</p>" {
		t.Fatalf("second clone affected: %q", got)
	}
	if got := dom.RenderString(tpl.Clone()); got != "<p>a</p>" {
		t.Fatalf("template content affected: %q", got)
	}
}

func TestTemplate_BindsAreCopies(t *testing.T) {
	tpl := NewBuilder(`<p></p>`, nil).Bind("p", "text", "[[a]]").MustBuild()
	binds := tpl.Binds()
	binds[0].Depend[0] = "mutated"
	binds[0].Path[0] = 9
	again := tpl.Binds()
	if again[0].Depend[0] != "a" || again[0].Path[0] != 0 {
		t.Fatalf("template descriptors were mutated through a copy")
	}
}

func TestLoadFile(t *testing.T) {
	tpl, err := LoadFile(filepath.Join("testdata", "card.yaml"), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	binds := tpl.Binds()
	got := make([]string, 0, len(binds))
	for _, d := range binds {
		got = append(got, d.Property+"@"+d.Path.String())
	}
	want := []string{"text@0.0", "value@0.1", "class:empty@0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("binds mismatch (-want +got):\n%s", diff)
	}
	if !binds[1].TwoWay || binds[1].BackApply == nil {
		t.Fatalf("expected two-way value binding")
	}
	if !binds[2].Negate {
		t.Fatalf("expected negated class binding")
	}

	if diff := cmp.Diff([]nodepath.Path{{0, 2}}, tpl.Mounts()); diff != "" {
		t.Fatalf("mounts mismatch (-want +got):\n%s", diff)
	}
	markers := dom.Markers(tpl.Clone())
	if len(markers) != 1 || markers[0].Data != "slot" {
		t.Fatalf("expected slot marker to survive cloning, got %v", markers)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":     "   ",
		"no markup": "binds: []",
		"bad yaml":  "markup: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(data), name); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	doc := Document{Markup: "<p></p>", Binds: []BindEntry{{Property: "text", Value: "[[x]]"}}}
	if _, err := Compile(doc, nil); err == nil || !strings.Contains(err.Error(), "path or selector") {
		t.Fatalf("expected missing target error, got %v", err)
	}
	doc = Document{Markup: "<p></p>", Markers: []NodeRef{{Path: "a.b"}}}
	if _, err := Compile(doc, nil); err == nil {
		t.Fatalf("expected invalid path error")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"), nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
