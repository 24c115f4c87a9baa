package component

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/instance"
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/styles"
	"github.com/goliatone/go-stamp/pkg/template"
)

func cardRegistry(t *testing.T, tracked *[]any, options ...Option) *Registry {
	t.Helper()
	r := NewRegistry(options...)
	r.MustRegister(Definition{
		Name:     "x-badge",
		Template: template.NewBuilder(`<span></span>`, nil).Bind("span", "text", "[[label]]").MustBuild(),
		Props:    map[string]any{"label": ""},
	})
	r.MustRegister(Definition{
		Name: "x-card",
		Template: template.NewBuilder(`<h2></h2><x-badge></x-badge>`, nil).
			Bind("h2", "text", "[[title]]").
			Mount("x-badge").
			Bind("x-badge", "label", "[[title]]").
			MustBuild(),
		Observers: []string{"track(title)"},
		CSS:       styles.CSS(".card{}", true),
		Props:     map[string]any{"title": "Hello"},
		Methods: map[string]scope.Func{
			"track": func(_ scope.Context, args ...any) (any, error) {
				*tracked = append(*tracked, args...)
				return nil, nil
			},
		},
	})
	return r
}

func TestController_Lifecycle(t *testing.T) {
	var tracked []any
	r := cardRegistry(t, &tracked)
	doc := dom.NewDocument(true)
	host := dom.NewElement("x-card")
	doc.AppendChild(host)

	ctrl, err := r.New("x-card", host, &Config{DelegatesFocus: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	root := ctrl.Root()
	if root.Type != dom.ShadowRootNode || !root.DelegatesFocus() || host.ShadowRoot() != root {
		t.Fatalf("expected an isolated root with delegated focus")
	}

	ctrl.Connected()
	ctrl.Connected()

	if got := dom.RenderString(root); got != "<h2>Hello</h2><x-badge><span>Hello</span></x-badge>" {
		t.Fatalf("unexpected render %q", got)
	}
	if sheets := root.AdoptedStyleSheets(); len(sheets) != 1 {
		t.Fatalf("expected style adopted once, got %d", len(sheets))
	}
	mounts := ctrl.Instance().Mounts()
	if len(mounts) != 1 {
		t.Fatalf("expected the nested badge mounted, got %d", len(mounts))
	}
	badge := mounts[0].Controller.(*Controller)

	if err := ctrl.Set("title", "World"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := dom.RenderString(root); got != "<h2>World</h2><x-badge><span>World</span></x-badge>" {
		t.Fatalf("unexpected render after update %q", got)
	}
	if diff := cmp.Diff([]any{"World"}, tracked); diff != "" {
		t.Fatalf("observer calls mismatch (-want +got):\n%s", diff)
	}

	ctrl.Disconnected()

	if root.Len() != 0 || ctrl.Instance() != nil || ctrl.IsConnected() {
		t.Fatalf("expected the root emptied on disconnect")
	}
	if ctrl.Effects().Total() != 0 || badge.Effects().Total() != 0 {
		t.Fatalf("expected no effects left: card=%v badge=%v", ctrl.Effects().Paths(), badge.Effects().Paths())
	}
	ctrl.Set("title", "Again")
	if len(tracked) != 1 {
		t.Fatalf("observers must stop on disconnect")
	}

	ctrl.Connected()
	if got := root.QuerySelector("h2").TextContent(); got != "Again" {
		t.Fatalf("expected reconnect to stamp current state, got %q", got)
	}
	if sheets := root.AdoptedStyleSheets(); len(sheets) != 1 {
		t.Fatalf("reconnect must not adopt the sheet twice, got %d", len(sheets))
	}
}

func TestController_LightDOM(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Definition{
		Name:     "x-note",
		Template: template.NewBuilder(`<p></p>`, nil).Bind("p", "text", "[[text]]").MustBuild(),
		CSS:      styles.CSS("p{}", false),
		Props:    map[string]any{"text": "hi"},
	})

	host := dom.NewElement("x-note")
	ctrl, err := r.New("x-note", host, &Config{LightDOM: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctrl.Connected()
	if got := dom.RenderString(host); got != "<x-note><p>hi</p><style>p{}</style></x-note>" {
		t.Fatalf("unexpected render %q", got)
	}

	alt := dom.NewElement("div")
	other, _ := r.New("x-note", dom.NewElement("x-note"), &Config{LightDOM: true, Root: alt})
	other.Connected()
	if other.Root() != alt || alt.Len() != 2 || other.Host().Len() != 0 {
		t.Fatalf("expected rendering into the alternate root")
	}
}

func TestController_ReconnectKeepsOneStyleElement(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Definition{
		Name:     "x-note",
		Template: template.NewBuilder(`<p></p>`, nil).Bind("p", "text", "[[text]]").MustBuild(),
		CSS:      styles.CSS("p{}", false),
		Props:    map[string]any{"text": "hi"},
	})

	ctrl, err := r.New("x-note", dom.NewElement("x-note"), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	root := ctrl.Root()
	if root.Type != dom.ShadowRootNode {
		t.Fatalf("expected an isolated root")
	}
	for i := 0; i < 3; i++ {
		ctrl.Connected()
		ctrl.Disconnected()
	}
	if root.Len() != 0 {
		t.Fatalf("expected disconnect to remove the style element, got %q", dom.RenderString(root))
	}

	ctrl.Connected()
	styleCount := 0
	for _, child := range root.ChildNodes() {
		if child.Tag == "style" {
			styleCount++
		}
	}
	if styleCount != 1 {
		t.Fatalf("expected one style element after reconnect, got %d in %q", styleCount, dom.RenderString(root))
	}
}

func TestController_PropsAreIndependent(t *testing.T) {
	var tracked []any
	r := cardRegistry(t, &tracked)
	a, _ := r.New("x-card", dom.NewElement("x-card"), nil)
	b, _ := r.New("x-card", dom.NewElement("x-card"), nil)

	a.Set("title", "A")
	if got, _ := b.Get("title"); got != "Hello" {
		t.Fatalf("controllers must not share models, got %v", got)
	}
}

func TestController_AmbientContexts(t *testing.T) {
	markers := instance.NewMarkerIndex()
	r := NewRegistry(WithMarkerIndex(markers))
	r.MustRegister(Definition{
		Name:     "x-item",
		Template: template.NewBuilder(`<li></li>`, nil).Bind("li", "text", "[[item.label]]").MustBuild(),
	})

	list := dom.NewElement("ul")
	marker := dom.NewMarker("items")
	host := dom.NewElement("x-item")
	list.AppendChild(marker)
	list.AppendChild(host)
	scopeModel := scope.NewModel(map[string]any{"item": map[string]any{"label": "first"}})
	markers.Set(marker, []scope.Context{scopeModel})

	ctrl, _ := r.New("x-item", host, &Config{LightDOM: true})
	ctrl.Connected()

	if got := host.TextContent(); got != "first" {
		t.Fatalf("expected ambient context to feed the template, got %q", got)
	}
	if contexts := ctrl.Contexts(); len(contexts) != 2 || contexts[1] != scopeModel {
		t.Fatalf("expected component model then ambient contexts")
	}
}
