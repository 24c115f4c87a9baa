package dom

import "testing"

func TestParseRenderRoundTrip(t *testing.T) {
	markup := `<div class="card"><span>hi</span><!--note--></div>`
	frag, err := ParseFragment(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := RenderString(frag); got != markup {
		t.Fatalf("round trip mismatch\nwant: %q\n got: %q", markup, got)
	}
}

func TestRender_ShadowRootAsTemplate(t *testing.T) {
	host := NewElement("x-card")
	root := host.AttachShadow(ShadowInit{})
	root.AppendChild(NewText("inside"))
	host.AppendChild(NewText("light"))

	want := `<x-card><template shadowrootmode="open">inside</template>light</x-card>`
	if got := RenderString(host); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestSetInnerHTML(t *testing.T) {
	n := NewElement("div")
	n.AppendChild(NewText("old"))
	if err := n.SetInnerHTML(`<b>new</b>`); err != nil {
		t.Fatalf("set inner html: %v", err)
	}
	if got := n.InnerHTML(); got != `<b>new</b>` {
		t.Fatalf("unexpected inner html %q", got)
	}
	if n.TextContent() != "new" {
		t.Fatalf("unexpected text %q", n.TextContent())
	}
}
