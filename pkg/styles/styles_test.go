package styles

import (
	"testing"

	"github.com/goliatone/go-stamp/pkg/dom"
)

const cardCSS = ".card { display: block; }"

func TestCSS(t *testing.T) {
	sheet := CSS(cardCSS, true)
	if sheet.Sheet == nil || sheet.Element != nil || sheet.Text() != cardCSS {
		t.Fatalf("expected constructible sheet, got %+v", sheet)
	}
	el := CSS(cardCSS, false)
	if el.Element == nil || el.Element.Tag != "style" || el.Text() != cardCSS {
		t.Fatalf("expected style element, got %+v", el)
	}
	if !(Style{}).IsZero() {
		t.Fatalf("zero style must report IsZero")
	}
}

func TestAttach_AdoptsIntoShadowRoot(t *testing.T) {
	host := dom.NewElement("x-card")
	root := host.AttachShadow(dom.ShadowInit{})
	style := CSS(cardCSS, true)

	if el := Attach(root, style); el != nil {
		t.Fatalf("adoption must not return an element")
	}
	Attach(root, style)

	sheets := root.AdoptedStyleSheets()
	if len(sheets) != 1 || sheets[0] != style.Sheet {
		t.Fatalf("expected the shared sheet adopted once, got %d", len(sheets))
	}
	if root.Len() != 0 {
		t.Fatalf("adoption must not add nodes")
	}
}

func TestAttach_WalksToRootNode(t *testing.T) {
	doc := dom.NewDocument(true)
	body := dom.NewElement("body")
	doc.AppendChild(body)
	style := CSS(cardCSS, true)

	Attach(body, style)

	if got := doc.AdoptedStyleSheets(); len(got) != 1 || got[0] != style.Sheet {
		t.Fatalf("expected sheet adopted by the document, got %d sheets", len(got))
	}
}

func TestAttach_FallsBackToStyleElement(t *testing.T) {
	doc := dom.NewDocument(false)
	body := dom.NewElement("body")
	doc.AppendChild(body)

	el := Attach(body, CSS(cardCSS, true))

	if got := dom.RenderString(body); got != "<body><style>"+cardCSS+"</style></body>" {
		t.Fatalf("unexpected render %q", got)
	}
	if first, _ := body.ChildAt(0); el == nil || el != first {
		t.Fatalf("expected the appended element returned")
	}
}

func TestAttach_ClonesElementPerRoot(t *testing.T) {
	style := CSS(cardCSS, false)
	a := dom.NewElement("div")
	b := dom.NewElement("div")

	Attach(a, style)
	Attach(b, style)

	first, _ := a.ChildAt(0)
	second, _ := b.ChildAt(0)
	if first == nil || second == nil || first == second || first == style.Element {
		t.Fatalf("expected an independent clone per root")
	}
	if first.TextContent() != cardCSS {
		t.Fatalf("unexpected clone text %q", first.TextContent())
	}
}
