package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/craft/pkg/dom"
)

func el(tag string, children ...*dom.Node) *dom.Node {
	n := dom.CreateElement(tag)
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *dom.Node {
	return dom.CreateTextNode(s)
}

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	html := OuterHTML(text("<script>alert('xss')</script>"))

	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if html != "&lt;script&gt;alert('xss')&lt;/script&gt;" {
		t.Errorf("got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	div := el("div", el("h1", text("Title")), el("p", text("Content")))
	div.ClassList().Add("container")

	got := OuterHTML(div)
	want := `<div class="container"><h1>Title</h1><p>Content</p></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributesSorted(t *testing.T) {
	a := el("a", text("hi"), el("span", text("there")))
	a.SetProp("href", "#")
	a.SetAttribute("data-t", "1")
	a.ClassList().Add("x")
	a.SetProp("tabIndex", 2)

	got := OuterHTML(a)
	want := `<a class="x" data-t="1" href="#" tabindex="2">hi<span>there</span></a>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderStyle(t *testing.T) {
	div := el("div")
	div.SetProp("style", dom.Object{"backgroundColor": "blue", "color": "red"})

	got := OuterHTML(div)
	want := `<div style="background-color: blue; color: red;"></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderBooleanProps(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{"true boolean attr", "disabled", true, `<button disabled></button>`},
		{"false boolean attr", "disabled", false, `<button></button>`},
		{"nil", "title", nil, `<button></button>`},
		{"non-boolean attr", "draggable", true, `<button draggable="true"></button>`},
		{"function", "onclick", func() {}, `<button></button>`},
		{"object", "dataset", dom.Object{"a": 1}, `<button></button>`},
		{"number", "value", 1.5, `<button value="1.5"></button>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := el("button")
			b.SetProp(tt.key, tt.value)
			if got := OuterHTML(b); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFalsePropClearsAttribute(t *testing.T) {
	input := el("input")
	input.SetAttribute("checked", "")
	if got := OuterHTML(input); got != `<input checked>` {
		t.Fatalf("got %q", got)
	}

	input.SetProp("checked", false)
	if got := OuterHTML(input); got != `<input>` {
		t.Errorf("got %q, want %q", got, `<input>`)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	div := el("div")
	div.SetAttribute("title", `say "hi" & <go>`)

	got := OuterHTML(div)
	want := `<div title="say &quot;hi&quot; &amp; &lt;go&gt;"></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderVoidElements(t *testing.T) {
	for _, tag := range []string{"br", "hr", "img", "input", "meta"} {
		if got := OuterHTML(el(tag)); got != "<"+tag+">" {
			t.Errorf("%s: got %q", tag, got)
		}
	}
}

func TestRenderInnerHTMLProp(t *testing.T) {
	div := el("div", text("ignored"))
	div.SetProp("innerHTML", "<b>raw</b>")

	if got := OuterHTML(div); got != `<div><b>raw</b></div>` {
		t.Errorf("got %q", got)
	}
	if got := InnerHTML(div); got != `<b>raw</b>` {
		t.Errorf("InnerHTML got %q", got)
	}
}

func TestInnerHTML(t *testing.T) {
	ul := el("ul", el("li", text("a")), el("li", text("b")))

	if got := InnerHTML(ul); got != `<li>a</li><li>b</li>` {
		t.Errorf("got %q", got)
	}
	if got := InnerHTML(nil); got != "" {
		t.Errorf("nil node: got %q", got)
	}
}

func TestHTMLNodeList(t *testing.T) {
	got := HTML([]*dom.Node{text("x"), el("br"), nil, text("y")})
	if got != "x<br>y" {
		t.Errorf("got %q", got)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})
	ul := el("ul", el("li", text("a")), el("li", el("em", text("b"))))

	got, err := renderer.RenderToString(ul)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<ul>\n  <li>a</li>\n  <li>\n    <em>b</em>\n  </li>\n</ul>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewRenderer(RendererConfig{})

	err := renderer.RenderPage(&buf, PageData{
		Title:       "Tom & Jerry",
		Body:        []*dom.Node{el("main", text("hello"))},
		StyleSheets: []string{"/app.css"},
		Meta:        []MetaTag{{Name: "description", Content: "demo"}},
		Scripts:     []ScriptTag{{Inline: "console.log(1)"}, {Src: "/app.js", Module: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Tom &amp; Jerry</title>",
		`<meta name="description" content="demo">`,
		`<link rel="stylesheet" href="/app.css">`,
		"<main>hello</main>",
		"<script>console.log(1)</script>",
		`<script type="module" src="/app.js"></script>`,
		"</body>\n</html>\n",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}
