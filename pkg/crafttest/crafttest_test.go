package crafttest

import (
	"testing"

	"github.com/vango-dev/craft/pkg/component"
)

type leaf struct{ component.Base }

func (l *leaf) Render() component.Component { return l }

var leafType = &component.Type{
	Name: "Leaf",
	New: func(component.Options) component.Component {
		return &leaf{Base: component.NewBase("i")}
	},
}

func TestHarnessRendersUI(t *testing.T) {
	h := New(t, WithUI())
	res := h.Craft("Dialog", map[string]any{"id": "d1"}, h.Craft(".Title", nil, "Sure?"))

	h.ExpectNoDiagnostics()
	h.ExpectElement(res, "h2")
	h.ExpectAttribute(res, "aria-labelledby", "d1-title")
	h.ExpectContains(res, "Sure?")
	h.ExpectNotContains(res, "dialog-body")
}

func TestHarnessTemplate(t *testing.T) {
	h := New(t, WithUI())
	got := h.Template(`<Button variant="#param:v">Go</Button>`, map[string]any{"v": "primary"})
	want := `<button class="btn btn-primary" type="button">Go</button>`
	if got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}

func TestLenientRecordsDiagnostics(t *testing.T) {
	h := New(t, Lenient(), WithTypes(leafType))

	h.Craft("Leaf", nil, "text")
	h.Paint(".Title", nil)
	h.ExpectDiagnostics("C013")

	h.HTML(h.Craft(".Title", nil))
	h.ExpectDiagnostics("C013", "C017")

	h.Reset()
	h.ExpectNoDiagnostics()
}

func TestStrictPanics(t *testing.T) {
	h := New(t, WithTypes(leafType))

	h.ExpectPanic("C013", func() { h.Craft("Leaf", nil, "text") })
	h.ExpectPanic("C017", func() { h.HTML(h.Craft(".Title", nil)) })
	if got := h.Codes(); len(got) != 2 {
		t.Errorf("Codes() = %v, want two entries", got)
	}
}
