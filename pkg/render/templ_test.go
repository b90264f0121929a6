package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/craft/pkg/dom"
)

func TestTemplComponent(t *testing.T) {
	p := el("p", text("painted"))
	var buf bytes.Buffer

	if err := Templ(p, text("!")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "<p>painted</p>!" {
		t.Errorf("got %q", got)
	}
}

func TestPageComponent(t *testing.T) {
	var buf bytes.Buffer
	page := PageData{Title: "Gallery", Body: []*dom.Node{el("h1", text("Gallery"))}}

	if err := PageComponent(page).Render(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "<h1>Gallery</h1>") {
		t.Errorf("got %q", buf.String())
	}
}
