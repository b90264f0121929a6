package render

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vango-dev/craft/pkg/dom"
)

// Templ wraps painted nodes as a templ.Component so they can be embedded in
// templ layouts or served with templ.Handler.
func Templ(nodes ...*dom.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return NewRenderer(RendererConfig{}).RenderNodes(w, nodes)
	})
}

// PageComponent wraps a full page as a templ.Component.
func PageComponent(page PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return NewRenderer(RendererConfig{}).RenderPage(w, page)
	})
}
