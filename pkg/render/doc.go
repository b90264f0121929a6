// Package render serializes dom trees to HTML.
//
// Output is deterministic: attributes are written in name order, class
// lists and style objects are flattened to their attribute form, boolean
// attributes are written bare and function-valued properties (event
// handlers) are never rendered.
//
// # Basic Usage
//
//	html := render.OuterHTML(node)
//
// To stream a node list to a writer:
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	err := r.RenderNodes(w, nodes)
//
// # Full Page Rendering
//
//	err := r.RenderPage(w, render.PageData{Title: "Preview", Body: nodes})
//
// # templ
//
// Templ and PageComponent adapt painted output to templ.Component, so a
// preview page can be served with templ.Handler or embedded in a layout.
//
// # Security
//
// Text and attribute values are escaped. The innerHTML property is written
// verbatim and must only carry trusted markup.
package render
