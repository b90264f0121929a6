package engine

import (
	"time"

	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/tmpl"
)

// Template returns the compiled form of src, compiling it on first use.
func (e *Engine) Template(src string) (*tmpl.Template, error) {
	if t, ok := e.templates.Load(src); ok {
		return t.(*tmpl.Template), nil
	}
	t, err := tmpl.Compile(src)
	if err != nil {
		return nil, err
	}
	actual, _ := e.templates.LoadOrStore(src, t)
	return actual.(*tmpl.Template), nil
}

// Build adapts Craft to tmpl.BuildFunc.
func (e *Engine) Build(target any, p map[string]any, children ...any) any {
	return e.Craft(target, p, children...)
}

// CraftHTML executes a template with Craft as its build function and
// returns one Result per root. Root text becomes an element result holding
// a text node.
func (e *Engine) CraftHTML(src string, params map[string]any) ([]Result, error) {
	t, err := e.Template(src)
	if err != nil {
		return nil, err
	}
	return e.CraftTemplate(t, params)
}

// CraftTemplate is CraftHTML for a compiled template.
func (e *Engine) CraftTemplate(t *tmpl.Template, params map[string]any) ([]Result, error) {
	defer e.metrics.template("craft", time.Now())
	roots, err := t.Execute(e.Build, params)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(roots))
	for _, r := range roots {
		out = append(out, e.toResults(r)...)
	}
	return out, nil
}

// PaintHTML executes a template and materializes every root. A root
// subcomponent reference is returned unchanged.
func (e *Engine) PaintHTML(src string, params map[string]any) ([]Result, error) {
	t, err := e.Template(src)
	if err != nil {
		return nil, err
	}
	return e.PaintTemplate(t, params)
}

// PaintTemplate is PaintHTML for a compiled template.
func (e *Engine) PaintTemplate(t *tmpl.Template, params map[string]any) ([]Result, error) {
	defer e.metrics.template("paint", time.Now())
	e.metrics.paint()
	roots, err := t.Execute(e.Build, params)
	if err != nil {
		return nil, err
	}
	var out []Result
	for _, r := range roots {
		if res, ok := r.(Result); ok && res.Kind == ResultRef {
			out = append(out, res)
			continue
		}
		for _, n := range e.Materialize(r) {
			out = append(out, ElementResult(n))
		}
	}
	return out, nil
}

// toResults converts a template root to Results.
func (e *Engine) toResults(v any) []Result {
	switch x := v.(type) {
	case Result:
		if x.IsNone() {
			return nil
		}
		return []Result{x}
	case string:
		return []Result{ElementResult(dom.CreateTextNode(x))}
	default:
		var out []Result
		for _, n := range e.materialize([]any{v}) {
			out = append(out, ElementResult(n))
		}
		return out
	}
}

// Nodes returns the nodes held by rs, skipping references and empty
// results.
func Nodes(rs []Result) []*dom.Node {
	out := make([]*dom.Node, 0, len(rs))
	for _, r := range rs {
		if n := r.Node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}
