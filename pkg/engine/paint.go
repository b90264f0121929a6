package engine

import (
	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
)

// Paint crafts target and materializes the outcome to a single node.
// Subcomponent references are returned unchanged.
func (e *Engine) Paint(target any, p map[string]any, children ...any) Result {
	e.metrics.paint()
	res := e.Craft(target, p, children...)
	if res.Kind == ResultRef || res.Kind == ResultNone {
		return res
	}
	if res.Node() == nil {
		// A rootless instance was already reported by Craft.
		return Result{}
	}
	nodes := e.Materialize(res)
	if len(nodes) == 0 {
		return Result{}
	}
	return ElementResult(nodes[0])
}

// Materialize flattens items into insertion-ready nodes, in order.
//
// nil and false are skipped, nodes are kept, strings become text nodes,
// slices are spliced in place, and instances contribute their root.
// Anything else is reported and dropped. Materialize never panics outside
// strict mode.
func (e *Engine) Materialize(items ...any) []*dom.Node {
	nodes := e.materialize(items)
	e.metrics.materialized(len(nodes))
	return nodes
}

func (e *Engine) materialize(items []any) []*dom.Node {
	var out []*dom.Node
	for _, it := range flatten(items) {
		if skippable(it) {
			continue
		}
		switch v := it.(type) {
		case *dom.Node:
			out = append(out, v)
		case string:
			out = append(out, dom.CreateTextNode(v))
		case *component.Ref:
			code := "C020"
			if v.Pending() {
				code = "C017"
			}
			e.report(cerrors.New(code).WithSubject(v.FullName), "", "subcomponent", v.FullName)
		case component.Component:
			root := v.Root()
			if root == nil {
				e.report(cerrors.New("C021").WithSubject(describe(v)), "", itemAttr(v))
				continue
			}
			out = append(out, root)
		default:
			e.report(cerrors.New("C020").WithSubject(describe(v)), "", itemAttr(v))
		}
	}
	return out
}

// RenderOptions control RenderInto.
type RenderOptions struct {
	// Empty removes the target's children first.
	Empty bool

	// Prepend inserts before the target's first child instead of appending.
	Prepend bool
}

// RenderInto materializes items and inserts them into target. target may be
// a node or a node list, in which case its first node is used. It returns
// the inserted nodes.
func (e *Engine) RenderInto(target dom.Container, items any, opts RenderOptions) []*dom.Node {
	var container *dom.Node
	if target != nil {
		container = target.Container()
	}
	if container == nil || !container.IsElement() {
		e.report(cerrors.New("C022"), "")
		return nil
	}

	nodes := e.Materialize(items)
	if opts.Empty {
		container.RemoveChildren()
	}

	mode := "append"
	if opts.Prepend {
		mode = "prepend"
		first := container.FirstChild()
		for _, n := range nodes {
			container.InsertBefore(n, first)
		}
	} else {
		for _, n := range nodes {
			container.AppendChild(n)
		}
	}
	if opts.Empty {
		mode = "replace"
	}
	e.metrics.insertion(mode)
	return nodes
}
