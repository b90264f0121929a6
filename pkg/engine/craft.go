package engine

import (
	"fmt"
	"strings"

	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/props"
)

// Craft instantiates target with props and children.
//
// target is a *component.Type or a name. Children may be strings, nodes,
// instances, Results, references, nil/false, or slices of those.
func (e *Engine) Craft(target any, p map[string]any, children ...any) Result {
	res := e.craft(target, p, children)
	e.metrics.craft(res.Kind)
	return res
}

func (e *Engine) craft(target any, p map[string]any, children []any) Result {
	switch t := target.(type) {
	case *component.Type:
		if t == nil {
			e.report(cerrors.New("C003").WithSubject("<nil>"), "")
			return Result{}
		}
		return e.instantiate(t, t.Name, p, children)

	case string:
		if t == "" {
			e.report(cerrors.New("C003").WithDetail("An empty name cannot be crafted."), "")
			return Result{}
		}
		if typ := e.registry.Get(t); typ != nil {
			return e.instantiate(typ, t, p, children)
		}
		if short, ok := strings.CutPrefix(t, component.ShorthandPrefix); ok {
			return RefResult(component.PendingRef(short, p, children))
		}
		if sc := e.registry.GetSubcomponent(t); sc != nil {
			parent := strings.TrimSuffix(t, "."+sc.ShortName)
			return RefResult(component.NewRef(parent, sc.ShortName, sc.Handler, p, children))
		}
		return e.element(t, p, children)

	default:
		e.report(cerrors.New("C003").WithSubject(fmt.Sprintf("%T", target)), "")
		return Result{}
	}
}

// element creates a native element. Its children are materialized and
// appended immediately.
func (e *Engine) element(tag string, p map[string]any, children []any) Result {
	el := dom.CreateElement(tag)
	props.Set(el, p)
	if len(children) > 0 {
		for _, n := range e.materialize(children) {
			el.AppendChild(n)
		}
	}
	return ElementResult(el)
}

func (e *Engine) instantiate(typ *component.Type, name string, p map[string]any, children []any) Result {
	parts := props.Partition(p)
	opts := component.Options(parts.Options)
	opts[component.CraftedOption] = true

	inst := typ.New(opts)
	if isNil(inst) {
		e.report(cerrors.New("C016").WithSubject(name), name)
		return Result{}
	}

	flat := flatten(children)
	switch {
	case hasRef(flat):
		e.applySubcomponents(inst, typ, name, flat)
	case hasContent(flat):
		e.applyChildren(inst, typ, name, children)
	}

	inst.Render()

	root := inst.Root()
	if root == nil {
		e.report(cerrors.New("C021").WithSubject(name), name)
		return InstanceResult(inst)
	}
	props.Set(root, parts.Attrs)
	if parts.ClassName != "" {
		root.ClassList().Add(parts.ClassName)
	}
	return InstanceResult(inst)
}

// applySubcomponents hands each reference to its handler in order.
func (e *Engine) applySubcomponents(inst component.Component, typ *component.Type, name string, children []any) {
	for _, c := range children {
		ref, ok := c.(*component.Ref)
		if !ok || ref == nil {
			if !skippable(c) {
				e.report(cerrors.New("C012").WithSubject(name), name, itemAttr(c))
			}
			continue
		}

		if ref.Pending() {
			ref.Resolve(name, typ)
		}
		if !ref.BelongsTo(name) {
			e.report(cerrors.New("C010").WithSubject(ref.FullName), name, "subcomponent", ref.FullName)
			continue
		}
		if ref.Handler == nil {
			e.report(cerrors.New("C011").WithSubject(ref.FullName), name, "subcomponent", ref.FullName)
			continue
		}
		if err := ref.Handler(inst, ref); err != nil {
			e.report(cerrors.New("C015").WithSubject(ref.FullName).Wrap(err).WithDetail(err.Error()),
				name, "subcomponent", ref.FullName)
		}
	}
}

// applyChildren delivers plain children to the instance in one call.
func (e *Engine) applyChildren(inst component.Component, typ *component.Type, name string, children []any) {
	if !typ.AllowsChildren {
		e.report(cerrors.New("C013").WithSubject(name), name)
		return
	}
	setter, ok := inst.(component.ChildrenSetter)
	if !ok {
		e.report(cerrors.New("C014").WithSubject(name), name)
		return
	}
	out := make([]any, len(children))
	for i, c := range children {
		out[i] = unwrapDeep(c)
	}
	setter.SetChildren(out)
}

func hasRef(items []any) bool {
	for _, it := range items {
		if ref, ok := it.(*component.Ref); ok && ref != nil {
			return true
		}
	}
	return false
}

func hasContent(items []any) bool {
	for _, it := range items {
		if !skippable(it) {
			return true
		}
	}
	return false
}
