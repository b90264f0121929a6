package engine

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/registry"
)

// panel has Title and Body subcomponents.
type panel struct {
	component.Base
	opts    component.Options
	refs    []*component.Ref
	renders int
}

func (p *panel) Render() component.Component {
	p.renders++
	p.Root().ClassList().Add("panel")
	for _, ref := range p.refs {
		h := dom.CreateElement("div")
		h.ClassList().Add(ref.ShortName)
		h.AppendChild(dom.CreateTextNode(ref.Text()))
		p.Root().AppendChild(h)
	}
	return p
}

func (p *panel) addRef(ref *component.Ref) error {
	p.refs = append(p.refs, ref)
	return nil
}

func (p *panel) reject(ref *component.Ref) error {
	return errors.New("footer is not supported")
}

var panelType = &component.Type{
	Name: "Panel",
	New: func(o component.Options) component.Component {
		return &panel{Base: component.NewBase("section"), opts: o}
	},
	Subcomponents: map[string]component.Handler{
		"Title":  component.On((*panel).addRef),
		"Body":   component.On((*panel).addRef),
		"Footer": component.On((*panel).reject),
	},
}

// box allows plain children and renders them with the engine it was given.
type box struct {
	component.Base
	children []any
	renders  int
}

func (b *box) SetChildren(children []any) { b.children = children }

func (b *box) Render() component.Component {
	b.renders++
	return b
}

var boxType = &component.Type{
	Name:           "Box",
	AllowsChildren: true,
	New: func(component.Options) component.Component {
		return &box{Base: component.NewBase("div")}
	},
}

// leaf takes no children.
type leaf struct{ component.Base }

func (l *leaf) Render() component.Component { return l }

var leafType = &component.Type{
	Name: "Leaf",
	New: func(component.Options) component.Component {
		return &leaf{Base: component.NewBase("span")}
	},
}

// careless allows children but cannot receive them.
var carelessType = &component.Type{
	Name:           "Careless",
	AllowsChildren: true,
	New: func(component.Options) component.Component {
		return &leaf{Base: component.NewBase("span")}
	},
}

var nilType = &component.Type{
	Name: "Nil",
	New:  func(component.Options) component.Component { return nil },
}

var typedNilType = &component.Type{
	Name: "TypedNil",
	New: func(component.Options) component.Component {
		var l *leaf
		return l
	},
}

// rootless renders without a root element.
type rootless struct{ component.Base }

func (r *rootless) Render() component.Component { return r }

var rootlessType = &component.Type{
	Name: "Rootless",
	New:  func(component.Options) component.Component { return &rootless{} },
}

type harness struct {
	engine      *Engine
	registry    *registry.Registry
	diagnostics []Diagnostic
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{registry: registry.New(registry.WithLogger(discard()))}
	for _, typ := range []*component.Type{panelType, boxType, leafType, carelessType, nilType, typedNilType, rootlessType} {
		h.registry.MustRegister(typ, "")
	}
	all := append([]Option{
		WithRegistry(h.registry),
		WithLogger(discard()),
		WithDiagnosticHandler(func(d Diagnostic) { h.diagnostics = append(h.diagnostics, d) }),
	}, opts...)
	h.engine = New(all...)
	return h
}

func (h *harness) codes() []string {
	out := make([]string, len(h.diagnostics))
	for i, d := range h.diagnostics {
		out[i] = d.Code
	}
	return out
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
