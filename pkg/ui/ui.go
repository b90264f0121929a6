// Package ui provides reference components built on the crafting engine.
//
// Button and Card take plain children. Dialog takes Title, Body and
// Actions subcomponents. Menu takes any number of Item subcomponents.
//
// Components render their children through a Painter, usually the engine
// that crafts them:
//
//	reg := registry.New()
//	eng := engine.New(engine.WithRegistry(reg))
//	if err := ui.Register(reg, eng); err != nil {
//	    return err
//	}
//
// A component constructed directly, outside the engine, renders itself
// immediately. A crafted one waits for the engine to call Render after its
// children are delivered.
package ui

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/registry"
)

// Painter materializes children into nodes.
type Painter interface {
	Materialize(items ...any) []*dom.Node
}

// Types returns the component types bound to p, sorted by name.
func Types(p Painter) []*component.Type {
	return []*component.Type{
		ButtonType(p),
		CardType(p),
		DialogType(p),
		MenuType(p),
	}
}

// Register registers every type with reg.
func Register(reg *registry.Registry, p Painter) error {
	for _, t := range Types(p) {
		if err := reg.Register(t, t.Name); err != nil {
			return err
		}
	}
	return nil
}

// loggerOf returns the painter's logger when it has one.
func loggerOf(p Painter) *slog.Logger {
	if l, ok := p.(interface{ Logger() *slog.Logger }); ok && l.Logger() != nil {
		return l.Logger()
	}
	return slog.Default()
}

// decodeOptions decodes opts into out. Values that do not fit are logged
// and the affected fields keep their zero value.
func decodeOptions(p Painter, name string, opts component.Options, out any) {
	if err := opts.Decode(out); err != nil {
		loggerOf(p).Warn("invalid component options", "component", name, "error", err)
	}
}

// newID returns a short unique element id with the given prefix.
func newID(prefix string) string {
	id := uuid.NewString()
	return prefix + "-" + strings.SplitN(id, "-", 2)[0]
}

// appendAll materializes children and appends them to parent.
func appendAll(p Painter, parent *dom.Node, children []any) {
	for _, n := range p.Materialize(children...) {
		parent.AppendChild(n)
	}
}

// finish renders c right away unless the engine is crafting it.
func finish(c component.Component, opts component.Options) component.Component {
	if !opts.Crafted() {
		c.Render()
	}
	return c
}
