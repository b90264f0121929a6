// Package craft is the public API for building UI trees from registered
// components.
//
// Most programs register their components once and then craft or paint:
//
//	import "github.com/vango-dev/craft"
//
//	craft.MustRegister(ui.ButtonType(craft.Default()), "")
//
//	btn := craft.Paint("Button", craft.Props{"variant": "primary"}, "Save")
//	fmt.Println(craft.HTML(btn))
//
// Templates bind the same engine:
//
//	nodes, err := craft.PaintHTML(`<Card title="#param:t"><p>hi</p></Card>`,
//	    map[string]any{"t": "Stats"})
//
// The package-level functions use a default engine backed by
// registry.Default. Programs that need isolation create their own with
// engine.New.
package craft

import (
	"sync/atomic"

	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/props"
	"github.com/vango-dev/craft/pkg/registry"
	"github.com/vango-dev/craft/pkg/render"
)

// =============================================================================
// Types
// =============================================================================

// Component is a crafted component instance.
type Component = component.Component

// Type describes a registrable component.
type Type = component.Type

// Ref is a subcomponent reference.
type Ref = component.Ref

// Options are the non-attribute properties handed to a constructor.
type Options = component.Options

// Handler receives a subcomponent reference.
type Handler = component.Handler

// Props is a property bag.
type Props = props.Props

// Result is the outcome of Craft or Paint.
type Result = engine.Result

// RenderOptions control RenderInto.
type RenderOptions = engine.RenderOptions

// Node is an element or text node.
type Node = dom.Node

// =============================================================================
// Default engine
// =============================================================================

var defaultEngine atomic.Pointer[engine.Engine]

func init() {
	defaultEngine.Store(engine.New(engine.WithRegistry(registry.Default)))
}

// Default returns the engine used by the package-level functions.
func Default() *engine.Engine {
	return defaultEngine.Load()
}

// SetDefault replaces the default engine. It returns the previous one.
func SetDefault(e *engine.Engine) *engine.Engine {
	return defaultEngine.Swap(e)
}

// =============================================================================
// Registry
// =============================================================================

// Register adds t to the default engine's registry under name, or under
// t.Name when name is empty.
func Register(t *Type, name string) error {
	return Default().Registry().Register(t, name)
}

// MustRegister is Register that panics on error.
func MustRegister(t *Type, name string) {
	Default().Registry().MustRegister(t, name)
}

// Unregister removes a component from the default engine's registry.
func Unregister(name string) error {
	return Default().Registry().Unregister(name)
}

// =============================================================================
// Crafting
// =============================================================================

// Craft instantiates target with the default engine.
func Craft(target any, p map[string]any, children ...any) Result {
	return Default().Craft(target, p, children...)
}

// Paint crafts target and materializes it to a single node.
func Paint(target any, p map[string]any, children ...any) Result {
	return Default().Paint(target, p, children...)
}

// Materialize flattens items into nodes.
func Materialize(items ...any) []*Node {
	return Default().Materialize(items...)
}

// RenderInto materializes items and inserts them into target.
func RenderInto(target dom.Container, items any, opts RenderOptions) []*Node {
	return Default().RenderInto(target, items, opts)
}

// CraftHTML crafts every root of a template.
func CraftHTML(src string, params map[string]any) ([]Result, error) {
	return Default().CraftHTML(src, params)
}

// PaintHTML paints every root of a template.
func PaintHTML(src string, params map[string]any) ([]Result, error) {
	return Default().PaintHTML(src, params)
}

// HTML materializes items and returns their markup.
func HTML(items ...any) string {
	return render.HTML(Default().Materialize(items...))
}
