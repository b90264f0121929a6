package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/craft/pkg/dom"
)

// Component is a live instance built by the engine.
type Component interface {
	// Root returns the element the instance renders into.
	Root() *dom.Node

	// Render builds the instance's content and returns the instance.
	Render() Component
}

// ChildrenSetter is implemented by components that accept plain children.
// The engine delivers all children in a single call before Render.
type ChildrenSetter interface {
	SetChildren(children []any)
}

// Handler interprets a subcomponent reference on behalf of its owner.
type Handler func(c Component, ref *Ref) error

// On adapts a method expression on a concrete component type to a Handler.
func On[T Component](fn func(T, *Ref) error) Handler {
	return func(c Component, ref *Ref) error {
		t, ok := c.(T)
		if !ok {
			var want T
			return fmt.Errorf("subcomponent %s: handler expects %T, got %T", ref.FullName, want, c)
		}
		return fn(t, ref)
	}
}

// Type describes a registrable component.
type Type struct {
	// Name is the resolution name used for subcomponent prefixes.
	Name string

	// New constructs an instance from the option bag.
	New func(opts Options) Component

	// AllowsChildren reports whether plain children may be passed.
	AllowsChildren bool

	// Subcomponents maps short names to their handlers.
	Subcomponents map[string]Handler
}

// Validate checks that t can be registered.
func (t *Type) Validate() error {
	if t == nil {
		return fmt.Errorf("component type is nil")
	}
	if t.New == nil {
		return fmt.Errorf("component type %q has no constructor", t.Name)
	}
	for short, h := range t.Subcomponents {
		if short == "" || strings.Contains(short, ".") {
			return fmt.Errorf("component type %q: invalid subcomponent name %q", t.Name, short)
		}
		if h == nil {
			return fmt.Errorf("component type %q: subcomponent %q has no handler", t.Name, short)
		}
	}
	return nil
}

// Subcomponent returns the handler declared for short.
func (t *Type) Subcomponent(short string) (Handler, bool) {
	h, ok := t.Subcomponents[short]
	return h, ok
}

// SubcomponentNames returns the declared short names, sorted.
func (t *Type) SubcomponentNames() []string {
	names := make([]string, 0, len(t.Subcomponents))
	for name := range t.Subcomponents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FullName joins a parent name and a subcomponent short name.
func FullName(parent, short string) string {
	return parent + "." + short
}

// Base carries the root element for embedding in component structs.
type Base struct {
	root *dom.Node
}

// NewBase creates a Base whose root is a new element with tag.
func NewBase(tag string) Base {
	return Base{root: dom.CreateElement(tag)}
}

// Root returns the root element.
func (b *Base) Root() *dom.Node {
	return b.root
}
