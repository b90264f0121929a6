package component

import (
	"strings"

	"github.com/vango-dev/craft/pkg/dom"
)

// ShorthandPrefix marks a subcomponent tag resolved against its enclosing
// component, as in <.Title>.
const ShorthandPrefix = "."

// Ref is a subcomponent reference. It is data for the owning component,
// not an instance.
type Ref struct {
	FullName  string
	ShortName string
	Handler   Handler
	Props     map[string]any
	Children  []any

	pending bool
}

// NewRef creates a resolved reference.
func NewRef(parent, short string, h Handler, props map[string]any, children []any) *Ref {
	return &Ref{
		FullName:  FullName(parent, short),
		ShortName: short,
		Handler:   h,
		Props:     props,
		Children:  children,
	}
}

// PendingRef creates a shorthand reference whose owner is not yet known.
func PendingRef(short string, props map[string]any, children []any) *Ref {
	return &Ref{
		FullName:  ShorthandPrefix + short,
		ShortName: short,
		Props:     props,
		Children:  children,
		pending:   true,
	}
}

// Pending reports whether the reference still awaits its owner.
func (r *Ref) Pending() bool {
	return r.pending
}

// Resolve binds a pending reference to the component crafted as name. The
// handler is looked up in the owner's subcomponent table and is nil when
// none is declared.
func (r *Ref) Resolve(name string, owner *Type) {
	if !r.pending {
		return
	}
	r.FullName = FullName(name, r.ShortName)
	r.Handler, _ = owner.Subcomponent(r.ShortName)
	r.pending = false
}

// BelongsTo reports whether the reference is a direct subcomponent of the
// named component.
func (r *Ref) BelongsTo(name string) bool {
	rest, ok := strings.CutPrefix(r.FullName, name+".")
	return ok && rest != "" && !strings.Contains(rest, ".")
}

// Prop returns a property value.
func (r *Ref) Prop(key string) (any, bool) {
	v, ok := r.Props[key]
	return v, ok
}

// Text concatenates the string and text-node children.
func (r *Ref) Text() string {
	var b strings.Builder
	for _, c := range r.Children {
		switch v := c.(type) {
		case string:
			b.WriteString(v)
		case *dom.Node:
			b.WriteString(v.TextContent())
		}
	}
	return b.String()
}
