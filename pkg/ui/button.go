package ui

import "github.com/vango-dev/craft/pkg/component"

// ButtonOptions configure a Button.
type ButtonOptions struct {
	Variant  string `option:"variant"`
	Disabled bool   `option:"disabled"`
	Type     string `option:"type"`
}

// Button is a styled <button>.
type Button struct {
	component.Base
	opts     ButtonOptions
	painter  Painter
	children []any
}

// ButtonType describes Button.
func ButtonType(p Painter) *component.Type {
	return &component.Type{
		Name:           "Button",
		AllowsChildren: true,
		New: func(opts component.Options) component.Component {
			return NewButton(p, opts)
		},
	}
}

// NewButton creates a Button. Option values that do not decode are logged
// and fall back to defaults.
func NewButton(p Painter, opts component.Options) *Button {
	b := &Button{Base: component.NewBase("button"), painter: p}
	decodeOptions(p, "Button", opts, &b.opts)
	if b.opts.Variant == "" {
		b.opts.Variant = "default"
	}
	if b.opts.Type == "" {
		b.opts.Type = "button"
	}
	finish(b, opts)
	return b
}

// SetChildren stores the label content.
func (b *Button) SetChildren(children []any) {
	b.children = children
}

// Render builds the button.
func (b *Button) Render() component.Component {
	root := b.Root()
	root.ClassList().Add("btn", "btn-"+b.opts.Variant)
	root.SetProp("type", b.opts.Type)
	root.SetProp("disabled", b.opts.Disabled)
	root.RemoveChildren()
	appendAll(b.painter, root, b.children)
	return b
}

// Variant returns the visual variant.
func (b *Button) Variant() string {
	return b.opts.Variant
}

// Label returns the button's text content.
func (b *Button) Label() string {
	return b.Root().TextContent()
}
