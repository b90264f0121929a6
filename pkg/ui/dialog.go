package ui

import (
	"fmt"

	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/props"
)

// Dialog is a modal dialog with Title, Body and Actions sections.
type Dialog struct {
	component.Base
	painter Painter
	id      string
	open    bool
	title   *component.Ref
	body    *component.Ref
	actions *component.Ref
}

// DialogType describes Dialog.
func DialogType(p Painter) *component.Type {
	return &component.Type{
		Name: "Dialog",
		New: func(opts component.Options) component.Component {
			return NewDialog(p, opts)
		},
		Subcomponents: map[string]component.Handler{
			"Title":   component.On((*Dialog).setTitle),
			"Body":    component.On((*Dialog).setBody),
			"Actions": component.On((*Dialog).setActions),
		},
	}
}

// NewDialog creates a Dialog. The "id" option sets the element id; one is
// generated otherwise. The dialog is hidden unless "open" is set.
func NewDialog(p Painter, opts component.Options) *Dialog {
	d := &Dialog{
		Base:    component.NewBase("div"),
		painter: p,
		id:      opts.String("id"),
		open:    opts.Bool("open"),
	}
	if d.id == "" {
		d.id = newID("dialog")
	}
	finish(d, opts)
	return d
}

func (d *Dialog) setTitle(ref *component.Ref) error {
	if d.title != nil {
		return fmt.Errorf("dialog %s already has a title", d.id)
	}
	d.title = ref
	return nil
}

func (d *Dialog) setBody(ref *component.Ref) error {
	if d.body != nil {
		return fmt.Errorf("dialog %s already has a body", d.id)
	}
	d.body = ref
	return nil
}

func (d *Dialog) setActions(ref *component.Ref) error {
	if d.actions != nil {
		return fmt.Errorf("dialog %s already has actions", d.id)
	}
	d.actions = ref
	return nil
}

// ID returns the dialog element id.
func (d *Dialog) ID() string {
	return d.id
}

// TitleID returns the id of the title element.
func (d *Dialog) TitleID() string {
	return d.id + "-title"
}

// Render builds the dialog.
func (d *Dialog) Render() component.Component {
	root := d.Root()
	root.RemoveChildren()
	root.ClassList().Add("dialog")
	root.SetProp("id", d.id)
	root.SetProp("role", "dialog")
	root.SetAttribute("aria-modal", "true")
	root.SetProp("hidden", !d.open)

	if d.title != nil {
		root.SetAttribute("aria-labelledby", d.TitleID())
		h := d.section("h2", "dialog-title", d.title)
		h.SetProp("id", d.TitleID())
		root.AppendChild(h)
	} else {
		root.RemoveAttribute("aria-labelledby")
	}
	if d.body != nil {
		root.AppendChild(d.section("div", "dialog-body", d.body))
	}
	if d.actions != nil {
		root.AppendChild(d.section("footer", "dialog-actions", d.actions))
	}
	return d
}

// section renders a subcomponent into a new element. The reference's own
// properties are applied to that element.
func (d *Dialog) section(tag, class string, ref *component.Ref) *dom.Node {
	el := dom.CreateElement(tag)
	props.Set(el, ref.Props)
	el.ClassList().Add(class)
	appendAll(d.painter, el, ref.Children)
	return el
}
