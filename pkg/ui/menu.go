package ui

import (
	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/props"
)

// Menu is a list of menu items.
type Menu struct {
	component.Base
	painter Painter
	label   string
	items   []*component.Ref
}

// MenuType describes Menu.
func MenuType(p Painter) *component.Type {
	return &component.Type{
		Name: "Menu",
		New: func(opts component.Options) component.Component {
			return NewMenu(p, opts)
		},
		Subcomponents: map[string]component.Handler{
			"Item": component.On((*Menu).addItem),
		},
	}
}

// NewMenu creates a Menu. The "label" option becomes its aria-label.
func NewMenu(p Painter, opts component.Options) *Menu {
	m := &Menu{
		Base:    component.NewBase("ul"),
		painter: p,
		label:   opts.String("label"),
	}
	finish(m, opts)
	return m
}

func (m *Menu) addItem(ref *component.Ref) error {
	m.items = append(m.items, ref)
	return nil
}

// Len returns the number of items.
func (m *Menu) Len() int {
	return len(m.items)
}

// Render builds the menu.
func (m *Menu) Render() component.Component {
	root := m.Root()
	root.RemoveChildren()
	root.ClassList().Add("menu")
	root.SetProp("role", "menu")
	if m.label != "" {
		root.SetAttribute("aria-label", m.label)
	}
	for _, ref := range m.items {
		root.AppendChild(m.item(ref))
	}
	return m
}

// item renders one entry. "value" becomes data-value and "disabled" sets
// aria-disabled; other properties go to the <li>.
func (m *Menu) item(ref *component.Ref) *dom.Node {
	li := dom.CreateElement("li")
	li.SetProp("role", "menuitem")
	li.ClassList().Add("menu-item")

	rest := make(map[string]any, len(ref.Props))
	for k, v := range ref.Props {
		switch k {
		case "value":
			li.SetAttribute("data-value", props.AttrString(v))
		case "disabled":
			if component.Options(ref.Props).Bool("disabled") {
				li.SetAttribute("aria-disabled", "true")
			}
		default:
			rest[k] = v
		}
	}
	parts := props.Partition(rest)
	props.Set(li, parts.Attrs)
	props.Set(li, parts.Options)
	if parts.ClassName != "" {
		li.ClassList().Add(parts.ClassName)
	}
	li.SetProp("tabIndex", -1)
	appendAll(m.painter, li, ref.Children)
	return li
}
