package ui

import (
	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
)

// Card is an <article> with an optional title header.
type Card struct {
	component.Base
	title    string
	painter  Painter
	children []any
}

// CardType describes Card.
func CardType(p Painter) *component.Type {
	return &component.Type{
		Name:           "Card",
		AllowsChildren: true,
		New: func(opts component.Options) component.Component {
			return NewCard(p, opts)
		},
	}
}

// NewCard creates a Card.
func NewCard(p Painter, opts component.Options) *Card {
	c := &Card{
		Base:    component.NewBase("article"),
		title:   opts.String("title"),
		painter: p,
	}
	finish(c, opts)
	return c
}

// SetChildren stores the body content.
func (c *Card) SetChildren(children []any) {
	c.children = children
}

// Render builds the card.
func (c *Card) Render() component.Component {
	root := c.Root()
	root.ClassList().Add("card")
	root.RemoveChildren()

	if c.title != "" {
		header := dom.CreateElement("header")
		header.ClassList().Add("card-header")
		h := dom.CreateElement("h3")
		h.SetTextContent(c.title)
		header.AppendChild(h)
		root.AppendChild(header)
	}

	body := dom.CreateElement("div")
	body.ClassList().Add("card-body")
	appendAll(c.painter, body, c.children)
	root.AppendChild(body)
	return c
}
