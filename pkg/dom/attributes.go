package dom

import (
	"fmt"
	"sort"
)

// SetAttribute sets a string attribute. The class and style attributes are
// routed to the class list and the style object.
func (n *Node) SetAttribute(key, value string) {
	switch key {
	case "class":
		n.ClassList().Set(value)
		return
	case "style":
		n.setStyleText(value)
		return
	}
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Value: value})
}

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(key string) (string, bool) {
	switch key {
	case "class":
		if n.classes == nil || n.classes.Len() == 0 {
			return "", false
		}
		return n.classes.String(), true
	case "style":
		if len(n.style) == 0 {
			return "", false
		}
		return StyleText(n.style), true
	}
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(key string) bool {
	_, ok := n.GetAttribute(key)
	return ok
}

// RemoveAttribute removes the attribute if present.
func (n *Node) RemoveAttribute(key string) {
	switch key {
	case "class":
		n.classes = nil
		return
	case "style":
		n.style = nil
		return
	}
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns the string attributes in insertion order. Class and
// style are not included; see ClassList and Style.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// SetProp assigns an element property.
//
// className replaces the class list, style replaces the style object (from
// a CSS string or an Object) and textContent replaces the children. Any
// other name is stored as-is.
func (n *Node) SetProp(name string, value any) {
	switch name {
	case "className":
		if value == nil {
			n.ClassList().Set("")
			return
		}
		n.ClassList().Set(fmt.Sprint(value))
		return
	case "style":
		switch v := value.(type) {
		case nil:
			n.style = nil
		case string:
			n.setStyleText(v)
		case Object:
			n.style = cloneObject(v)
		default:
			n.setStyleText(fmt.Sprint(v))
		}
		return
	case "textContent":
		if value == nil {
			n.SetTextContent("")
			return
		}
		n.SetTextContent(fmt.Sprint(value))
		return
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	if obj, ok := value.(Object); ok {
		value = cloneObject(obj)
	}
	n.props[name] = value
}

// Prop returns an element property and whether it is set.
func (n *Node) Prop(name string) (any, bool) {
	switch name {
	case "className":
		if n.classes == nil {
			return "", false
		}
		return n.classes.String(), true
	case "style":
		return n.Style(), true
	case "textContent":
		return n.TextContent(), true
	}
	v, ok := n.props[name]
	return v, ok
}

// DeleteProp removes a stored property.
func (n *Node) DeleteProp(name string) {
	delete(n.props, name)
}

// PropNames returns the names of stored properties, sorted. The className,
// style and textContent views are not included.
func (n *Node) PropNames() []string {
	names := make([]string, 0, len(n.props))
	for k := range n.props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Object returns the structured sub-object exposed under name: the style
// object, or a property previously assigned an Object.
func (n *Node) Object(name string) (Object, bool) {
	if n.Type != ElementNode {
		return nil, false
	}
	if name == "style" {
		return n.Style(), true
	}
	obj, ok := n.props[name].(Object)
	return obj, ok
}

func (n *Node) setStyleText(text string) {
	style, err := ParseStyle(text)
	if err != nil {
		// Browsers drop unparseable declarations; keep what we had.
		return
	}
	n.style = style
}

func cloneObject(src Object) Object {
	dst := make(Object, len(src))
	for k, v := range src {
		if sub, ok := v.(Object); ok {
			v = cloneObject(sub)
		}
		dst[k] = v
	}
	return dst
}
