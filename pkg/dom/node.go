package dom

import "strings"

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota // <div>, <button>, etc.
	TextNode                    // Plain text node
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Object is a structured property value, such as an element's style.
type Object = map[string]any

// Attr is a single string attribute.
type Attr struct {
	Key   string
	Value string
}

// Node is an element or text node.
type Node struct {
	Type NodeType // Node type
	Tag  string   // Element tag name (e.g., "div")
	Data string   // Text content for TextNode

	parent   *Node
	children []*Node
	attrs    []Attr
	props    map[string]any
	style    Object
	classes  *ClassList
}

// CreateElement creates a detached element with the given tag.
func CreateElement(tag string) *Node {
	return &Node{Type: ElementNode, Tag: tag}
}

// CreateTextNode creates a detached text node.
func CreateTextNode(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

// IsElement returns true if n is a non-nil element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// IsText returns true if n is a non-nil text node.
func (n *Node) IsText() bool {
	return n != nil && n.Type == TextNode
}

// ClassList returns the element's class token list.
func (n *Node) ClassList() *ClassList {
	if n.classes == nil {
		n.classes = &ClassList{}
	}
	return n.classes
}

// Style returns the element's style object. It is never nil for elements.
func (n *Node) Style() Object {
	if n.style == nil {
		n.style = make(Object)
	}
	return n.style
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Type == TextNode {
		return n.Data
	}
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.Type == TextNode {
		n.Data = text
		return
	}
	n.RemoveChildren()
	if text != "" {
		n.AppendChild(CreateTextNode(text))
	}
}
