// Package dom provides the in-memory element tree that crafted templates
// materialize into.
//
// The tree mirrors the parts of a browser DOM the crafting engine relies on:
// elements with attributes, properties and a class list, structured
// property sub-objects (most notably style), text nodes, and ordered child
// insertion.
//
// # Core Types
//
// Node is either an element or a text node. Elements carry three kinds of
// state:
//
//   - attributes: string key/value pairs set with SetAttribute (aria-*, data-*)
//   - properties: arbitrary values set with SetProp (href, id, tabIndex, ...)
//   - structured objects: maps reachable through Object (style, or any
//     property previously assigned an Object)
//
// The class attribute and className property are both views of the
// element's ClassList. The style attribute and style property are both views
// of the style Object.
//
// # Building Trees
//
//	ul := dom.CreateElement("ul")
//	li := dom.CreateElement("li")
//	li.AppendChild(dom.CreateTextNode("first"))
//	ul.AppendChild(li)
//	ul.ClassList().Add("menu", "compact")
//
// # Containers
//
// Insertion helpers accept a Container: either a *Node, or a NodeList whose
// first element is the target.
package dom
