package dom

// Parent returns the node's parent, or nil if detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// AppendChild appends child, detaching it from any previous parent.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref. A nil ref, or a ref that is not a
// child of n, appends. Inserting ref before itself leaves it in place.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if child == nil || child == n || child == ref {
		return child
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n

	idx := n.indexOf(ref)
	if idx < 0 {
		n.children = append(n.children, child)
		return child
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	return child
}

// RemoveChild detaches child from n. It returns false if child is not a
// child of n.
func (n *Node) RemoveChild(child *Node) bool {
	idx := n.indexOf(child)
	if idx < 0 {
		return false
	}
	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	return true
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// ReplaceChildren removes every child of n and appends nodes in order.
func (n *Node) ReplaceChildren(nodes ...*Node) {
	n.RemoveChildren()
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

func (n *Node) indexOf(child *Node) int {
	if child == nil {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the visited node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first descendant-or-self matching pred, or nil.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant-or-self matching pred in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ElementsByTag returns every descendant element with the given tag.
func (n *Node) ElementsByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.children {
		out = append(out, c.FindAll(func(x *Node) bool {
			return x.Type == ElementNode && x.Tag == tag
		})...)
	}
	return out
}

// Container is an insertion target: a node, or a collection whose first
// element is the node.
type Container interface {
	Container() *Node
}

// Container implements Container.
func (n *Node) Container() *Node {
	return n
}

// NodeList is an ordered collection of nodes.
type NodeList []*Node

// Container implements Container by returning the first node.
func (l NodeList) Container() *Node {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}
