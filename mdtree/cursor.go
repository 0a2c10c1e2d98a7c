package mdtree

// Cursor is a movable position in a Tree. It is a small value: copying a
// cursor duplicates it, and moving the copy leaves the original untouched.
type Cursor struct {
	tree *Tree
	idx  int
}

// Tree returns the tree the cursor walks.
func (c Cursor) Tree() *Tree {
	return c.tree
}

// DescendantIndex returns the stable preorder address of the current node.
func (c Cursor) DescendantIndex() int {
	return c.idx
}

// Node returns the current node.
func (c Cursor) Node() *Node {
	return &c.tree.nodes[c.idx]
}

// Kind returns the current node's kind.
func (c Cursor) Kind() Kind {
	return c.Node().Kind
}

// Role returns the current node's structural role.
func (c Cursor) Role() Role {
	return c.Node().Kind.Role()
}

// Range returns the current node's byte range.
func (c Cursor) Range() (start, end int) {
	n := c.Node()
	return n.Start, n.End
}

// ChildCount returns the number of children of the current node.
func (c Cursor) ChildCount() int {
	return c.Node().ChildCount
}

// Text returns the literal content of the current node, if it has one.
func (c Cursor) Text() string {
	return c.Node().Literal
}

// GotoFirstChild moves to the first child. It reports false and stays put
// when there is none.
func (c *Cursor) GotoFirstChild() bool {
	return c.moveTo(c.Node().FirstChild)
}

// GotoLastChild moves to the last child.
func (c *Cursor) GotoLastChild() bool {
	return c.moveTo(c.Node().LastChild)
}

// GotoNextSibling moves to the next sibling.
func (c *Cursor) GotoNextSibling() bool {
	return c.moveTo(c.Node().NextSibling)
}

// GotoParent moves to the parent.
func (c *Cursor) GotoParent() bool {
	return c.moveTo(c.Node().Parent)
}

// GotoDescendant moves to the node with the given descendant index. It
// reports false and stays put when the index is out of range.
func (c *Cursor) GotoDescendant(i int) bool {
	if i < 0 || i >= len(c.tree.nodes) {
		return false
	}
	c.idx = i
	return true
}

// HasNextSibling reports whether the current node has a next sibling.
func (c Cursor) HasNextSibling() bool {
	return c.Node().NextSibling != none
}

// IsLast reports whether nothing in the document follows the current node:
// neither the node nor any of its ancestors has a next sibling.
func (c Cursor) IsLast() bool {
	for i := c.idx; i != none; i = c.tree.nodes[i].Parent {
		if c.tree.nodes[i].NextSibling != none {
			return false
		}
	}
	return true
}

// Contains reports whether descendant index i lies in the current node's subtree.
func (c Cursor) Contains(i int) bool {
	if i < c.idx {
		return false
	}
	for i != none && i >= c.idx {
		if i == c.idx {
			return true
		}
		i = c.tree.nodes[i].Parent
	}
	return false
}

// Children returns a cursor for each child of the current node, in order.
func (c Cursor) Children() []Cursor {
	out := make([]Cursor, 0, c.ChildCount())
	child := c
	if !child.GotoFirstChild() {
		return out
	}
	for {
		out = append(out, child)
		if !child.GotoNextSibling() {
			return out
		}
	}
}

func (c *Cursor) moveTo(i int) bool {
	if i == none {
		return false
	}
	c.idx = i
	return true
}
