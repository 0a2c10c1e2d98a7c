package mdtree

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/404Wolf/mdvalidate-sub001/mderrors"
)

// none marks an absent parent, child or sibling link.
const none = -1

// Node is one record of the arena. Links are descendant indices.
type Node struct {
	Kind Kind
	// Start and End delimit the node's bytes in the source, [Start, End).
	Start, End int

	Parent      int
	FirstChild  int
	LastChild   int
	NextSibling int
	ChildCount  int

	// Level is the heading level.
	Level int
	// Ordered, Marker and Tight describe lists.
	Ordered bool
	Marker  byte
	Tight   bool
	// Literal is the textual content of text, code span, code block and HTML nodes.
	Literal string
	// Language is a fenced code block's language tag.
	Language string
	// Destination is a link or image target.
	Destination string
}

// Role returns the node's structural role.
func (n *Node) Role() Role {
	return n.Kind.Role()
}

// Describe returns a readable name for the node, used in diagnostics.
func (n *Node) Describe() string {
	switch n.Kind {
	case KindHeading:
		return fmt.Sprintf("heading (level %d)", n.Level)
	case KindList:
		if n.Ordered {
			return "ordered list"
		}
		return "unordered list"
	default:
		return n.Kind.String()
	}
}

// Tree is an immutable parse tree. Node 0 is the document.
type Tree struct {
	src   []byte
	nodes []Node
}

// Parse parses src into a tree. It fails only when src is not valid UTF-8,
// returning a *mderrors.ParseError that points at the first bad byte.
func Parse(src []byte) (*Tree, error) {
	if !utf8.Valid(src) {
		offset := firstInvalid(src)
		line, col := position(src, offset)
		return nil, &mderrors.ParseError{
			Line:    line,
			Column:  col,
			Message: "invalid UTF-8",
		}
	}
	return build(src), nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level fixtures.
func MustParse(src string) *Tree {
	t, err := Parse([]byte(src))
	if err != nil {
		panic(err)
	}
	return t
}

// Source returns the parsed bytes. Callers must not modify them.
func (t *Tree) Source() []byte {
	return t.src
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at descendant index i.
func (t *Tree) Node(i int) *Node {
	return &t.nodes[i]
}

// Walk returns a cursor positioned at the document root.
func (t *Tree) Walk() Cursor {
	return Cursor{tree: t}
}

// Position converts a byte offset into a 1-based line and column.
func (t *Tree) Position(offset int) (line, col int) {
	return position(t.src, offset)
}

// NodePosition returns the line and column where node i begins. Nodes with
// no bytes of their own borrow the position of their closest ancestor.
func (t *Tree) NodePosition(i int) (line, col int) {
	for i > 0 && t.nodes[i].Start == t.nodes[i].End {
		i = t.nodes[i].Parent
	}
	if i < 0 || i >= len(t.nodes) {
		return 1, 1
	}
	return position(t.src, t.nodes[i].Start)
}

// Text returns the source bytes spanned by node i.
func (t *Tree) Text(i int) string {
	n := &t.nodes[i]
	return string(t.src[n.Start:n.End])
}

// TrimmedLen is the length of the source without trailing whitespace.
func (t *Tree) TrimmedLen() int {
	return len(bytes.TrimRight(t.src, " \t\r\n"))
}

func position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(before, '\n') + 1
	col = utf8.RuneCount(before[lineStart:]) + 1
	return line, col
}

func firstInvalid(src []byte) int {
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(src)
}
