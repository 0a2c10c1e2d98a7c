package mdtree

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is safe for concurrent use; each Parse gets its own context.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

type builder struct {
	src   []byte
	nodes []Node
}

func build(src []byte) *Tree {
	root := markdown.Parser().Parse(text.NewReader(src))
	b := &builder{src: src, nodes: make([]Node, 0, 64)}
	b.add(root, none)
	return &Tree{src: src, nodes: b.nodes}
}

// add appends n and its subtree in preorder and returns n's index.
func (b *builder) add(n ast.Node, parent int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{
		Parent:      parent,
		FirstChild:  none,
		LastChild:   none,
		NextSibling: none,
	})
	b.describe(idx, n)

	if !isLeaf(n) {
		for c := n.FirstChild(); c != nil; {
			var child int
			if isText(c) {
				child, c = b.addTextRun(c, idx)
			} else {
				child = b.add(c, idx)
				c = c.NextSibling()
			}
			b.link(idx, child)
		}
	}

	b.span(idx, n)
	return idx
}

// addTextRun merges c and the text siblings directly after it into one node.
func (b *builder) addTextRun(c ast.Node, parent int) (int, ast.Node) {
	start, end := -1, -1
	for ; c != nil && isText(c); c = c.NextSibling() {
		t := c.(*ast.Text)
		if start < 0 {
			start = t.Segment.Start
		}
		end = t.Segment.Stop
	}
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{
		Kind:        KindText,
		Start:       start,
		End:         end,
		Parent:      parent,
		FirstChild:  none,
		LastChild:   none,
		NextSibling: none,
		Literal:     string(b.src[start:end]),
	})
	return idx, c
}

func (b *builder) link(parent, child int) {
	p := &b.nodes[parent]
	if p.LastChild == none {
		p.FirstChild = child
	} else {
		b.nodes[p.LastChild].NextSibling = child
	}
	p.LastChild = child
	p.ChildCount++
}

// describe fills in kind and kind-specific attributes of node idx.
func (b *builder) describe(idx int, n ast.Node) {
	node := &b.nodes[idx]
	switch v := n.(type) {
	case *ast.Document:
		node.Kind = KindDocument
	case *ast.Heading:
		node.Kind = KindHeading
		node.Level = v.Level
	case *ast.Paragraph, *ast.TextBlock:
		node.Kind = KindParagraph
	case *ast.List:
		node.Kind = KindList
		node.Ordered = v.IsOrdered()
		node.Marker = v.Marker
		node.Tight = v.IsTight
	case *ast.ListItem:
		node.Kind = KindListItem
	case *ast.Emphasis:
		node.Kind = KindEmphasis
		if v.Level >= 2 {
			node.Kind = KindStrong
		}
	case *ast.CodeSpan:
		node.Kind = KindCodeSpan
		node.Literal = b.codeSpanText(v)
	case *ast.FencedCodeBlock:
		node.Kind = KindCodeBlock
		node.Language = string(v.Language(b.src))
		node.Literal = b.linesText(v.Lines())
	case *ast.CodeBlock:
		node.Kind = KindCodeBlock
		node.Literal = b.linesText(v.Lines())
	case *ast.Link:
		node.Kind = KindLink
		node.Destination = string(v.Destination)
	case *ast.Image:
		node.Kind = KindImage
		node.Destination = string(v.Destination)
	case *ast.AutoLink:
		node.Kind = KindHTML
		node.Literal = string(v.Label(b.src))
	case *ast.ThematicBreak:
		node.Kind = KindThematicBreak
	case *ast.Blockquote:
		node.Kind = KindBlockquote
	case *ast.HTMLBlock:
		node.Kind = KindHTML
		node.Literal = b.linesText(v.Lines())
	case *ast.RawHTML:
		node.Kind = KindHTML
		node.Literal = b.linesText(v.Segments)
	case *ast.String:
		node.Kind = KindText
		node.Literal = string(v.Value)
	case *east.Table:
		node.Kind = KindTable
	case *east.TableHeader, *east.TableRow:
		node.Kind = KindTableRow
	case *east.TableCell:
		node.Kind = KindTableCell
	default:
		node.Kind = KindOther
	}
}

// span computes the byte range of node idx. Blocks with lines use them,
// text uses its literal's segment, everything else covers its children.
func (b *builder) span(idx int, n ast.Node) {
	node := &b.nodes[idx]
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			node.Start = lines.At(0).Start
			node.End = lines.At(lines.Len() - 1).Stop
			return
		}
	}
	switch v := n.(type) {
	case *ast.CodeSpan:
		if c := v.FirstChild(); c != nil {
			if t, ok := c.(*ast.Text); ok {
				node.Start = t.Segment.Start
			}
			if t, ok := v.LastChild().(*ast.Text); ok {
				node.End = t.Segment.Stop
			}
			if node.End < node.Start {
				node.End = node.Start
			}
			return
		}
	case *ast.RawHTML:
		if v.Segments.Len() > 0 {
			node.Start = v.Segments.At(0).Start
			node.End = v.Segments.At(v.Segments.Len() - 1).Stop
			return
		}
	}

	first := true
	for c := node.FirstChild; c != none; c = b.nodes[c].NextSibling {
		child := &b.nodes[c]
		if child.Start == child.End {
			continue
		}
		if first || child.Start < node.Start {
			node.Start = child.Start
		}
		if first || child.End > node.End {
			node.End = child.End
		}
		first = false
	}
}

func (b *builder) codeSpanText(n *ast.CodeSpan) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(b.src))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

func (b *builder) linesText(lines *text.Segments) string {
	if lines == nil {
		return ""
	}
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b.src))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func isText(n ast.Node) bool {
	_, ok := n.(*ast.Text)
	return ok
}

// isLeaf reports nodes whose goldmark children are folded into Literal.
func isLeaf(n ast.Node) bool {
	switch n.(type) {
	case *ast.CodeSpan, *ast.FencedCodeBlock, *ast.CodeBlock, *ast.AutoLink, *ast.HTMLBlock, *ast.RawHTML:
		return true
	default:
		return false
	}
}
