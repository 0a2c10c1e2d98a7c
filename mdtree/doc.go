// Package mdtree turns markdown text into an immutable, arena-backed parse
// tree with a movable cursor.
//
// Parsing is done by goldmark with the GFM table extension. The goldmark AST
// is flattened into a slice of [Node] records in preorder, so the index of a
// node in that slice (its descendant index) is a stable address: an index
// saved from one [Cursor] can be restored into any other cursor over the same
// tree with [Cursor.GotoDescendant].
//
// Every node carries a [Kind] and a closed structural [Role] that the
// validator dispatches on. Adjacent inline text nodes are merged, so a run of
// plain text between two other inline elements is always exactly one node.
package mdtree
