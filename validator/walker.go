package validator

import (
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

// unlimited marks a walker with no list depth cap.
const unlimited = -1

// walker is the state threaded through the recursive comparison: one cursor
// into each tree plus the settings that shape how a node pair is judged.
// It is passed by value, so a callee can move its cursors freely.
type walker struct {
	schema mdtree.Cursor
	input  mdtree.Cursor
	eof    bool
	log    Logger

	// depthLeft is how many more list levels may nest, or unlimited.
	depthLeft int
	// depthCap is the cap depthLeft was derived from, for error messages.
	depthCap int
	// inList is set while validating the contents of a repeated list item,
	// where a repeated matcher inside a paragraph is expected.
	inList bool
}

func newWalker(schema, input *mdtree.Tree, eof bool, cfg *config) walker {
	w := walker{
		schema:    schema.Walk(),
		input:     input.Walk(),
		eof:       eof,
		log:       cfg.logger,
		depthLeft: unlimited,
	}
	if cfg.maxListDepth > 0 {
		w.depthLeft = cfg.maxListDepth
		w.depthCap = cfg.maxListDepth
	}
	return w
}

// at returns a copy of w positioned on the given cursors.
func (w walker) at(schema, input mdtree.Cursor) walker {
	w.schema = schema
	w.input = input
	return w
}

// pos returns the current pair of descendant indices.
func (w walker) pos() NodePosPair {
	return NodePosPair{Schema: w.schema.DescendantIndex(), Input: w.input.DescendantIndex()}
}

// waiting reports whether the input node may still change: more input is
// expected and nothing follows the block holding it. Inline nodes are judged
// by their block, since unclosed markup there can still be reparsed into
// different nodes once the closing delimiter arrives.
func (w walker) waiting() bool {
	if w.eof {
		return false
	}
	block := w.input
	for block.Kind().IsInline() && block.GotoParent() {
	}
	return block.IsLast()
}

// listOpen reports whether the list holding the input item under w may
// still gain items.
func (w walker) listOpen() bool {
	list := w.input
	list.GotoParent()
	return !w.eof && list.IsLast()
}

// descend returns a copy of w for a list nested one level deeper. It
// reports false when the depth cap forbids another level.
func (w walker) descend() (walker, bool) {
	switch w.depthLeft {
	case unlimited:
		return w, true
	case 0:
		return w, false
	default:
		w.depthLeft--
		return w, true
	}
}

// capDepth tightens the depth cap to limit when it is stricter than the current one.
func (w walker) capDepth(limit int) walker {
	if w.depthLeft == unlimited || limit < w.depthLeft {
		w.depthLeft = limit
		w.depthCap = limit
	}
	return w
}

// checkpoint is a saved walker position that can be restored on any walker
// over the same pair of trees.
type checkpoint NodePosPair

func (w *walker) save() checkpoint {
	return checkpoint(w.pos())
}

// restore moves both cursors back to cp. It reports false, leaving the
// cursors where they were, when cp does not address nodes of these trees.
func (w *walker) restore(cp checkpoint) bool {
	schema, input := w.schema, w.input
	if !schema.GotoDescendant(cp.Schema) || !input.GotoDescendant(cp.Input) {
		return false
	}
	w.schema, w.input = schema, input
	return true
}

// try runs fn against a duplicate of w. The duplicate's cursor moves are
// kept only when fn reports success.
func (w *walker) try(fn func(t *walker) bool) bool {
	cp := w.save()
	t := *w
	if !fn(&t) {
		w.restore(cp)
		return false
	}
	w.schema, w.input = t.schema, t.input
	return true
}

func (w walker) typeMismatch() *mderrors.SchemaViolationError {
	return &mderrors.SchemaViolationError{
		Kind:        mderrors.NodeTypeMismatch,
		SchemaIndex: w.schema.DescendantIndex(),
		InputIndex:  w.input.DescendantIndex(),
		Expected:    w.schema.Node().Describe(),
		Actual:      w.input.Node().Describe(),
	}
}

func (w walker) contentMismatch(content mderrors.ContentKind, expected, actual string) *mderrors.SchemaViolationError {
	return &mderrors.SchemaViolationError{
		Kind:        mderrors.NodeContentMismatch,
		SchemaIndex: w.schema.DescendantIndex(),
		InputIndex:  w.input.DescendantIndex(),
		Content:     content,
		Expected:    expected,
		Actual:      actual,
	}
}

// childrenMismatch reports a child count disagreement on the current pair.
func (w walker) childrenMismatch(expected mderrors.Count, actual int) *mderrors.SchemaViolationError {
	return &mderrors.SchemaViolationError{
		Kind:          mderrors.ChildrenLengthMismatch,
		SchemaIndex:   w.schema.DescendantIndex(),
		InputIndex:    w.input.DescendantIndex(),
		ExpectedCount: expected,
		ActualCount:   actual,
	}
}

func (w walker) listCount(expected mderrors.Count, actual int) *mderrors.SchemaViolationError {
	return &mderrors.SchemaViolationError{
		Kind:          mderrors.WrongListCount,
		SchemaIndex:   w.schema.DescendantIndex(),
		InputIndex:    w.input.DescendantIndex(),
		ExpectedCount: expected,
		ActualCount:   actual,
	}
}

func (w walker) tooDeep() *mderrors.SchemaViolationError {
	return &mderrors.SchemaViolationError{
		Kind:        mderrors.NodeListTooDeep,
		SchemaIndex: w.schema.DescendantIndex(),
		InputIndex:  w.input.DescendantIndex(),
		MaxDepth:    w.depthCap,
	}
}

// schemaError builds a schema error anchored at the current schema node.
func (w walker) schemaError(kind mderrors.SchemaErrorKind, detail, msg string) *mderrors.SchemaError {
	return &mderrors.SchemaError{
		Kind:        kind,
		SchemaIndex: w.schema.DescendantIndex(),
		Detail:      detail,
		Message:     msg,
	}
}
