package validator

import (
	"errors"

	"github.com/404Wolf/mdvalidate-sub001/matcher"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

// validateList compares two lists. Ordered and unordered lists never match
// each other; the marker glyph is not compared.
func validateList(w walker) *Result {
	r := newResult(w)
	if w.schema.Node().Ordered != w.input.Node().Ordered {
		r.AddError(w.typeMismatch())
		return r
	}

	s, in := w.schema, w.input
	if !s.GotoFirstChild() || !in.GotoFirstChild() {
		return r
	}
	r.Join(validateItems(w.at(s, in)))
	return r
}

// validateItems compares the schema items from w.schema on against the input
// items from w.input on. A schema item led by a repeated matcher consumes a
// run of input items; any other item is compared one to one.
func validateItems(w walker) *Result {
	m, err := itemMatcher(w.schema)
	if err != nil {
		r := newResult(w)
		r.AddError(err)
		return r
	}
	if m != nil && m.IsRepeated() {
		return validateRun(w, m)
	}
	return validateLiteralItems(w)
}

// validateRun matches consecutive input items against the repeated matcher
// leading the schema item, collecting the captures into an array. Lists
// nested in the input items are validated against the list nested in the
// schema item, and their captures land in the array after their item.
func validateRun(w walker, m *matcher.Matcher) *Result {
	r := newResult(w)
	id, named := m.ID()
	lo := m.MinItems()
	hi, bounded := m.MaxItems()
	count := mderrors.Between(lo, hi, bounded)

	next := w.schema
	hasNext := next.GotoNextSibling()
	if !bounded && hasNext {
		r.AddError(w.schemaError(mderrors.RepeatingMatcherUnbounded, m.String(),
			"an unbounded repeated matcher must be the last item of its list"))
		return r
	}
	if depth, ok := m.MaxDepth(); ok {
		w = w.capDepth(depth)
	}
	w.log.Debug("validating list run", "matcher", m.String(),
		"schema_index", w.schema.DescendantIndex(), "input_index", w.input.DescendantIndex())

	var values []any
	matched := 0
	item := w.input
	more := true
	for more && (!bounded || matched < hi) {
		iw := w.at(w.schema, item)
		iw.inList = true
		res := validateItemContents(iw)
		if hasNext && matched >= lo && res.HasErrors() {
			// The item belongs to the next schema item.
			break
		}

		r.joinErrors(res)
		if !res.HasErrors() {
			if v, ok := res.Value[id]; named && ok {
				values = append(values, v)
			} else if !named {
				r.Value = joinValues(r.Value, res.Value)
			}
		}

		nested := validateNestedList(iw, true)
		r.joinErrors(nested)
		if len(nested.Value) > 0 {
			if named {
				values = append(values, nested.Value)
			} else {
				r.Value = joinValues(r.Value, nested.Value)
			}
		}

		matched++
		more = item.GotoNextSibling()
	}

	if named && len(values) > 0 {
		r.SetMatch(id, values)
	}
	if matched < lo && !w.listOpen() {
		r.AddError(w.listCount(count, matched))
	}

	switch {
	case more && hasNext:
		w.log.Debug("stacking list run", "matcher", m.String(), "matched", matched)
		r.Join(validateItems(w.at(next, item)))
	case more && !w.listOpen():
		r.AddError(w.at(w.schema, item).listCount(count, matched+len(siblings(item))))
	case !more && hasNext && !w.listOpen():
		r.Join(missingItems(w.at(next, item)))
	}
	return r
}

// validateLiteralItems compares the run of schema items that are not led by
// a repeated matcher one to one, then hands the rest to validateItems.
func validateLiteralItems(w walker) *Result {
	r := newResult(w)

	run := []mdtree.Cursor{w.schema}
	var follow mdtree.Cursor
	hasFollow := false
	for c := w.schema; c.GotoNextSibling(); {
		m, err := itemMatcher(c)
		if err != nil {
			r.AddError(err)
			return r
		}
		if m != nil && m.IsRepeated() {
			follow, hasFollow = c, true
			break
		}
		run = append(run, c)
	}

	inputs := siblings(w.input)
	if (len(inputs) > len(run) && !hasFollow) || (len(inputs) < len(run) && !w.listOpen()) {
		r.AddError(itemCountError(w, len(run), len(inputs)))
	}

	for i := range min(len(run), len(inputs)) {
		iw := w.at(run[i], inputs[i])
		iw.inList = false
		r.Join(validateItemContents(iw))
		r.Join(validateNestedList(iw, false))
	}

	if hasFollow {
		switch {
		case len(inputs) > len(run):
			r.Join(validateItems(w.at(follow, inputs[len(run)])))
		case len(inputs) == len(run) && !w.listOpen():
			r.Join(missingItems(w.at(follow, inputs[len(inputs)-1])))
		}
	}
	return r
}

// itemCountError reports a literal run of want schema items meeting got input
// items. A lone schema item led by a plain matcher is singled out: it was
// most likely meant to repeat.
func itemCountError(w walker, want, got int) error {
	if want == 1 && got > 1 && !w.schema.HasNextSibling() {
		if m, err := itemMatcher(w.schema); err == nil && m != nil && !m.IsRuler() {
			return &mderrors.SchemaViolationError{
				Kind:        mderrors.NonRepeatingMatcherInListContext,
				SchemaIndex: w.schema.DescendantIndex(),
				InputIndex:  w.input.DescendantIndex(),
			}
		}
	}
	list := w
	list.schema.GotoParent()
	list.input.GotoParent()
	return list.childrenMismatch(mderrors.Exactly(want), got)
}

// missingItems reports the schema items from w.schema on that no input item
// is left for. w.input is the last input item.
func missingItems(w walker) *Result {
	r := newResult(w)
	literal := false
	for s := w.schema; ; {
		m, err := itemMatcher(s)
		switch {
		case err != nil:
			r.AddError(err)
		case m != nil && m.IsRepeated():
			if m.MinItems() > 0 {
				hi, bounded := m.MaxItems()
				r.AddError(w.at(s, w.input).listCount(mderrors.Between(m.MinItems(), hi, bounded), 0))
			}
		default:
			literal = true
		}
		if !s.GotoNextSibling() {
			break
		}
	}
	if literal {
		list := w
		list.schema.GotoParent()
		list.input.GotoParent()
		r.AddError(list.childrenMismatch(mderrors.Exactly(list.schema.ChildCount()), list.input.ChildCount()))
	}
	return r
}

// validateItemContents compares the children of two list items, leaving out
// nested lists, which validateNestedList handles.
func validateItemContents(w walker) *Result {
	r := newResult(w)
	sc := nonListChildren(w.schema)
	ic := nonListChildren(w.input)
	if len(ic) > len(sc) || (len(ic) < len(sc) && !w.waiting()) {
		r.AddError(w.childrenMismatch(mderrors.Exactly(len(sc)), len(ic)))
	}
	for i := range min(len(sc), len(ic)) {
		r.Join(validateNode(w.at(sc[i], ic[i])))
	}
	return r
}

// validateNestedList compares the lists nested in two list items. When
// optional is set the schema's nested list describes lists the input items
// may have; otherwise the input must have it too.
func validateNestedList(w walker, optional bool) *Result {
	r := newResult(w)
	s, sok := nestedList(w.schema)
	in, iok := nestedList(w.input)

	switch {
	case sok && iok:
		lw, ok := w.at(s, in).descend()
		if !ok {
			r.AddError(lw.tooDeep())
			return r
		}
		lw.inList = false
		r.Join(validateList(lw))
	case iok:
		r.AddError(w.childrenMismatch(mderrors.Exactly(w.schema.ChildCount()), w.input.ChildCount()))
	case sok && !optional && !w.waiting():
		r.AddError(w.childrenMismatch(mderrors.Exactly(w.schema.ChildCount()), w.input.ChildCount()))
	}
	return r
}

// itemMatcher returns the matcher leading a list item: a code span that is
// the first thing in the item's first paragraph. Literal spans yield nil.
func itemMatcher(item mdtree.Cursor) (*matcher.Matcher, error) {
	c := item
	if !c.GotoFirstChild() || c.Kind() != mdtree.KindParagraph {
		return nil, nil
	}
	if !c.GotoFirstChild() || c.Kind() != mdtree.KindCodeSpan {
		return nil, nil
	}
	m, _, err := spanMatcher(c)
	if errors.Is(err, matcher.ErrLiteral) {
		return nil, nil
	}
	return m, err
}

// nestedList returns the first list among the children of item.
func nestedList(item mdtree.Cursor) (mdtree.Cursor, bool) {
	for _, c := range item.Children() {
		if c.Kind() == mdtree.KindList {
			return c, true
		}
	}
	return item, false
}

func nonListChildren(c mdtree.Cursor) []mdtree.Cursor {
	children := c.Children()
	out := children[:0]
	for _, child := range children {
		if child.Kind() != mdtree.KindList {
			out = append(out, child)
		}
	}
	return out
}

// siblings returns c and every sibling after it.
func siblings(c mdtree.Cursor) []mdtree.Cursor {
	out := []mdtree.Cursor{c}
	for c.GotoNextSibling() {
		out = append(out, c)
	}
	return out
}
