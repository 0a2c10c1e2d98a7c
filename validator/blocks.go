package validator

import (
	"strings"

	"github.com/404Wolf/mdvalidate-sub001/matcher"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

// validateBlocks compares the block children of two documents or two
// blockquotes in order.
func validateBlocks(w walker) *Result {
	s, in := w.schema, w.input
	sok := s.GotoFirstChild()
	iok := in.GotoFirstChild()
	return walkBlocks(w, s, in, sok, iok)
}

// walkBlocks pairs block children starting from s and in, whose parents are
// under w. sok and iok report whether s and in point at a child at all.
func walkBlocks(w walker, s, in mdtree.Cursor, sok, iok bool) *Result {
	r := newResult(w)
	top := w.schema.Kind() == mdtree.KindDocument

	for sok && iok {
		if top {
			r.resume, r.hasResume = NodePosPair{Schema: s.DescendantIndex(), Input: in.DescendantIndex()}, true
		}

		m, err := soleMatcher(s)
		if err != nil {
			r.AddError(err)
			return r
		}
		if m != nil && m.IsRepeated() {
			cw := w.at(s, in)
			var res *Result
			res, iok = consumeParagraphs(&cw, m)
			r.Join(res)
			in = cw.input
			sok = s.GotoNextSibling()
			continue
		}

		r.Join(validateNode(w.at(s, in)))
		sok, iok = s.GotoNextSibling(), in.GotoNextSibling()
	}

	switch {
	case iok:
		r.AddError(w.childrenMismatch(mderrors.Exactly(w.schema.ChildCount()), w.input.ChildCount()))
	case sok && !w.waiting() && !optionalTail(s):
		r.AddError(w.childrenMismatch(mderrors.Exactly(w.schema.ChildCount()), w.input.ChildCount()))
	}
	return r
}

// consumeParagraphs matches consecutive input paragraphs, starting at
// w.input, against a repeated matcher standing alone in a schema paragraph.
// It leaves w.input on the first paragraph it did not take and reports
// whether there is one.
func consumeParagraphs(w *walker, m *matcher.Matcher) (*Result, bool) {
	r := newResult(*w)
	id, named := m.ID()
	lo := m.MinItems()
	hi, bounded := m.MaxItems()

	var values []any
	matched := 0
	more := true
	for more && (!bounded || matched < hi) {
		var value string
		pending := false
		ok := w.try(func(t *walker) bool {
			if t.input.Kind() != mdtree.KindParagraph {
				return false
			}
			text := strings.TrimSpace(t.input.Tree().Text(t.input.DescendantIndex()))
			got, ok := m.Match(text)
			if !ok || got != text {
				if !t.waiting() {
					return false
				}
				pending = true
			}
			value = got
			more = t.input.GotoNextSibling()
			return true
		})
		if !ok {
			break
		}
		matched++
		if !pending {
			values = append(values, value)
		}
	}

	w.log.Debug("consumed repeated paragraphs", "matcher", m.String(), "matched", matched)
	if matched < lo && (more || !w.waiting()) {
		r.AddError(w.listCount(mderrors.Between(lo, hi, bounded), matched))
	}
	if named && len(values) > 0 {
		r.SetMatch(id, values)
	}
	r.KeepFarthest(w.pos())
	return r, more
}

// optionalTail reports whether every schema block from s on may match nothing.
func optionalTail(s mdtree.Cursor) bool {
	for {
		m, err := soleMatcher(s)
		if err != nil || m == nil || !m.IsRepeated() || m.MinItems() > 0 {
			return false
		}
		if !s.GotoNextSibling() {
			return true
		}
	}
}
