package validator

import (
	"errors"

	"github.com/404Wolf/mdvalidate-sub001/matcher"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

// validateNode compares the schema node under w against the input node
// under w and returns what it found. It is the single recursive entry point;
// each branch merges the results of its own recursion.
func validateNode(w walker) *Result {
	s, in := w.schema, w.input
	w.log.Debug("validating node pair",
		"schema", s.Kind().String(), "schema_index", s.DescendantIndex(),
		"input", in.Kind().String(), "input_index", in.DescendantIndex())

	switch sr, ir := s.Role(), in.Role(); {
	case sr == mdtree.RoleTable:
		r := newResult(w)
		r.AddError(w.schemaError(mderrors.Unsupported, "", "tables are not supported in schemas"))
		return r
	case sr == mdtree.RoleText && s.Kind() == in.Kind():
		return validateText(w)
	case in.Kind() == mdtree.KindThematicBreak && isRulerParagraph(s):
		return newResult(w)
	case sr == mdtree.RoleContainer && s.Kind() == in.Kind():
		return validateContainer(w)
	case sr == mdtree.RoleLink && s.Kind() == in.Kind():
		return validateLink(w)
	case sr == mdtree.RoleList && ir == mdtree.RoleList:
		return validateList(w)
	case sr == mdtree.RoleRuler && ir == mdtree.RoleRuler:
		return newResult(w)
	case sr == mdtree.RoleHeading && ir == mdtree.RoleHeading && s.Node().Level == in.Node().Level:
		return validateContainer(w)
	case sr == mdtree.RoleTopLevel && s.Kind() == in.Kind():
		return validateBlocks(w)
	case sr == mdtree.RoleCodeBlock && ir == mdtree.RoleCodeBlock:
		return validateCodeBlock(w)
	case sr == mdtree.RoleCodeSpan && ir == mdtree.RoleCodeSpan:
		return validateLiteralCodeSpan(w, s.Text())
	case sr == mdtree.RoleListItem && ir == mdtree.RoleListItem:
		return validateItemContents(w)
	case sr == mdtree.RoleOther && s.Kind() == in.Kind():
		return newResult(w)
	}

	r := newResult(w)
	if w.waiting() {
		return r
	}
	r.AddError(w.typeMismatch())
	return r
}

// spanMatcher parses the code span under c as a matcher, reading extras from
// the text node that follows it. The suffix is that text with the extras
// removed, or the text unchanged for a plain literal span. Schema errors
// come back anchored at the code span.
func spanMatcher(c mdtree.Cursor) (*matcher.Matcher, string, error) {
	following := ""
	if next := c; next.GotoNextSibling() && next.Kind() == mdtree.KindText {
		following = next.Text()
	}
	m, suffix, err := matcher.FromCodeSpan(c.Text(), following)
	var schemaErr *mderrors.SchemaError
	if errors.As(err, &schemaErr) {
		schemaErr.SchemaIndex = c.DescendantIndex()
	}
	return m, suffix, err
}

// soleMatcher returns the matcher when c is a paragraph made of exactly one
// matcher code span and nothing else but its extras.
func soleMatcher(c mdtree.Cursor) (*matcher.Matcher, error) {
	if c.Kind() != mdtree.KindParagraph || c.ChildCount() > 2 {
		return nil, nil
	}
	span := c
	if !span.GotoFirstChild() || span.Kind() != mdtree.KindCodeSpan {
		return nil, nil
	}
	if c.ChildCount() == 2 {
		if next := span; !next.GotoNextSibling() || next.Kind() != mdtree.KindText {
			return nil, nil
		}
	}
	m, suffix, err := spanMatcher(span)
	if errors.Is(err, matcher.ErrLiteral) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if suffix != "" {
		return nil, nil
	}
	return m, nil
}

// isRulerParagraph reports whether c is a paragraph holding only a ruler matcher.
func isRulerParagraph(c mdtree.Cursor) bool {
	m, err := soleMatcher(c)
	return err == nil && m != nil && m.IsRuler()
}
