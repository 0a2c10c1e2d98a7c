package validator

import (
	"errors"
	"strings"

	"github.com/404Wolf/mdvalidate-sub001/matcher"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
)

// validateCodeBlock compares the language tags and contents of two code blocks.
// A schema language written as `{id:/re/}` is matched and captured; schema
// content that is exactly `{id}` captures the input content whole.
func validateCodeBlock(w walker) *Result {
	r := newResult(w)
	s, in := w.schema.Node(), w.input.Node()

	r.Join(validateCurly(w, s.Language, in.Language))

	if id, ok := matcher.CurlyID(strings.TrimSpace(s.Literal)); ok {
		r.SetMatch(id, in.Literal)
		return r
	}
	if err := compareLiteral(w, mderrors.ContentLiteral, s.Literal, in.Literal); err != nil {
		r.AddError(err)
	}
	return r
}

// validateCurly compares actual against schema text that is either literal
// or a brace-delimited matcher, capturing the match under the matcher's id.
func validateCurly(w walker, schema, actual string) *Result {
	r := newResult(w)

	m, suffix, err := matcher.ParseCurly(schema)
	if errors.Is(err, matcher.ErrLiteral) {
		if err := compareLiteral(w, mderrors.ContentLiteral, schema, actual); err != nil {
			r.AddError(err)
		}
		return r
	}
	if err != nil {
		var schemaErr *mderrors.SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.SchemaIndex = w.schema.DescendantIndex()
		}
		r.AddError(err)
		return r
	}

	match, ok := matchRemainder(m, actual, suffix)
	if !ok {
		if !w.waiting() {
			r.AddError(w.contentMismatch(mderrors.ContentMatcher, schema, actual))
		}
		return r
	}
	if err := compareLiteral(w, mderrors.ContentSuffix, suffix, actual[len(match):]); err != nil {
		r.AddError(err)
		return r
	}
	if id, ok := m.ID(); ok {
		r.SetMatch(id, match)
	}
	return r
}
