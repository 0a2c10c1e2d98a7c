package validator

import (
	"strings"

	"github.com/404Wolf/mdvalidate-sub001/mderrors"
)

// validateText compares two text leaves byte for byte.
func validateText(w walker) *Result {
	r := newResult(w)
	if err := compareLiteral(w, mderrors.ContentLiteral, w.schema.Text(), w.input.Text()); err != nil {
		r.AddError(err)
	}
	return r
}

// validateLiteralCodeSpan compares an input code span against literal schema text.
func validateLiteralCodeSpan(w walker, expected string) *Result {
	r := newResult(w)
	if err := compareLiteral(w, mderrors.ContentLiteral, expected, w.input.Text()); err != nil {
		r.AddError(err)
	}
	return r
}

// compareLiteral returns a content mismatch unless actual equals expected.
// While the input node is still growing, actual only has to agree with
// expected as far as both go: it may stop short, and it may run past when
// the extra bytes are markup the parser has not closed yet.
func compareLiteral(w walker, content mderrors.ContentKind, expected, actual string) error {
	if expected == actual {
		return nil
	}
	if w.waiting() && (strings.HasPrefix(expected, actual) || strings.HasPrefix(actual, expected)) {
		return nil
	}
	return w.contentMismatch(content, expected, actual)
}
