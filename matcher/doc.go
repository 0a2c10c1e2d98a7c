// Package matcher parses the matcher language embedded in schema documents.
//
// A schema marks variable content with an inline code span whose interior is
// a regular expression, optionally named:
//
//	# Hello `name:/[A-Z][a-z]+/`
//
// The text right after the closing backtick may carry extras: a repetition
// quantifier such as `{2,5}`, `{1,}`, `{,3}` or `+`, and a trailing `!` that
// turns the code span back into literal text. A code span whose interior is
// not of the form `id:/re/` or `/re/` is literal as well; [ErrLiteral]
// signals both cases.
//
// Patterns are always anchored at the start of the text they are tested
// against and pick the longest match, which need not reach the end.
//
// Code block info strings and link destinations cannot hold code spans, so
// there the matcher is wrapped in braces instead; see [ParseCurly] and
// [CurlyID].
package matcher
