// Package validator checks a markdown document against a markdown schema.
//
// A schema is an ordinary markdown document in which inline code spans may
// hold matchers. The input must have the same structure as the schema;
// wherever the schema has a matcher, the input may have any text the
// matcher's regular expression accepts, and that text is captured under the
// matcher's id.
//
// # Matchers
//
// A matcher is written inside a code span as `id:/regex/` or, without a
// capture, `/regex/`. The regex is anchored at the start of the text it is
// tested against and takes the longest match. Text around the code span is
// literal:
//
//	# Hello `name:/\w+/`, welcome
//
// accepts "# Hello Ada, welcome" and captures {"name": "Ada"}. A code span
// that is not in matcher form is literal text. Writing `!` right after a
// code span forces it to be literal.
//
// The reserved matcher `ruler` stands for a thematic break.
//
// # Repetition
//
// A quantifier after the closing backtick makes a matcher repeat:
//
//   - `{2,5}` repeats 2 to 5 times, `{3,}` at least 3, `{,4}` at most 4
//   - `+` repeats at least once
//
// In a list, a repeated matcher leading the first item consumes a run of
// input items and captures an array. A bounded matcher that has matched its
// maximum hands the remaining items to the next schema item, so one input
// list can be split into several runs. An unbounded matcher must be the last
// item of its list.
//
// Lists nested in the input items are validated against the list nested in
// the schema item, so a schema item `name:/\w+/`{1,} holding a nested item
// `alias:/\w+/`{,} describes names that may each carry aliases. Nested
// captures are placed in the array right after the item that holds them:
//
//	{"name": ["ada", {"alias": ["countess"]}, "grace"]}
//
// Writing more than one quantifier group caps how many list levels may nest
// below the matcher: `{1,}{1,}{1,}` allows three. [WithMaxListDepth] sets a
// cap for the whole document.
//
// A paragraph holding only a repeated matcher consumes a run of input
// paragraphs.
//
// # Code blocks and links
//
// A code block whose content is exactly `{id}` captures the input's content.
// A language tag such as `{lang:/\w+/}` is matched and captured. Link
// destinations accept the same brace form.
//
// # Incremental input
//
// A [State] validates input that arrives in pieces:
//
//	state, err := validator.New(schema)
//	if err != nil {
//	    return err
//	}
//	for chunk := range chunks {
//	    text += chunk
//	    if err := state.ReadInput(text, false); err != nil {
//	        return err
//	    }
//	    state.Validate()
//	}
//	_ = state.ReadInput(text, true)
//	result := state.Validate()
//
// Until end of input is signalled, the last node of the input is treated as
// still being written: text that agrees with the schema so far is accepted,
// and missing nodes are not reported. Each call resumes from the top-level
// block the previous call stopped at. Errors are kept once reported.
//
// # Errors
//
// [Result.Errors] holds *mderrors.SchemaError values, for schemas that
// cannot be used, and *mderrors.SchemaViolationError values, for input that
// disagrees with the schema. Use errors.Is with the mderrors sentinels to
// classify them, and [Result.Issues] for reportable diagnostics. Tables are
// not supported in schemas.
package validator
