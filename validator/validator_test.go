package validator

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/404Wolf/mdvalidate-sub001/mderrors"
)

// check validates complete input against schema.
func check(t *testing.T, schema, input string, opts ...Option) *Result {
	t.Helper()
	opts = append([]Option{WithSchemaText(schema), WithInputText(input)}, opts...)
	res, err := ValidateWithOptions(opts...)
	require.NoError(t, err)
	return res
}

func violation(t *testing.T, err error) *mderrors.SchemaViolationError {
	t.Helper()
	var v *mderrors.SchemaViolationError
	require.True(t, errors.As(err, &v), "expected a schema violation, got %v", err)
	return v
}

func schemaError(t *testing.T, err error) *mderrors.SchemaError {
	t.Helper()
	var s *mderrors.SchemaError
	require.True(t, errors.As(err, &s), "expected a schema error, got %v", err)
	return s
}

func assertCaptures(t *testing.T, want map[string]any, res *Result) {
	t.Helper()
	if diff := cmp.Diff(want, res.Value); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateCaptures(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		input  string
		want   map[string]any
	}{
		{
			name:   "whole paragraph",
			schema: "`id:/[a-z]+/`",
			input:  "hello",
			want:   map[string]any{"id": "hello"},
		},
		{
			name:   "prefix and suffix around matcher",
			schema: "Hello `name:/\\w+/`, welcome",
			input:  "Hello Ada, welcome",
			want:   map[string]any{"name": "Ada"},
		},
		{
			name:   "match leaving exactly the suffix is preferred",
			schema: "Path: `path:/.+/` end",
			input:  "Path: a end b end",
			want:   map[string]any{"path": "a end b"},
		},
		{
			name:   "heading",
			schema: "# `title:/.+/`",
			input:  "# Hello World",
			want:   map[string]any{"title": "Hello World"},
		},
		{
			name:   "anonymous matcher captures nothing",
			schema: "Version `/\\d+/`",
			input:  "Version 42",
			want:   map[string]any{},
		},
		{
			name:   "several blocks",
			schema: "# Report\n\nAuthor: `author:/\\w+/`\n\nDate: `date:/\\d{4}-\\d{2}-\\d{2}/`\n",
			input:  "# Report\n\nAuthor: Ada\n\nDate: 1843-07-10\n",
			want:   map[string]any{"author": "Ada", "date": "1843-07-10"},
		},
		{
			name:   "blockquote",
			schema: "> `quote:/.+/`",
			input:  "> To be or not to be",
			want:   map[string]any{"quote": "To be or not to be"},
		},
		{
			name:   "matcher inside emphasis",
			schema: "Status: *`status:/ok|fail/`*",
			input:  "Status: *ok*",
			want:   map[string]any{"status": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := check(t, tt.schema, tt.input)
			assert.Empty(t, res.Errors)
			assert.True(t, res.Valid())
			assertCaptures(t, tt.want, res)
		})
	}
}

func TestValidateContentMismatch(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		input    string
		content  mderrors.ContentKind
		expected string
		actual   string
	}{
		{
			name:     "literal text",
			schema:   "Some text",
			input:    "Some test",
			content:  mderrors.ContentLiteral,
			expected: "Some text",
			actual:   "Some test",
		},
		{
			name:     "prefix",
			schema:   "Hello `name:/\\w+/`, welcome",
			input:    "Hi Ada, welcome",
			content:  mderrors.ContentPrefix,
			expected: "Hello ",
			actual:   "Hi Ada, welcome",
		},
		{
			name:     "matcher",
			schema:   "Hello `name:/\\w+/`, welcome",
			input:    "Hello ..., welcome",
			content:  mderrors.ContentMatcher,
			expected: "`name:/\\w+/`",
			actual:   "..., welcome",
		},
		{
			name:     "suffix",
			schema:   "Hello `name:/\\w+/`, welcome",
			input:    "Hello Ada; goodbye",
			content:  mderrors.ContentSuffix,
			expected: ", welcome",
			actual:   "; goodbye",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := check(t, tt.schema, tt.input)
			require.Len(t, res.Errors, 1)
			v := violation(t, res.Errors[0])
			assert.Equal(t, mderrors.NodeContentMismatch, v.Kind)
			assert.Equal(t, tt.content, v.Content)
			assert.Equal(t, tt.expected, v.Expected)
			assert.Equal(t, tt.actual, v.Actual)
			assert.Empty(t, res.Value)
		})
	}
}

func TestValidateLiteralCodeSpans(t *testing.T) {
	t.Run("plain code span is literal", func(t *testing.T) {
		res := check(t, "Run `go test` now", "Run `go test` now")
		assert.Empty(t, res.Errors)

		res = check(t, "Run `go test` now", "Run `go vet` now")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.NodeContentMismatch, v.Kind)
		assert.Equal(t, "go test", v.Expected)
		assert.Equal(t, "go vet", v.Actual)
	})

	t.Run("bang forces a matcher-shaped span to be literal", func(t *testing.T) {
		res := check(t, "Use `a:/b/`! here", "Use `a:/b/` here")
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Value)

		res = check(t, "Use `a:/b/`! here", "Use b here")
		assert.NotEmpty(t, res.Errors)
	})
}

func TestValidateStructure(t *testing.T) {
	t.Run("empty schema rejects content", func(t *testing.T) {
		res := check(t, "", "# Hi")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.ChildrenLengthMismatch, v.Kind)
		assert.Equal(t, mderrors.Exactly(0), v.ExpectedCount)
		assert.Equal(t, 1, v.ActualCount)
	})

	t.Run("missing block at end of input", func(t *testing.T) {
		res := check(t, "# Title\n\nBody", "# Title")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.ChildrenLengthMismatch, v.Kind)
		assert.Equal(t, mderrors.Exactly(2), v.ExpectedCount)
		assert.Equal(t, 1, v.ActualCount)
	})

	t.Run("heading levels must agree", func(t *testing.T) {
		res := check(t, "# Title", "## Title")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.NodeTypeMismatch, v.Kind)
		assert.Equal(t, "heading (level 1)", v.Expected)
		assert.Equal(t, "heading (level 2)", v.Actual)
	})

	t.Run("block kinds must agree", func(t *testing.T) {
		res := check(t, "Text", "> Text")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.NodeTypeMismatch, v.Kind)
		assert.Equal(t, "paragraph", v.Expected)
		assert.Equal(t, "blockquote", v.Actual)
	})

	t.Run("extra inline content", func(t *testing.T) {
		res := check(t, "plain", "plain *and more*")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.ChildrenLengthMismatch, v.Kind)
		assert.Equal(t, 2, v.ActualCount)
	})
}

func TestValidateRulers(t *testing.T) {
	res := check(t, "a\n\n---\n\nb", "a\n\n***\n\nb")
	assert.Empty(t, res.Errors)

	res = check(t, "a\n\n`ruler`\n\nb", "a\n\n___\n\nb")
	assert.Empty(t, res.Errors)

	res = check(t, "a\n\n---\n\nb", "a\n\nc\n\nb")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, mderrors.NodeTypeMismatch, violation(t, res.Errors[0]).Kind)
}

func TestValidateCodeBlocks(t *testing.T) {
	t.Run("capture language and content", func(t *testing.T) {
		schema := "```{lang:/\\w+/}\n{code}\n```\n"
		input := "```go\nfmt.Println()\n```\n"
		res := check(t, schema, input)
		assert.Empty(t, res.Errors)
		assertCaptures(t, map[string]any{"lang": "go", "code": "fmt.Println()"}, res)
	})

	t.Run("literal content", func(t *testing.T) {
		res := check(t, "```\nabc\n```\n", "```\nabc\n```\n")
		assert.Empty(t, res.Errors)

		res = check(t, "```\nabc\n```\n", "```\nabd\n```\n")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.NodeContentMismatch, v.Kind)
		assert.Equal(t, "abc", v.Expected)
		assert.Equal(t, "abd", v.Actual)
	})

	t.Run("literal language", func(t *testing.T) {
		res := check(t, "```go\n{code}\n```\n", "```rust\nfn main() {}\n```\n")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, "go", v.Expected)
		assert.Equal(t, "rust", v.Actual)
		assertCaptures(t, map[string]any{"code": "fn main() {}"}, res)
	})
}

func TestValidateLinks(t *testing.T) {
	t.Run("capture destination", func(t *testing.T) {
		res := check(t, "[home]({url:/.+/})", "[home](https://example.com)")
		assert.Empty(t, res.Errors)
		assertCaptures(t, map[string]any{"url": "https://example.com"}, res)
	})

	t.Run("capture label and destination", func(t *testing.T) {
		res := check(t, "[`label:/\\w+/`]({url:/.+/})", "[docs](https://example.com/docs)")
		assert.Empty(t, res.Errors)
		assertCaptures(t, map[string]any{"label": "docs", "url": "https://example.com/docs"}, res)
	})

	t.Run("literal destination", func(t *testing.T) {
		res := check(t, "[home](https://a.example)", "[home](https://b.example)")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.NodeContentMismatch, v.Kind)
		assert.Equal(t, "https://a.example", v.Expected)
	})

	t.Run("link against image", func(t *testing.T) {
		res := check(t, "[x](a.png)", "![x](a.png)")
		require.Len(t, res.Errors, 1)
		assert.Equal(t, mderrors.NodeTypeMismatch, violation(t, res.Errors[0]).Kind)
	})
}

func TestValidateRepeatedParagraphs(t *testing.T) {
	t.Run("consumes a run of paragraphs", func(t *testing.T) {
		res := check(t, "`para:/.+/`{1,}\n\n# End\n", "one\n\ntwo\n\n# End\n")
		assert.Empty(t, res.Errors)
		assertCaptures(t, map[string]any{"para": []any{"one", "two"}}, res)
	})

	t.Run("stops at the maximum", func(t *testing.T) {
		res := check(t, "`para:/.+/`{1,2}", "one\n\ntwo\n\nthree")
		require.Len(t, res.Errors, 1)
		assert.Equal(t, mderrors.ChildrenLengthMismatch, violation(t, res.Errors[0]).Kind)
		assertCaptures(t, map[string]any{"para": []any{"one", "two"}}, res)
	})

	t.Run("below the minimum", func(t *testing.T) {
		res := check(t, "`p:/x+/`{2,}", "xx")
		require.Len(t, res.Errors, 1)
		v := violation(t, res.Errors[0])
		assert.Equal(t, mderrors.WrongListCount, v.Kind)
		assert.Equal(t, 1, v.ActualCount)
		assert.Equal(t, mderrors.Between(2, 0, false), v.ExpectedCount)
	})

	t.Run("optional run may be absent", func(t *testing.T) {
		res := check(t, "# Title\n\n`notes:/.+/`{,}", "# Title")
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Value)
	})
}

func TestValidateSchemaErrors(t *testing.T) {
	t.Run("invalid pattern", func(t *testing.T) {
		res := check(t, "`a:/[/`", "x")
		require.Len(t, res.Errors, 1)
		se := schemaError(t, res.Errors[0])
		assert.Equal(t, mderrors.InvalidPattern, se.Kind)
		assert.Equal(t, 2, se.SchemaIndex)
		assert.True(t, mderrors.IsFatal(res.Errors[0]))
	})

	t.Run("multiple matchers in one container", func(t *testing.T) {
		res := check(t, "`a:/x/` and `b:/y/`", "x and y")
		require.Len(t, res.Errors, 1)
		assert.Equal(t, mderrors.MultipleMatchersInContainer, schemaError(t, res.Errors[0]).Kind)
	})

	t.Run("repeated matcher mixed with text", func(t *testing.T) {
		res := check(t, "Items: `a:/x/`{1,}", "Items: x")
		require.Len(t, res.Errors, 1)
		assert.Equal(t, mderrors.RepeatingMatcherInContainer, schemaError(t, res.Errors[0]).Kind)
	})

	t.Run("pattern cannot escape its anchor", func(t *testing.T) {
		res := check(t, "`id:/x)|(y/`", "zzy")
		require.Len(t, res.Errors, 1)
		assert.Equal(t, mderrors.InvalidPattern, schemaError(t, res.Errors[0]).Kind)
		assert.Empty(t, res.Value)
	})

	t.Run("inverted quantifier", func(t *testing.T) {
		res := check(t, "- `n:/\\d/`{5,2}\n", "- 1\n- 2\n- 3\n")
		require.Len(t, res.Errors, 1)
		se := schemaError(t, res.Errors[0])
		assert.Equal(t, mderrors.InvalidQuantifier, se.Kind)
		assert.True(t, mderrors.IsFatal(res.Errors[0]))
	})

	t.Run("tables are unsupported", func(t *testing.T) {
		table := "| a |\n|---|\n| 1 |\n"
		res := check(t, table, table)
		require.Len(t, res.Errors, 1)
		assert.True(t, errors.Is(res.Errors[0], mderrors.ErrUnsupported))
		assert.True(t, errors.Is(res.Errors[0], mderrors.ErrSchema))
	})
}

func TestValidateIdempotent(t *testing.T) {
	schema := "# Report\n\n- `item:/\\w+/`{2,2}\n"
	input := "# Report\n\n- one\n- two\n- three\n"

	first := check(t, schema, input)
	second := check(t, schema, input)
	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.Errors, second.Errors)

	state, err := New(schema)
	require.NoError(t, err)
	require.NoError(t, state.ReadInput(input, true))
	a := state.Validate()
	b := state.Validate()
	if diff := cmp.Diff(a.Value, b.Value); diff != "" {
		t.Errorf("captures changed between calls (-first +second):\n%s", diff)
	}
	assert.Equal(t, a.Errors, b.Errors)
	assert.Equal(t, first.Value, a.Value)
	assert.Len(t, a.Errors, 1)
}
