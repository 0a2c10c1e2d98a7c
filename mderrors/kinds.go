package mderrors

import "fmt"

// SchemaErrorKind classifies why a schema is unusable.
type SchemaErrorKind int

const (
	// InvalidPattern indicates a matcher whose regex body does not compile.
	InvalidPattern SchemaErrorKind = iota + 1
	// MultipleMatchersInContainer indicates more than one active matcher in one inline run.
	MultipleMatchersInContainer
	// MissingMatcher indicates a node where a matcher was structurally required but absent.
	MissingMatcher
	// RepeatingMatcherUnbounded indicates a variable-length list matcher followed by
	// further list items at the same level.
	RepeatingMatcherUnbounded
	// RepeatingMatcherInContainer indicates a repeated matcher mixed with other inline content.
	RepeatingMatcherInContainer
	// InvalidEncoding indicates text backing a node is not valid UTF-8.
	InvalidEncoding
	// Unsupported indicates a construct recognised but not validated (tables).
	Unsupported
	// InvalidQuantifier indicates a quantifier such as {5,2} whose minimum exceeds its maximum.
	InvalidQuantifier
)

// String returns the string representation of the kind.
func (k SchemaErrorKind) String() string {
	switch k {
	case InvalidPattern:
		return "invalid pattern"
	case MultipleMatchersInContainer:
		return "multiple matchers in container"
	case MissingMatcher:
		return "missing matcher"
	case RepeatingMatcherUnbounded:
		return "unbounded repeating matcher"
	case RepeatingMatcherInContainer:
		return "repeating matcher in container"
	case InvalidEncoding:
		return "invalid encoding"
	case Unsupported:
		return "unsupported"
	case InvalidQuantifier:
		return "invalid quantifier"
	default:
		return "unknown"
	}
}

// ViolationKind classifies how the input disagrees with the schema.
type ViolationKind int

const (
	// NodeTypeMismatch indicates the schema and input nodes are of different kinds.
	NodeTypeMismatch ViolationKind = iota + 1
	// ChildrenLengthMismatch indicates a different number of children.
	ChildrenLengthMismatch
	// NodeContentMismatch indicates differing text content; see ContentKind.
	NodeContentMismatch
	// WrongListCount indicates a repeated matcher consumed a number of items outside its bounds.
	WrongListCount
	// NodeListTooDeep indicates list nesting beyond the allowed depth.
	NodeListTooDeep
	// NonRepeatingMatcherInListContext indicates repetition was required but the matcher has no quantifier.
	NonRepeatingMatcherInListContext
)

// String returns the string representation of the kind.
func (k ViolationKind) String() string {
	switch k {
	case NodeTypeMismatch:
		return "node type mismatch"
	case ChildrenLengthMismatch:
		return "children length mismatch"
	case NodeContentMismatch:
		return "content mismatch"
	case WrongListCount:
		return "wrong list count"
	case NodeListTooDeep:
		return "list too deep"
	case NonRepeatingMatcherInListContext:
		return "non-repeating matcher in list"
	default:
		return "unknown"
	}
}

// ContentKind tags which part of a node's text failed to match.
type ContentKind int

const (
	// ContentLiteral is a plain literal comparison.
	ContentLiteral ContentKind = iota
	// ContentPrefix is the literal text before a matcher.
	ContentPrefix
	// ContentSuffix is the literal text after a matcher.
	ContentSuffix
	// ContentMatcher is the matcher's regex itself.
	ContentMatcher
)

// String returns the string representation of the content kind.
func (k ContentKind) String() string {
	switch k {
	case ContentLiteral:
		return "literal"
	case ContentPrefix:
		return "prefix"
	case ContentSuffix:
		return "suffix"
	case ContentMatcher:
		return "matcher"
	default:
		return "unknown"
	}
}

// Count is an expected child or item count: an exact number or a range.
// A Count with HasMax false has no upper bound.
type Count struct {
	Min    int
	Max    int
	HasMax bool
}

// Exactly returns a Count that admits only n.
func Exactly(n int) Count {
	return Count{Min: n, Max: n, HasMax: true}
}

// Between returns a Count from lo to hi; hasMax false leaves it unbounded.
func Between(lo, hi int, hasMax bool) Count {
	return Count{Min: lo, Max: hi, HasMax: hasMax}
}

// Admits reports whether n falls inside the count.
func (c Count) Admits(n int) bool {
	if n < c.Min {
		return false
	}
	return !c.HasMax || n <= c.Max
}

// String renders the count as "3", "2..5", "at least 2" or "at most 4".
func (c Count) String() string {
	switch {
	case c.HasMax && c.Min == c.Max:
		return fmt.Sprintf("%d", c.Min)
	case c.HasMax && c.Min == 0:
		return fmt.Sprintf("at most %d", c.Max)
	case c.HasMax:
		return fmt.Sprintf("%d..%d", c.Min, c.Max)
	default:
		return fmt.Sprintf("at least %d", c.Min)
	}
}
