package mderrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSchema indicates the schema document is unusable.
	ErrSchema = errors.New("schema error")

	// ErrUnsupported indicates a schema construct that is recognised but not validated.
	ErrUnsupported = errors.New("unsupported")

	// ErrSchemaViolation indicates the input disagrees with the schema.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrParse indicates a document could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration or session misuse.
	ErrConfig = errors.New("configuration error")
)

// SchemaError reports a schema that cannot be used regardless of the input.
type SchemaError struct {
	// Kind classifies the problem
	Kind SchemaErrorKind
	// SchemaIndex is the descendant index of the offending schema node
	SchemaIndex int
	// Detail is the offending schema text, if any
	Detail string
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any (for example a regexp compile error)
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Kind != 0 {
		msg += " (" + e.Kind.String() + ")"
	}
	msg += fmt.Sprintf(" at schema node %d", e.SchemaIndex)
	if e.Detail != "" {
		msg += fmt.Sprintf(" %q", e.Detail)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrSchema, and also ErrUnsupported for Unsupported errors.
func (e *SchemaError) Is(target error) bool {
	if target == ErrSchema {
		return true
	}
	return target == ErrUnsupported && e.Kind == Unsupported
}

// SchemaViolationError reports an input that disagrees with a valid schema.
// Which fields are meaningful depends on Kind.
type SchemaViolationError struct {
	// Kind classifies the violation
	Kind ViolationKind
	// SchemaIndex is the descendant index of the schema node
	SchemaIndex int
	// InputIndex is the descendant index of the input node
	InputIndex int
	// Expected is the expected text or node kind
	Expected string
	// Actual is the actual text or node kind
	Actual string
	// Content tags which part of the text mismatched (NodeContentMismatch)
	Content ContentKind
	// ExpectedCount is the admissible count (ChildrenLengthMismatch, WrongListCount)
	ExpectedCount Count
	// ActualCount is the count found in the input
	ActualCount int
	// MaxDepth is the depth limit that was exceeded (NodeListTooDeep)
	MaxDepth int
}

// Error returns a human-readable error message.
func (e *SchemaViolationError) Error() string {
	msg := e.Kind.String()
	if e.Kind == NodeContentMismatch {
		msg += " (" + e.Content.String() + ")"
	}
	msg += fmt.Sprintf(" at schema node %d, input node %d", e.SchemaIndex, e.InputIndex)

	switch e.Kind {
	case NodeTypeMismatch:
		msg += fmt.Sprintf(": expected %s, got %s", e.Expected, e.Actual)
	case ChildrenLengthMismatch:
		msg += fmt.Sprintf(": expected %s children, got %d", e.ExpectedCount, e.ActualCount)
	case NodeContentMismatch:
		msg += fmt.Sprintf(": expected %q, got %q", e.Expected, e.Actual)
	case WrongListCount:
		msg += fmt.Sprintf(": expected %s items, got %d", e.ExpectedCount, e.ActualCount)
	case NodeListTooDeep:
		msg += fmt.Sprintf(": nesting exceeds maximum depth of %d", e.MaxDepth)
	case NonRepeatingMatcherInListContext:
		msg += ": matcher has no repetition quantifier"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// ParseError represents a failure to build a parse tree from document text.
type ParseError struct {
	// Source identifies the document ("schema", "input" or a file path)
	Source string
	// Line is the 1-based line number where the error occurred (0 if unknown)
	Line int
	// Column is the 1-based column number where the error occurred (0 if unknown)
	Column int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and misuse of a
// validation session such as shrinking its input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// IsFatal reports whether err makes the schema unusable, as opposed to a
// disagreement between input and schema.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSchema)
}
