// Package issues provides the flat diagnostic record reported for validation problems.
package issues

import (
	"fmt"
	"strings"

	"github.com/404Wolf/mdvalidate-sub001/internal/severity"
)

// Issue represents a single problem found while validating a document.
type Issue struct {
	// Path locates the input node, e.g. "document/list[0]/list_item[2]"
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Kind is the error kind, e.g. "content mismatch"
	Kind string
	// Expected is the schema side of a mismatch (optional)
	Expected string
	// Actual is the input side of a mismatch (optional)
	Actual string
	// Diff renders Expected against Actual with insertions and deletions marked (optional)
	Diff string
	// Line is the 1-based line number in the input (0 if unknown)
	Line int
	// Column is the 1-based column number in the input (0 if unknown)
	Column int
	// SchemaLine is the 1-based line number of the schema node (0 if unknown)
	SchemaLine int
	// File is the input file path (empty for text supplied directly)
	File string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	var sb strings.Builder
	if i.Line > 0 {
		fmt.Fprintf(&sb, "%s %s (line %d, col %d): %s", symbol, i.Path, i.Line, i.Column, i.Message)
	} else {
		fmt.Fprintf(&sb, "%s %s: %s", symbol, i.Path, i.Message)
	}
	if i.SchemaLine > 0 {
		fmt.Fprintf(&sb, "\n    Schema: line %d", i.SchemaLine)
	}
	if i.Diff != "" {
		fmt.Fprintf(&sb, "\n    Diff: %s", i.Diff)
	}
	return sb.String()
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" if file is set, "line:column" if only line is set,
// or the node path if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Path
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// IsFatal reports whether the issue stems from an unusable schema.
func (i Issue) IsFatal() bool {
	return i.Severity == severity.SeverityCritical
}
