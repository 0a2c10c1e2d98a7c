package validator

import (
	"errors"
	"slices"

	"github.com/404Wolf/mdvalidate-sub001/internal/issues"
	"github.com/404Wolf/mdvalidate-sub001/internal/severity"
	"github.com/404Wolf/mdvalidate-sub001/internal/textdiff"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

// Issue is a flat, reportable form of a validation error.
type Issue = issues.Issue

// Severity indicates the severity level of an issue
type Severity = severity.Severity

const (
	// SeverityError indicates input that disagrees with the schema
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a recommendation
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates a schema that cannot be used
	SeverityCritical = severity.SeverityCritical
)

// Issues flattens the result's errors into diagnostics with node paths,
// line and column numbers, and a diff for content mismatches.
func (r *Result) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors))
	for _, err := range r.Errors {
		out = append(out, r.issue(err))
	}
	return out
}

func (r *Result) issue(err error) Issue {
	iss := Issue{
		Message:  err.Error(),
		Severity: SeverityError,
	}

	var violation *mderrors.SchemaViolationError
	var schemaErr *mderrors.SchemaError
	switch {
	case errors.As(err, &violation):
		iss.Kind = violation.Kind.String()
		iss.Expected = violation.Expected
		iss.Actual = violation.Actual
		if violation.Kind == mderrors.NodeContentMismatch {
			iss.Diff = textdiff.Render(violation.Expected, violation.Actual)
		}
		if r.input != nil && violation.InputIndex < r.input.Len() {
			iss.Path = nodePath(r.input, violation.InputIndex)
			iss.Line, iss.Column = r.input.NodePosition(violation.InputIndex)
		}
		if r.schema != nil && violation.SchemaIndex < r.schema.Len() {
			iss.SchemaLine, _ = r.schema.NodePosition(violation.SchemaIndex)
		}
	case errors.As(err, &schemaErr):
		iss.Severity = SeverityCritical
		iss.Kind = schemaErr.Kind.String()
		iss.Expected = schemaErr.Detail
		if r.schema != nil && schemaErr.SchemaIndex < r.schema.Len() {
			iss.Path = nodePath(r.schema, schemaErr.SchemaIndex)
			iss.SchemaLine, _ = r.schema.NodePosition(schemaErr.SchemaIndex)
		}
	}
	return iss
}

// nodePath names node i by the kinds on the way down from the root, each
// with its position among same-kind siblings.
func nodePath(t *mdtree.Tree, i int) string {
	var segments []issues.Segment
	for ; i >= 0; i = t.Node(i).Parent {
		n := t.Node(i)
		seg := issues.Segment{Kind: n.Kind.String(), Index: -1}
		if n.Parent >= 0 {
			seg.Index = 0
			for c := t.Node(n.Parent).FirstChild; c != i; c = t.Node(c).NextSibling {
				if t.Node(c).Kind == n.Kind {
					seg.Index++
				}
			}
		}
		segments = append(segments, seg)
	}
	slices.Reverse(segments)
	return issues.FormatPath(segments...)
}
