package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/404Wolf/mdvalidate-sub001/validator"
)

type validateInput struct {
	Schema           documentInput `json:"schema"                      jsonschema:"The markdown schema"`
	Input            documentInput `json:"input"                       jsonschema:"The markdown document to validate"`
	MaxDepth         *int          `json:"max_depth,omitempty"         jsonschema:"Maximum list nesting depth below a top-level list (0 = unlimited)"`
	NormalizeUnicode *bool         `json:"normalize_unicode,omitempty" jsonschema:"Normalize the input to Unicode NFC before validating"`
	Kind             string        `json:"kind,omitempty"              jsonschema:"Only report errors of this kind, e.g. content mismatch"`
	GroupBy          string        `json:"group_by,omitempty"          jsonschema:"Return error counts grouped by kind or severity instead of individual errors"`
	Offset           int           `json:"offset,omitempty"            jsonschema:"Skip the first N errors (for pagination)"`
	Limit            int           `json:"limit,omitempty"             jsonschema:"Maximum number of errors to return (default 100)"`
}

type validateIssue struct {
	Severity   string `json:"severity"`
	Kind       string `json:"kind,omitempty"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	SchemaLine int    `json:"schema_line,omitempty"`
	Diff       string `json:"diff,omitempty"`
}

type validateOutput struct {
	Valid      bool            `json:"valid"`
	ErrorCount int             `json:"error_count"`
	Captures   map[string]any  `json:"captures"`
	Returned   int             `json:"returned"`
	Errors     []validateIssue `json:"errors,omitempty"`
	Groups     []groupCount    `json:"groups,omitempty"`
}

var validateGroupByValues = []string{"kind", "severity"}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	if err := validateGroupBy(input.GroupBy, validateGroupByValues); err != nil {
		return errResult(err), validateOutput{}, nil
	}

	// Apply config defaults when input fields are omitted (nil).
	maxDepth := cfg.MaxDepth
	if input.MaxDepth != nil {
		maxDepth = *input.MaxDepth
	}
	normalize := cfg.NormalizeUnicode
	if input.NormalizeUnicode != nil {
		normalize = *input.NormalizeUnicode
	}

	schema, err := input.Schema.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("schema: %w", err)), validateOutput{}, nil
	}
	doc, err := input.Input.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("input: %w", err)), validateOutput{}, nil
	}

	result, err := validator.ValidateWithOptions(
		validator.WithSchemaText(schema),
		validator.WithInputText(doc),
		validator.WithMaxListDepth(maxDepth),
		validator.WithNormalizeUnicode(normalize),
	)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:      result.Valid(),
		ErrorCount: len(result.Errors),
		Captures:   result.Value,
	}
	if output.Captures == nil {
		output.Captures = map[string]any{}
	}

	issues := result.Issues()
	filtered := makeSlice[validateIssue](len(issues))
	for _, iss := range issues {
		if input.Kind != "" && iss.Kind != input.Kind {
			continue
		}
		filtered = append(filtered, validateIssue{
			Severity:   iss.Severity.String(),
			Kind:       iss.Kind,
			Path:       iss.Path,
			Message:    iss.Message,
			Line:       iss.Line,
			Column:     iss.Column,
			SchemaLine: iss.SchemaLine,
			Diff:       iss.Diff,
		})
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(filtered, func(iss validateIssue) string {
			if strings.EqualFold(input.GroupBy, "severity") {
				return iss.Severity
			}
			return iss.Kind
		})
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	output.Errors = paginate(filtered, input.Offset, input.Limit)
	output.Returned = len(output.Errors)
	return nil, output, nil
}
