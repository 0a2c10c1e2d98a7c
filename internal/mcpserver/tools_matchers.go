package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/404Wolf/mdvalidate-sub001/matcher"
	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

type listMatchersInput struct {
	Schema documentInput `json:"schema"           jsonschema:"The markdown schema to inspect"`
	Offset int           `json:"offset,omitempty" jsonschema:"Skip the first N matchers (for pagination)"`
	Limit  int           `json:"limit,omitempty"  jsonschema:"Maximum number of matchers to return (default 100)"`
}

type matcherSummary struct {
	Matcher  string `json:"matcher"`
	ID       string `json:"id,omitempty"`
	Pattern  string `json:"pattern,omitempty"`
	Ruler    bool   `json:"ruler,omitempty"`
	Repeated bool   `json:"repeated,omitempty"`
	MinItems int    `json:"min_items,omitempty"`
	MaxItems *int   `json:"max_items,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty"`
	Parent   string `json:"parent"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type listMatchersOutput struct {
	Total    int              `json:"total"`
	Returned int              `json:"returned"`
	Named    []string         `json:"named,omitempty"`
	Matchers []matcherSummary `json:"matchers,omitempty"`
}

func handleListMatchers(ctx context.Context, _ *mcp.CallToolRequest, input listMatchersInput) (*mcp.CallToolResult, listMatchersOutput, error) {
	schema, err := input.Schema.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("schema: %w", err)), listMatchersOutput{}, nil
	}
	tree, err := mdtree.Parse([]byte(schema))
	if err != nil {
		return errResult(err), listMatchersOutput{}, nil
	}

	all, err := collectMatchers(tree)
	if err != nil {
		return errResult(err), listMatchersOutput{}, nil
	}

	output := listMatchersOutput{Total: len(all)}
	seen := make(map[string]bool)
	for _, m := range all {
		if m.ID != "" && !seen[m.ID] {
			seen[m.ID] = true
			output.Named = append(output.Named, m.ID)
		}
	}
	output.Matchers = paginate(all, input.Offset, input.Limit)
	output.Returned = len(output.Matchers)
	return nil, output, nil
}

// collectMatchers returns every matcher code span of the schema in document
// order. Literal code spans are skipped; an uncompilable pattern fails.
func collectMatchers(tree *mdtree.Tree) ([]matcherSummary, error) {
	var out []matcherSummary
	for i := range tree.Len() {
		n := tree.Node(i)
		if n.Kind != mdtree.KindCodeSpan {
			continue
		}
		following := ""
		if n.NextSibling >= 0 && tree.Node(n.NextSibling).Kind == mdtree.KindText {
			following = tree.Node(n.NextSibling).Literal
		}

		m, _, err := matcher.FromCodeSpan(n.Literal, following)
		if errors.Is(err, matcher.ErrLiteral) {
			continue
		}
		if err != nil {
			var schemaErr *mderrors.SchemaError
			if errors.As(err, &schemaErr) {
				schemaErr.SchemaIndex = i
			}
			return nil, err
		}

		line, col := tree.NodePosition(i)
		s := matcherSummary{
			Matcher:  m.String(),
			Ruler:    m.IsRuler(),
			Repeated: m.IsRepeated(),
			MinItems: m.MinItems(),
			Parent:   tree.Node(n.Parent).Describe(),
			Line:     line,
			Column:   col,
		}
		s.ID, _ = m.ID()
		if p := m.Pattern(); p != nil {
			s.Pattern = p.String()
		}
		if hi, ok := m.MaxItems(); ok {
			s.MaxItems = &hi
		}
		if depth, ok := m.MaxDepth(); ok {
			s.MaxDepth = depth
		}
		out = append(out, s)
	}
	return out, nil
}
