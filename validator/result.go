package validator

import (
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

// NodePosPair is a pair of descendant indices, one into the schema tree and
// one into the input tree.
type NodePosPair struct {
	Schema int `json:"schema" yaml:"schema"`
	Input  int `json:"input" yaml:"input"`
}

// Max returns the component-wise maximum of p and other.
func (p NodePosPair) Max(other NodePosPair) NodePosPair {
	return NodePosPair{
		Schema: max(p.Schema, other.Schema),
		Input:  max(p.Input, other.Input),
	}
}

// Result holds the captures, errors and farthest position of one validation.
// Errors hold *mderrors.SchemaError and *mderrors.SchemaViolationError values.
type Result struct {
	// Value is the capture tree keyed by matcher id
	Value map[string]any
	// Errors lists problems in the order they were found
	Errors []error
	// Farthest is the farthest node pair the walk reached
	Farthest NodePosPair

	// resume is the top-level pair the next incremental call restarts from.
	resume    NodePosPair
	hasResume bool

	schema *mdtree.Tree
	input  *mdtree.Tree
}

func newResult(w walker) *Result {
	return &Result{
		Value:    map[string]any{},
		Farthest: w.pos(),
	}
}

// Valid reports whether no errors were recorded.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// HasErrors reports whether any error was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// SetMatch records a capture under id, replacing any earlier value.
func (r *Result) SetMatch(id string, v any) {
	r.Value[id] = v
}

// AddError appends an error.
func (r *Result) AddError(err error) {
	r.Errors = append(r.Errors, err)
}

// KeepFarthest advances the farthest position to include p.
func (r *Result) KeepFarthest(p NodePosPair) {
	r.Farthest = r.Farthest.Max(p)
}

// Join merges other into r: captures merge key by key with other winning,
// errors concatenate and positions take the maximum.
func (r *Result) Join(other *Result) {
	if other == nil {
		return
	}
	r.Value = joinValues(r.Value, other.Value)
	r.Errors = append(r.Errors, other.Errors...)
	r.KeepFarthest(other.Farthest)
	if other.hasResume {
		r.resume, r.hasResume = other.resume, true
	}
}

// joinErrors takes only the errors and position of other, leaving r's
// captures alone.
func (r *Result) joinErrors(other *Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.KeepFarthest(other.Farthest)
}

// joinValues merges src into dst. Nested objects merge recursively; any
// other value in src replaces the one in dst.
func joinValues(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				dst[k] = joinValues(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}

// cloneValues deep-copies a capture tree.
func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneValues(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
