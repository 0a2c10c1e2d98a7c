package validator

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/404Wolf/mdvalidate-sub001/mderrors"
	"github.com/404Wolf/mdvalidate-sub001/mdtree"
)

// State is a validation session: one schema, and an input that may arrive
// over several calls.
//
// Feed input with ReadInput and call Validate after each chunk. Input text is
// replaced wholesale on each call and must never shrink; once end of input
// has been signalled it cannot be withdrawn. Captures and errors accumulate
// across calls. Errors are never retracted.
//
// A State is not safe for concurrent use.
type State struct {
	cfg    *config
	schema *mdtree.Tree

	input     string
	inputTree *mdtree.Tree
	eof       bool

	captures map[string]any
	errs     []error
	seen     map[errorKey][]int
	farthest NodePosPair

	resume    NodePosPair
	hasResume bool
}

// New starts a session for the given schema. The schema is parsed once; a
// schema that is not valid UTF-8 yields a *mderrors.SchemaError.
func New(schema string, opts ...Option) (*State, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	tree, err := mdtree.Parse([]byte(schema))
	if err != nil {
		var parseErr *mderrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Source = "schema"
		}
		return nil, &mderrors.SchemaError{
			Kind:    mderrors.InvalidEncoding,
			Message: "schema is not valid UTF-8",
			Cause:   err,
		}
	}

	cfg.logger.Debug("parsed schema", "nodes", tree.Len(), "bytes", len(schema))
	return &State{
		cfg:       cfg,
		schema:    tree,
		inputTree: mdtree.MustParse(""),
		captures:  map[string]any{},
		seen:      map[errorKey][]int{},
	}, nil
}

// ReadInput replaces the input text. eof reports whether input is complete.
//
// A *mderrors.ConfigError is returned when input is shorter than the text
// already read, when it changes after end of input, or when eof goes from
// true back to false. Before end of input an incomplete UTF-8 sequence at
// the very end is held back until the next call.
func (s *State) ReadInput(input string, eof bool) error {
	if s.eof && !eof {
		return &mderrors.ConfigError{Option: "eof", Message: "end of input cannot be withdrawn"}
	}
	if s.cfg.normalize {
		input = norm.NFC.String(input)
	}
	if len(input) < len(s.input) {
		return &mderrors.ConfigError{
			Option:  "input",
			Message: fmt.Sprintf("input shrank from %d to %d bytes", len(s.input), len(input)),
		}
	}
	if s.eof && input != s.input {
		return &mderrors.ConfigError{Option: "input", Message: "input changed after end of input"}
	}

	parsed := input
	if !eof {
		parsed = completeRunes(input)
	}
	tree, err := mdtree.Parse([]byte(parsed))
	if err != nil {
		var parseErr *mderrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Source = "input"
		}
		return fmt.Errorf("validator: %w", err)
	}

	s.input = input
	s.inputTree = tree
	s.eof = eof
	return nil
}

// Validate validates the input read so far, resuming from where the previous
// call left off, and returns the accumulated result of the session.
func (s *State) Validate() *Result {
	w := newWalker(s.schema, s.inputTree, s.eof, s.cfg)

	var res *Result
	if start, ok := s.resumePoint(w); ok {
		s.cfg.logger.Debug("resuming validation",
			"schema_index", start.schema.DescendantIndex(), "input_index", start.input.DescendantIndex())
		res = walkBlocks(w, start.schema, start.input, true, true)
	} else {
		res = validateNode(w)
	}
	s.merge(res)

	s.cfg.logger.Debug("validation pass complete",
		"eof", s.eof, "errors", len(s.errs), "captures", len(s.captures))
	return s.snapshot()
}

// Captures returns the captures accumulated so far.
func (s *State) Captures() map[string]any {
	return cloneValues(s.captures)
}

// Errors returns the errors accumulated so far, in the order they were found.
func (s *State) Errors() []error {
	return append([]error(nil), s.errs...)
}

// Farthest returns the farthest node pair any call has reached.
func (s *State) Farthest() NodePosPair {
	return s.farthest
}

// Done reports whether end of input has been signalled.
func (s *State) Done() bool {
	return s.eof
}

// resumePoint returns w moved to the top-level pair recorded by the previous
// call, if that pair still addresses children of both document roots.
func (s *State) resumePoint(w walker) (walker, bool) {
	if !s.hasResume {
		return w, false
	}
	start := w
	if !start.restore(checkpoint(s.resume)) {
		return w, false
	}
	if start.schema.Node().Parent != 0 || start.input.Node().Parent != 0 {
		return w, false
	}
	return start, true
}

// errorKey identifies what an error is about, independent of its message.
type errorKey struct {
	class   int
	kind    int
	schema  int
	input   int
	content int
	detail  string
}

func keyOf(err error) errorKey {
	var violation *mderrors.SchemaViolationError
	if errors.As(err, &violation) {
		return errorKey{
			class:   1,
			kind:    int(violation.Kind),
			schema:  violation.SchemaIndex,
			input:   violation.InputIndex,
			content: int(violation.Content),
		}
	}
	var schemaErr *mderrors.SchemaError
	if errors.As(err, &schemaErr) {
		return errorKey{class: 2, kind: int(schemaErr.Kind), schema: schemaErr.SchemaIndex, detail: schemaErr.Detail}
	}
	return errorKey{detail: err.Error()}
}

// merge folds one pass into the session. An error about the same node pair
// as one from an earlier pass replaces it in place, so revisiting the resume
// pair neither reports it twice nor keeps evidence from a shorter input.
func (s *State) merge(res *Result) {
	s.captures = joinValues(s.captures, res.Value)
	pass := make(map[errorKey]int, len(res.Errors))
	for _, err := range res.Errors {
		key := keyOf(err)
		n := pass[key]
		pass[key]++
		if n < len(s.seen[key]) {
			s.errs[s.seen[key][n]] = err
			continue
		}
		s.seen[key] = append(s.seen[key], len(s.errs))
		s.errs = append(s.errs, err)
		if mderrors.IsFatal(err) {
			s.cfg.logger.Warn("schema error", "error", err)
		}
	}
	s.farthest = s.farthest.Max(res.Farthest)
	if res.hasResume {
		s.resume, s.hasResume = res.resume, true
	}
}

func (s *State) snapshot() *Result {
	return &Result{
		Value:    s.Captures(),
		Errors:   s.Errors(),
		Farthest: s.farthest,
		schema:   s.schema,
		input:    s.inputTree,
	}
}

// completeRunes drops an incomplete UTF-8 sequence from the end of text.
func completeRunes(text string) string {
	for i := len(text) - 1; i >= 0 && i >= len(text)-utf8.UTFMax; i-- {
		if utf8.RuneStart(text[i]) {
			if !utf8.FullRuneInString(text[i:]) {
				return text[:i]
			}
			break
		}
	}
	return text
}
