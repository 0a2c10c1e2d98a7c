package matcher

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/404Wolf/mdvalidate-sub001/mderrors"
)

// ErrLiteral is returned when a code span is not a matcher and should be
// compared as literal text.
var ErrLiteral = errors.New("matcher: code span is literal")

// rulerKeyword is the reserved interior meaning "a thematic break goes here".
const rulerKeyword = "ruler"

// interiorPattern recognises `id:/re/`, `/re/`, `id:ruler` and `ruler`.
// The regex body runs from the first slash to the last one.
var interiorPattern = regexp.MustCompile(`^(?:([A-Za-z0-9_-]+):)?(?:/(.+)/|(` + rulerKeyword + `))$`)

// Matcher is a parsed schema matcher.
type Matcher struct {
	id      string
	body    string
	pattern *regexp.Regexp
	extras  Extras
	ruler   bool
}

// New builds a matcher from a code span interior and the extras that follow it.
//
// ErrLiteral is returned when the interior is not in matcher form or the
// extras carry the `!` marker. An uncompilable regex body yields a
// *mderrors.SchemaError of kind InvalidPattern, and a quantifier whose
// minimum exceeds its maximum one of kind InvalidQuantifier; SchemaIndex is
// left for the caller to fill in.
func New(interior string, extras Extras) (*Matcher, error) {
	if extras.Literal {
		return nil, ErrLiteral
	}
	groups := interiorPattern.FindStringSubmatch(interior)
	if groups == nil {
		return nil, ErrLiteral
	}

	if extras.HasMax && extras.Min > extras.Max {
		return nil, &mderrors.SchemaError{
			Kind:    mderrors.InvalidQuantifier,
			Detail:  interior + extras.String(),
			Message: fmt.Sprintf("quantifier minimum %d exceeds maximum %d", extras.Min, extras.Max),
		}
	}

	m := &Matcher{id: groups[1], body: groups[2], extras: extras}
	if groups[3] != "" {
		m.ruler = true
		return m, nil
	}

	// The body must compile on its own so that it cannot close the anchoring
	// group below and escape it.
	if _, err := regexp.Compile(m.body); err != nil {
		return nil, &mderrors.SchemaError{
			Kind:    mderrors.InvalidPattern,
			Detail:  interior,
			Message: "matcher regex does not compile",
			Cause:   err,
		}
	}
	re := regexp.MustCompile("^(?:" + m.body + ")")
	re.Longest()
	m.pattern = re
	return m, nil
}

// FromCodeSpan parses a code span interior together with the text node that
// follows it. The returned suffix is the following text with the extras
// removed; for a literal span without `!` it is the following text unchanged.
func FromCodeSpan(interior, following string) (*Matcher, string, error) {
	extras, rest := ParseExtras(following)
	m, err := New(interior, extras)
	if errors.Is(err, ErrLiteral) && !extras.Literal {
		return nil, following, err
	}
	return m, rest, err
}

// ID returns the capture id, if the matcher is named.
func (m *Matcher) ID() (string, bool) {
	return m.id, m.id != ""
}

// Pattern returns the compiled, start-anchored pattern. It is nil for rulers.
func (m *Matcher) Pattern() *regexp.Regexp {
	return m.pattern
}

// Extras returns the modifiers parsed after the matcher.
func (m *Matcher) Extras() Extras {
	return m.extras
}

// IsRepeated reports whether the matcher carries a quantifier.
func (m *Matcher) IsRepeated() bool {
	return m.extras.Repeated
}

// MinItems returns the minimum number of repetitions.
func (m *Matcher) MinItems() int {
	return m.extras.Min
}

// MaxItems returns the maximum number of repetitions, if bounded.
func (m *Matcher) MaxItems() (int, bool) {
	return m.extras.Max, m.extras.HasMax
}

// VariableLength reports whether the number of repetitions is not fixed.
func (m *Matcher) VariableLength() bool {
	return m.extras.VariableLength()
}

// MaxDepth returns the nesting cap set by the matcher, if any.
func (m *Matcher) MaxDepth() (int, bool) {
	return m.extras.MaxDepth()
}

// IsRuler reports whether the matcher is the reserved ruler keyword.
func (m *Matcher) IsRuler() bool {
	return m.ruler
}

// Match runs the pattern against the start of remainder and returns the
// longest match. The match need not consume the whole remainder.
func (m *Matcher) Match(remainder string) (string, bool) {
	if m.pattern == nil {
		return "", false
	}
	loc := m.pattern.FindStringIndex(remainder)
	if loc == nil {
		return "", false
	}
	return remainder[:loc[1]], true
}

// String renders the matcher back into schema syntax.
func (m *Matcher) String() string {
	var sb strings.Builder
	if m.id != "" {
		sb.WriteString(m.id)
		sb.WriteByte(':')
	}
	if m.ruler {
		sb.WriteString(rulerKeyword)
	} else {
		sb.WriteByte('/')
		sb.WriteString(m.body)
		sb.WriteByte('/')
	}
	return "`" + sb.String() + "`" + m.extras.String()
}
