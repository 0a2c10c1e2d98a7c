package matcher

import (
	"regexp"
	"strconv"
)

var (
	// extrasPrefix is the greedy run of quantifier groups and an optional
	// trailing literal marker at the start of the text after a code span.
	extrasPrefix = regexp.MustCompile(`^((?:\+|\{\d*,\d*\})*)(!?)`)
	// extrasGroup picks the individual groups out of a matched run.
	extrasGroup = regexp.MustCompile(`\+|\{(\d*),(\d*)\}`)
)

// Extras are the modifiers written right after a matcher's closing backtick.
//
//   - `{2,5}` repeats 2 to 5 times, `{3,}` at least 3, `{,4}` at most 4, `{,}` any number
//   - `+` repeats at least once; each further `+` or `{}` group adds one allowed nesting level
//   - `!` makes the code span literal text instead of a matcher
type Extras struct {
	// Repeated is true when at least one quantifier group was present.
	Repeated bool
	// Min is the minimum repetition count (0 when not given).
	Min int
	// Max is the maximum repetition count, meaningful only when HasMax is set.
	Max    int
	HasMax bool
	// Groups is the number of quantifier groups written.
	Groups int
	// Literal is true when the code span was followed by `!`.
	Literal bool
}

// ParseExtras consumes the extras at the start of text and returns them with
// whatever literal text remains.
func ParseExtras(text string) (Extras, string) {
	var ex Extras
	loc := extrasPrefix.FindStringSubmatchIndex(text)
	if loc == nil || loc[1] == 0 {
		return ex, text
	}

	groups := text[loc[2]:loc[3]]
	ex.Literal = loc[5] > loc[4]

	for i, g := range extrasGroup.FindAllStringSubmatch(groups, -1) {
		ex.Groups++
		ex.Repeated = true
		if i > 0 {
			continue
		}
		if g[0] == "+" {
			ex.Min = 1
			continue
		}
		if g[1] != "" {
			ex.Min, _ = strconv.Atoi(g[1])
		}
		if g[2] != "" {
			ex.Max, _ = strconv.Atoi(g[2])
			ex.HasMax = true
		}
	}

	return ex, text[loc[1]:]
}

// VariableLength reports whether the number of repetitions is not fixed.
func (e Extras) VariableLength() bool {
	if !e.Repeated {
		return false
	}
	return !e.HasMax || e.Min != e.Max
}

// MaxDepth returns the nesting cap implied by writing several quantifier
// groups. A single group leaves nesting unlimited.
func (e Extras) MaxDepth() (int, bool) {
	if e.Groups > 1 {
		return e.Groups, true
	}
	return 0, false
}

// String renders the extras back into schema syntax.
func (e Extras) String() string {
	s := ""
	if e.Repeated {
		lo, hi := "", ""
		if e.Min > 0 {
			lo = strconv.Itoa(e.Min)
		}
		if e.HasMax {
			hi = strconv.Itoa(e.Max)
		}
		s = "{" + lo + "," + hi + "}"
		for i := 1; i < e.Groups; i++ {
			s += "{,}"
		}
	}
	if e.Literal {
		s += "!"
	}
	return s
}
