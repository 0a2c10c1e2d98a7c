package matcher

import "regexp"

var (
	// curlyPattern recognises a matcher wrapped in braces, as used where a
	// code span cannot appear: code block info strings and link destinations.
	curlyPattern = regexp.MustCompile(`^\{((?:[A-Za-z0-9_-]+:)?(?:/.+/|` + rulerKeyword + `))\}(.*)$`)
	// curlyIDPattern recognises a bare `{id}` placeholder.
	curlyIDPattern = regexp.MustCompile(`^\{(\w+)\}$`)
)

// ParseCurly parses a brace-delimited matcher such as `{lang:/\w+/}`.
// Extras may follow the closing brace. ErrLiteral is returned when text is
// not in that form.
func ParseCurly(text string) (*Matcher, string, error) {
	groups := curlyPattern.FindStringSubmatch(text)
	if groups == nil {
		return nil, text, ErrLiteral
	}
	extras, rest := ParseExtras(groups[2])
	m, err := New(groups[1], extras)
	return m, rest, err
}

// CurlyID returns the id of a bare `{id}` placeholder.
func CurlyID(text string) (string, bool) {
	groups := curlyIDPattern.FindStringSubmatch(text)
	if groups == nil {
		return "", false
	}
	return groups[1], true
}
