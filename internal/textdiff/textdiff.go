// Package textdiff renders expected-versus-actual text differences for diagnostics.
package textdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Markers delimit deleted (expected only) and inserted (actual only) runs.
const (
	DeleteOpen  = "[-"
	DeleteClose = "-]"
	InsertOpen  = "{+"
	InsertClose = "+}"
)

// Render returns expected rewritten into actual, with text only in expected
// wrapped as [-...-] and text only in actual wrapped as {+...+}.
func Render(expected, actual string) string {
	diffCfg := diffpatch.New()
	multiLine := strings.Contains(expected, "\n") && strings.Contains(actual, "\n")
	diffs := diffCfg.DiffMain(expected, actual, multiLine)
	diffs = diffCfg.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffpatch.DiffDelete:
			sb.WriteString(DeleteOpen)
			sb.WriteString(d.Text)
			sb.WriteString(DeleteClose)
		case diffpatch.DiffInsert:
			sb.WriteString(InsertOpen)
			sb.WriteString(d.Text)
			sb.WriteString(InsertClose)
		}
	}
	return sb.String()
}

// Distance is the Levenshtein distance between expected and actual.
func Distance(expected, actual string) int {
	diffCfg := diffpatch.New()
	return diffCfg.DiffLevenshtein(diffCfg.DiffMain(expected, actual, false))
}
