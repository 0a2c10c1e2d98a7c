// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// IsTerminal reports whether w is a terminal, including Cygwin and MSYS ptys.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette holds the colours used for human-readable reports.
type Palette struct {
	OK   *color.Color
	Fail *color.Color
	Warn *color.Color
	Dim  *color.Color
}

// NewPalette returns a palette for output written to w. Colour is used only
// when w is a terminal and disabled is false.
func NewPalette(w io.Writer, disabled bool) Palette {
	p := Palette{
		OK:   color.New(color.FgGreen, color.Bold),
		Fail: color.New(color.FgRed),
		Warn: color.New(color.FgYellow),
		Dim:  color.New(color.Faint),
	}
	if disabled || !IsTerminal(w) {
		for _, c := range []*color.Color{p.OK, p.Fail, p.Warn, p.Dim} {
			c.DisableColor()
		}
	} else {
		for _, c := range []*color.Color{p.OK, p.Fail, p.Warn, p.Dim} {
			c.EnableColor()
		}
	}
	return p
}
