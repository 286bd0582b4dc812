package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorEnabled decides whether output to w should be coloured.
// NO_COLOR (https://no-color.org/) and TERM=dumb turn colour off,
// FORCE_COLOR turns it on, and otherwise w must be a terminal.
func ColorEnabled(w io.Writer) bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if _, exists := os.LookupEnv("FORCE_COLOR"); exists {
		return true
	}

	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
