package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Styles returns the answer and failure decorators for output written to w.
// Non-terminal writers get plain text.
func Styles(w io.Writer) (answer, failure func(string) string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	answer = func(s string) string {
		if p == termenv.Ascii {
			return s
		}
		return out.String(s).Foreground(p.Color("#34d399")).Bold().String()
	}
	failure = func(s string) string {
		if p == termenv.Ascii {
			return s
		}
		return out.String(s).Foreground(p.Color("#fb7185")).String()
	}
	return answer, failure
}
