package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"        _                          ", "#818cf8"},
	{"   __ _| |__   __ _  ___ _   _ ___ ", "#a78bfa"},
	{"  / _` | '_ \\ / _` |/ __| | | / __|", "#c084fc"},
	{" | (_| | |_) | (_| | (__| |_| \\__ \\", "#e879f9"},
	{"  \\__,_|_.__/ \\__,_|\\___|\\__,_|___/", "#f472b6"},
}

// PrintBanner writes the abacus banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, p.String(line.text).Foreground(p.Color(line.color)))
	}
	if version != "" {
		fmt.Fprintln(w, p.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
