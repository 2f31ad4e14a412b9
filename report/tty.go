package report

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
