package report

import (
	"fmt"
	"io"

	figure "github.com/common-nighthawk/go-figure"
)

// PrintBanner prints the startup ASCII-art banner, unless suppressed by
// --no-banner or a non-TTY writer.
func PrintBanner(w io.Writer, version string, noBanner bool) {
	if w == nil || noBanner {
		return
	}
	if !IsTTY(w) {
		fmt.Fprintf(w, "doublex-go v%s\n", version)
		return
	}
	fig := figure.NewFigure("DoubleX", "standard", true)
	fmt.Fprintln(w, fig.String())
	fmt.Fprintf(w, "doublex-go v%s\n\n", version)
}
