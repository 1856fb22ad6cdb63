package theme

import (
	"fmt"
	"io"
)

// Banner returns the CLI banner.
func Banner() string {
	const cyan = "\033[36m"
	const magenta = "\033[35m"
	const reset = "\033[0m"

	return "" +
		magenta + "  ┌─┐┌─┐┌┐┌┌┬┐┬┌┐┌┌─┐┌┬┐\n" + reset +
		magenta + "  └─┐├┤ │││ │ ││││├┤  │ \n" + reset +
		magenta + "  └─┘└─┘┘└┘ ┴ ┴┘└┘└─┘ ┴ \n" + reset +
		cyan + "  polarity-filtered sentiment network\n" + reset
}

// PrintBanner writes the banner to w.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, Banner())
}
