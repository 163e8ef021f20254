package display

import (
	"io"

	"github.com/fatih/color"
)

const banner = `  __             _            _
 / _| ___  _ __ | |_ ___ _ __| |_
| |_ / _ \| '_ \| __/ __| '__| __|
|  _| (_) | | | | |_\__ \ |  | |_
|_|  \___/|_| |_|\__|___/_|   \__|
`

// PrintBanner writes the ASCII art banner in magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	_, _ = color.New(color.FgHiMagenta, color.Bold).Fprint(w, banner)
	_, _ = io.WriteString(w, "\n")
}
