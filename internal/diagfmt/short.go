package diagfmt

import (
	"fmt"
	"io"

	"rillint/internal/diag"
	"rillint/internal/source"
)

// Short prints one line per diagnostic:
// <path>:<line>:<col>: <severity>[<CODE>] <lint>: <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		name := d.Lint
		if name == "" {
			name = d.Code.Title()
		}
		fmt.Fprintf(w, "%s: %s[%s] %s: %s\n",
			location(fs, d.Primary, mode),
			d.Severity.Label(),
			d.Code.ID(),
			name,
			d.Message)
	}
}
