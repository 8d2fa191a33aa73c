package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"rillint/internal/expand"
	"rillint/internal/source"
)

// FormatExpansions prints every recorded expansion: its context, parent,
// call site and the re-spanned tokens it produced, indented by depth.
func FormatExpansions(w io.Writer, log []expand.Expansion, fs *source.FileSet) error {
	hyg := fs.Hygiene()
	var sb strings.Builder
	for _, x := range log {
		indent := strings.Repeat("  ", int(max(x.Depth, 1)-1))
		data, _ := hyg.Data(x.Ctxt)
		call, _ := fs.Text(x.CallSite)
		ext := ""
		if data.External {
			ext = " extern"
		}
		fmt.Fprintf(&sb, "%sctxt %d: %s!%s parent=%d at %s %q\n",
			indent, x.Ctxt, x.Macro, ext, data.Parent, formatSpan(x.CallSite, fs), call)
		texts := make([]string, 0, len(x.Tokens))
		for _, t := range x.Tokens {
			texts = append(texts, t.Text)
		}
		fmt.Fprintf(&sb, "%s  => %s\n", indent, strings.Join(texts, " "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
