package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rillint/internal/diag"
	"rillint/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, loc, gutter, caret, note, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.loc, p.gutter, p.caret, p.note, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	header := d.Code.ID()
	if d.Lint != "" {
		header += " " + d.Lint
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.loc.Sprint(location(fs, d.Primary, opts.PathMode)),
		sev.Sprint(d.Severity.String()),
		sev.Sprint(header),
		truncate(d.Message, opts.Width))

	writeSnippet(w, fs, d.Primary, int(opts.Context), pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			if n.Span == (source.Span{}) {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	ctx := diag.FixBuildContext{FileSet: fs}
	for i, f := range d.Fixes {
		resolved, err := f.Resolve(ctx)
		label := fmt.Sprintf("fix #%d:", i+1)
		if err != nil {
			fmt.Fprintf(w, "  %s %s (error: %v)\n", pal.fix.Sprint(label), f.Title, err)
			continue
		}
		meta := []string{resolved.Applicability.String()}
		if resolved.ID != "" {
			meta = append(meta, "id="+resolved.ID)
		}
		if resolved.IsPreferred {
			meta = append(meta, "preferred")
		}
		fmt.Fprintf(w, "  %s %s [%s]\n", pal.fix.Sprint(label), resolved.Title, strings.Join(meta, ", "))
		for _, e := range resolved.Edits {
			fmt.Fprintf(w, "      %s apply=%s\n", location(fs, e.Span, opts.PathMode), strconv.Quote(e.NewText))
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, e)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "      preview:")
			for _, l := range preview.before {
				fmt.Fprintf(w, "        - %s\n", l)
			}
			for _, l := range preview.after {
				fmt.Fprintf(w, "        + %s\n", l)
			}
		}
	}
}

// location renders path:line:col of span's start.
func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	f, ok := fs.Lookup(span.File)
	if !ok {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, f, mode), start.Line, start.Col)
}

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}

// writeSnippet prints the lines of span with context lines around them and
// underlines the span on its first line.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, pal palette) {
	f, ok := fs.Lookup(span.File)
	if !ok || !f.HasText() {
		return
	}
	start, end := fs.Resolve(span)
	first := max(int(start.Line)-context, 1)
	last := min(int(end.Line)+context, len(f.LineIdx)+1)
	gutter := len(strconv.Itoa(last))

	for n := first; n <= last; n++ {
		line := f.GetLine(uint32(n)) // #nosec G115 -- n <= число строк файла
		fmt.Fprintf(w, "  %s %s %s\n", pal.gutter.Sprintf("%*d", gutter, n), pal.gutter.Sprint("|"), expandTabs(line))
		if n != int(start.Line) {
			continue
		}
		col := int(start.Col) - 1
		if col > len(line) {
			col = len(line)
		}
		endCol := len(line)
		if end.Line == start.Line {
			endCol = min(int(end.Col)-1, len(line))
		}
		pad := runewidth.StringWidth(expandTabs(line[:col]))
		width := max(runewidth.StringWidth(expandTabs(line[col:max(endCol, col)])), 1)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "  %s %s %s%s\n", strings.Repeat(" ", gutter), pal.gutter.Sprint("|"), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// truncate shortens s to width display cells; zero means no limit.
func truncate(s string, width uint8) string {
	if width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
