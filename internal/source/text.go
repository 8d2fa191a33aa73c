package source

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Text returns the source text under span. It fails for unknown files,
// binary content and out-of-range offsets.
func (fileSet *FileSet) Text(span Span) (string, bool) {
	f, ok := fileSet.Lookup(span.File)
	if !ok || !f.HasText() {
		return "", false
	}
	if span.Start > span.End || int(span.End) > len(f.Content) {
		return "", false
	}
	return f.text[span.Start:span.End], true
}

// FileText returns the whole text of the file holding span.
func (fileSet *FileSet) FileText(span Span) (string, bool) {
	f, ok := fileSet.Lookup(span.File)
	if !ok || !f.HasText() {
		return "", false
	}
	return f.text, true
}

// TextAtContext walks span to ctxt and returns the text there.
func (fileSet *FileSet) TextAtContext(span Span, ctxt ContextID) (string, bool) {
	walked, ok := fileSet.hyg.WalkToContext(span, ctxt)
	if !ok {
		return "", false
	}
	return fileSet.Text(walked)
}

// CheckText reports whether the text under span is available and satisfies pred.
func (fileSet *FileSet) CheckText(span Span, pred func(src string) bool) bool {
	src, ok := fileSet.Text(span)
	return ok && pred(src)
}

// WithText applies fn to the text under span.
func WithText[T any](fileSet *FileSet, span Span, fn func(src string) T) (T, bool) {
	var zero T
	src, ok := fileSet.Text(span)
	if !ok {
		return zero, false
	}
	return fn(src), true
}

// WithTextAndRange applies fn to the whole file text and the byte range of
// span inside it.
func WithTextAndRange[T any](fileSet *FileSet, span Span, fn func(src string, start, end int) T) (T, bool) {
	var zero T
	src, ok := fileSet.FileText(span)
	if !ok || span.Start > span.End || int(span.End) > len(src) {
		return zero, false
	}
	return fn(src, int(span.Start), int(span.End)), true
}

// WithTrailingWhitespace extends span over the whitespace that follows it.
func (fileSet *FileSet) WithTrailingWhitespace(span Span) Span {
	src, ok := fileSet.FileText(span)
	if !ok || int(span.End) > len(src) {
		return span
	}
	tail := src[span.End:]
	n := len(tail) - len(strings.TrimLeftFunc(tail, unicode.IsSpace))
	return span.WithEnd(span.End + uint32(n)) // #nosec G115 -- n <= len(src)
}

// ExpandRangeBy grows span outward by the amounts fn returns. fn receives the
// whole file text and the current range; ok=false (or amounts leaving the
// file) abandon the expansion.
func (fileSet *FileSet) ExpandRangeBy(span Span, fn func(src string, start, end int) (byLo, byHi int, ok bool)) (Span, bool) {
	src, ok := fileSet.FileText(span)
	if !ok || span.Start > span.End || int(span.End) > len(src) {
		return span, false
	}
	byLo, byHi, ok := fn(src, int(span.Start), int(span.End))
	if !ok || byLo < 0 || byHi < 0 || byLo > int(span.Start) || int(span.End)+byHi > len(src) {
		return span, false
	}
	span.Start -= uint32(byLo) // #nosec G115 -- проверено выше
	span.End += uint32(byHi)   // #nosec G115 -- проверено выше
	return span, true
}

// LineSpan returns the span from the start of span's first line up to span.Start.
func (fileSet *FileSet) LineSpan(span Span) (Span, bool) {
	f, ok := fileSet.Lookup(span.File)
	if !ok || int(span.Start) > len(f.Content) {
		return span, false
	}
	return Span{File: span.File, Start: lineStart(f.LineIdx, span.Start), End: span.Start, Ctxt: span.Ctxt}, true
}

// LineIndent returns the leading whitespace of the line containing span.Start.
func (fileSet *FileSet) LineIndent(span Span) (string, bool) {
	f, ok := fileSet.Lookup(span.File)
	if !ok || !f.HasText() || int(span.Start) > len(f.Content) {
		return "", false
	}
	start := lineStart(f.LineIdx, span.Start)
	rest := f.Content[start:]
	n := 0
	for n < len(rest) && (rest[n] == ' ' || rest[n] == '\t') {
		n++
	}
	return string(rest[:n]), true
}

// IndentOf returns the width in bytes of the indentation of span's line.
func (fileSet *FileSet) IndentOf(span Span) (int, bool) {
	indent, ok := fileSet.LineIndent(span)
	return len(indent), ok
}

// FirstLineOf moves span.Start back to the first non-blank character of its line.
func (fileSet *FileSet) FirstLineOf(span Span) Span {
	line, ok := fileSet.LineSpan(span)
	if !ok {
		return span
	}
	src, ok := fileSet.Text(line)
	if !ok {
		return span
	}
	idx := strings.IndexFunc(src, func(r rune) bool { return !unicode.IsSpace(r) })
	if idx < 0 {
		return span
	}
	return span.WithStart(line.Start + uint32(idx)) // #nosec G115 -- idx < len(line)
}

// IsPresent reports whether span refers to non-empty text.
func (fileSet *FileSet) IsPresent(span Span) bool {
	src, ok := fileSet.Text(span)
	return !ok || src != ""
}

// TrimSpan shrinks span so it starts and ends at non-whitespace text.
func (fileSet *FileSet) TrimSpan(span Span) Span {
	src, ok := fileSet.Text(span)
	if !ok {
		return span
	}
	lead := len(src) - len(strings.TrimLeftFunc(src, unicode.IsSpace))
	trail := len(src) - len(strings.TrimRightFunc(src, unicode.IsSpace))
	if lead == len(src) {
		return span.ShrinkToStart()
	}
	span.Start += uint32(lead) // #nosec G115 -- lead <= len(src)
	span.End -= uint32(trail)  // #nosec G115 -- trail <= len(src)
	return span
}

// RuneSpanAt returns the span of the rune at byte offset off, if any.
func (fileSet *FileSet) RuneSpanAt(file FileID, off uint32) (Span, bool) {
	f, ok := fileSet.Lookup(file)
	if !ok || !f.HasText() || int(off) >= len(f.Content) {
		return Span{}, false
	}
	_, size := utf8.DecodeRune(f.Content[off:])
	return Span{File: file, Start: off, End: off + uint32(size)}, true // #nosec G115 -- size <= 4
}
