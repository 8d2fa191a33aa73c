package diag

import (
	"rillint/internal/source"
)

// Note is a secondary message. A zero Span means it has no location.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	// Lint is the lint name for lint findings, empty otherwise.
	Lint    string
	Message string
	Primary source.Span
	Notes   []Note
	Fixes   []Fix
}

// New builds a diagnostic without notes or fixes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns d with one more note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix attaches an always-safe quick fix made of edits.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	return d.WithFixSuggestion(Fix{Title: title, Edits: edits})
}
