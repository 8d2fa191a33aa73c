// Package diag holds the diagnostic model shared by the lexer, the macro
// expander, the parser, the lints and the config loader.
//
// A Diagnostic has a severity, a numeric Code with a stable ID (LEX, SYN,
// EXP, IO, CFG, LNT and OBS ranges, see codes.go), an optional lint name, a
// message and a primary span. Notes add secondary locations; a note with a
// zero span has no location and is rendered as plain text.
//
// Fixes are data only: a title, a kind, an applicability level and a list
// of TextEdits in source coordinates. OldText on an edit is a guard the fix
// engine checks before rewriting. A fix may carry a Thunk instead of edits
// when building them is expensive; MaterializeFixes resolves thunks once,
// before fixes are cached, rendered or applied.
//
// Producers emit through a Reporter so they never see storage: BagReporter
// collects into a Bag, DedupReporter drops repeats of the same finding at
// the same span, so a finding inside a macro body is reported once rather
// than once per call site. NopReporter discards.
//
// Rendering lives in internal/diagfmt, applying fixes in internal/fix.
package diag
