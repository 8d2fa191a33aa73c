package diag

import "rillint/internal/source"

// Reporter receives diagnostics from the scanner, parser, expander and lints.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter пишет в *Bag; nil Bag отбрасывает всё.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

type dedupKey struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

// DedupReporter forwards a diagnostic only the first time its code,
// severity, primary span and message are seen. Macro expansions can visit
// one call site many times; the driver reports through it.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	// контекст раскрытия не различаем: одно место, одна находка
	primary := d.Primary.WithCtxt(source.RootContext)
	key := dedupKey{code: d.Code, sev: d.Severity, primary: primary, msg: d.Message}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// ReportBuilder collects notes and fixes for one diagnostic and hands it to
// a Reporter on Emit. Methods are nil-safe so call sites can chain freely.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// WithLint tags the diagnostic with the lint that produced it.
func (b *ReportBuilder) WithLint(name string) *ReportBuilder {
	if b != nil {
		b.diag.Lint = name
	}
	return b
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithNote(sp, msg)
	}
	return b
}

// WithFixSuggestion appends a fix, materialised or lazy.
func (b *ReportBuilder) WithFixSuggestion(fix Fix) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithFixSuggestion(fix)
	}
	return b
}

// Emit reports the diagnostic; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
}
