package expand

import (
	"fmt"
	"sync"

	"rillint/internal/diag"
	"rillint/internal/source"
	"rillint/internal/token"
)

type Options struct {
	Reporter diag.Reporter
	// MaxDepth overrides the package limit when positive.
	MaxDepth int
	// MaxTokens overrides the per-file token budget when positive.
	MaxTokens int
}

// Expander holds the macros of one file.
type Expander struct {
	hyg    *source.Hygiene
	opts   Options
	mu     sync.Mutex
	macros map[string]*Macro
	log    []Expansion
	// spent считает токены всех раскрытий; после превышения бюджета
	// раскрытие больше не выполняется
	spent     int
	exhausted bool
}

func New(hyg *source.Hygiene, opts Options) *Expander {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = MaxDepth
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = MaxTokens
	}
	return &Expander{hyg: hyg, opts: opts, macros: make(map[string]*Macro)}
}

// Define registers m. A second definition of the same name is reported and
// ignored.
func (e *Expander) Define(m *Macro) bool {
	e.mu.Lock()
	prev, dup := e.macros[m.Name]
	if !dup {
		e.macros[m.Name] = m
	}
	e.mu.Unlock()
	if dup {
		diag.ReportError(e.opts.Reporter, diag.ExpDuplicateMacro, m.NameSpan,
			fmt.Sprintf("macro %q is defined more than once", m.Name)).
			WithNote(prev.NameSpan, "first defined here").
			Emit()
		return false
	}
	return true
}

// Lookup returns the macro called name.
func (e *Expander) Lookup(name string) (*Macro, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.macros[name]
	return m, ok
}

// Known reports whether name resolves to a macro or a builtin.
func (e *Expander) Known(name string) bool {
	if name == BuiltinWithSpan {
		return true
	}
	_, ok := e.Lookup(name)
	return ok
}

// Expansions returns every expansion performed so far, in order.
func (e *Expander) Expansions() []Expansion {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Expansion, len(e.log))
	copy(out, e.log)
	return out
}

// Expand produces the tokens replacing call. On failure the problem has
// been reported and the caller substitutes an error node.
func (e *Expander) Expand(call Call) ([]token.Token, bool) {
	name := call.Name.Text
	if name == BuiltinWithSpan {
		return e.withSpan(call)
	}
	m, ok := e.Lookup(name)
	if !ok {
		diag.ReportError(e.opts.Reporter, diag.ExpUnknownMacro, call.Name.Span,
			fmt.Sprintf("cannot find macro %q", name)).Emit()
		return nil, false
	}
	if e.spentBudget() {
		// уже сообщили один раз
		return nil, false
	}
	depth := e.hyg.Depth(call.Name.Span.Ctxt) + 1
	if int(depth) > e.opts.MaxDepth {
		diag.ReportError(e.opts.Reporter, diag.ExpRecursionLimit, call.Span(),
			fmt.Sprintf("recursion limit reached while expanding %q", name)).
			WithNote(m.NameSpan, fmt.Sprintf("expansion depth is limited to %d", e.opts.MaxDepth)).
			Emit()
		return nil, false
	}
	args := SplitArgs(call.Inner)
	if len(args) != len(m.Params) {
		diag.ReportError(e.opts.Reporter, diag.ExpArgCount, call.Span(),
			fmt.Sprintf("macro %q takes %d argument(s) but %d were supplied", name, len(m.Params), len(args))).
			WithNote(m.NameSpan, "macro defined here").
			Emit()
		return nil, false
	}

	ctxt := e.hyg.NewContext(source.ExpansionInfo{
		Kind:     source.ExpnMacro,
		Name:     name,
		CallSite: call.Span(),
		DefSite:  m.BodySpan,
		External: m.External,
	})

	out := make([]token.Token, 0, len(m.Body))
	for i := 0; i < len(m.Body); i++ {
		t := m.Body[i]
		if t.Kind == token.Dollar && i+1 < len(m.Body) && m.Body[i+1].Kind == token.Ident {
			meta := m.Body[i+1]
			i++
			idx := m.paramIndex(meta.Text)
			if idx < 0 {
				diag.ReportError(e.opts.Reporter, diag.ExpUnknownMetavar, t.Span.Cover(meta.Span),
					fmt.Sprintf("unknown metavariable $%s in macro %q", meta.Text, name)).Emit()
				continue
			}
			out = append(out, args[idx]...)
			continue
		}
		t.Span = t.Span.WithCtxt(ctxt)
		out = append(out, t)
	}

	if !e.charge(len(out)) {
		diag.ReportError(e.opts.Reporter, diag.ExpRecursionLimit, call.Span(),
			fmt.Sprintf("expansion of %q exceeds the token budget", name)).
			WithNote(m.NameSpan, fmt.Sprintf("all expansions in a file may produce at most %d tokens", e.opts.MaxTokens)).
			Emit()
		return nil, false
	}

	e.mu.Lock()
	e.log = append(e.log, Expansion{Ctxt: ctxt, Macro: name, CallSite: call.Span(), Depth: depth, Tokens: out})
	e.mu.Unlock()
	return out, true
}

// spentBudget reports whether the token budget has already been exceeded.
func (e *Expander) spentBudget() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exhausted
}

// charge adds n tokens to the file's budget. It fails once the budget is
// exceeded and keeps failing afterwards.
func (e *Expander) charge(n int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exhausted {
		return false
	}
	e.spent += n
	if e.spent > e.opts.MaxTokens {
		e.exhausted = true
		return false
	}
	return true
}

// withSpan implements with_span!(tok, rest...): every token of rest takes
// the span of tok. No context is allocated, the result looks hand-written.
func (e *Expander) withSpan(call Call) ([]token.Token, bool) {
	args := SplitArgs(call.Inner)
	if len(args) < 2 || len(args[0]) != 1 {
		diag.ReportError(e.opts.Reporter, diag.ExpBadBuiltinArgs, call.Span(),
			"with_span! expects a single token followed by the tokens to re-span").Emit()
		return nil, false
	}
	anchor := args[0][0].Span
	rest := call.Inner[len(args[0])+1:]
	out := make([]token.Token, len(rest))
	for i, t := range rest {
		t.Span = anchor
		out[i] = t
	}
	return out, true
}
