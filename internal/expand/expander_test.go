package expand_test

import (
	"slices"
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/diag"
	"rillint/internal/expand"
	"rillint/internal/lexer"
	"rillint/internal/source"
	"rillint/internal/token"
)

func lex(t *testing.T, fs *source.FileSet, src string) []token.Token {
	t.Helper()
	id := fs.AddVirtual("test.rl", []byte(src))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()
	return toks[:len(toks)-1]
}

// callAt builds the call starting at toks[i] (the macro name).
func callAt(t *testing.T, toks []token.Token, i int) expand.Call {
	t.Helper()
	closeIdx, ok := expand.MatchingClose(toks, i+2)
	test.True(t, ok, test.Context("unbalanced call"))
	return expand.Call{Name: toks[i], Open: toks[i+2], Close: toks[closeIdx], Inner: toks[i+3 : closeIdx]}
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func TestSplitArgs(t *testing.T) {
	fs := source.NewFileSet()
	toks := lex(t, fs, "a, f(b, c), [d, e],")
	args := expand.SplitArgs(toks)
	test.Equal(t, len(args), 3)
	test.EqualFunc(t, texts(args[1]), []string{"f", "(", "b", ",", "c", ")"}, slices.Equal)
	test.Equal(t, len(expand.SplitArgs(nil)), 0)
}

func TestExpandAllocatesContext(t *testing.T) {
	fs := source.NewFileSet()
	toks := lex(t, fs, "macro add($a, $b) { $a + $b } add!(x, 1)")
	bag := diag.NewBag(0)
	exp := expand.New(fs.Hygiene(), expand.Options{Reporter: diag.BagReporter{Bag: bag}})
	exp.Collect(toks)

	callIdx := len(toks) - 7
	test.Equal(t, toks[callIdx].Text, "add")
	out, ok := exp.Expand(callAt(t, toks, callIdx))
	test.True(t, ok)
	test.Equal(t, bag.Len(), 0)
	test.EqualFunc(t, texts(out), []string{"x", "+", "1"}, slices.Equal)

	// аргументы сохраняют контекст вызывающего, тело получает новый
	test.Equal(t, out[0].Span.Ctxt, source.RootContext)
	test.Equal(t, out[2].Span.Ctxt, source.RootContext)
	test.True(t, out[1].Span.FromExpansion())

	data, ok := fs.Hygiene().Data(out[1].Span.Ctxt)
	test.True(t, ok)
	test.Equal(t, data.Name, "add")
	test.Equal(t, data.Parent, source.RootContext)
	test.Equal(t, data.Depth, uint32(1))
	site, _ := fs.Text(data.CallSite)
	test.Equal(t, site, "add!(x, 1)")

	walked, ok := fs.Hygiene().WalkToContext(out[1].Span, source.RootContext)
	test.True(t, ok)
	test.Equal(t, walked, data.CallSite)
	test.Equal(t, len(exp.Expansions()), 1)
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{name: "unknown", src: "nope!(1)", code: diag.ExpUnknownMacro},
		{name: "arity", src: "macro m($a) { $a } m!(1, 2)", code: diag.ExpArgCount},
		{name: "metavar", src: "macro m($a) { $b } m!(1)", code: diag.ExpUnknownMetavar},
		{name: "builtin", src: "with_span!(x)", code: diag.ExpBadBuiltinArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			toks := lex(t, fs, tt.src)
			bag := diag.NewBag(0)
			exp := expand.New(fs.Hygiene(), expand.Options{Reporter: diag.BagReporter{Bag: bag}})
			exp.Collect(toks)
			closeIdx := len(toks) - 1
			nameIdx := closeIdx
			for toks[nameIdx].Kind != token.Bang {
				nameIdx--
			}
			nameIdx--
			_, _ = exp.Expand(expand.Call{Name: toks[nameIdx], Open: toks[nameIdx+2], Close: toks[closeIdx], Inner: toks[nameIdx+3 : closeIdx]})
			test.True(t, bag.Len() > 0, test.Context("no diagnostic for %q", tt.src))
			test.Equal(t, bag.Items()[0].Code, tt.code)
		})
	}
}

func TestDuplicateDefinition(t *testing.T) {
	fs := source.NewFileSet()
	toks := lex(t, fs, "macro m() { 1 } extern macro m() { 2 }")
	bag := diag.NewBag(0)
	exp := expand.New(fs.Hygiene(), expand.Options{Reporter: diag.BagReporter{Bag: bag}})
	exp.Collect(toks)
	test.Equal(t, bag.Len(), 1)
	test.Equal(t, bag.Items()[0].Code, diag.ExpDuplicateMacro)
	m, ok := exp.Lookup("m")
	test.True(t, ok)
	test.True(t, !m.External)
}

func TestWithSpanLiesAboutSpans(t *testing.T) {
	fs := source.NewFileSet()
	toks := lex(t, fs, "with_span!(x, a == true)")
	exp := expand.New(fs.Hygiene(), expand.Options{})
	out, ok := exp.Expand(callAt(t, toks, 0))
	test.True(t, ok)
	test.EqualFunc(t, texts(out), []string{"a", "==", "true"}, slices.Equal)
	for _, tok := range out {
		test.Equal(t, tok.Span, toks[3].Span)
	}
	test.Equal(t, fs.Hygiene().Len(), 1)
}

func TestRecursionLimit(t *testing.T) {
	fs := source.NewFileSet()
	toks := lex(t, fs, "macro r() { r!() } r!()")
	bag := diag.NewBag(0)
	exp := expand.New(fs.Hygiene(), expand.Options{Reporter: diag.BagReporter{Bag: bag}, MaxDepth: 3})
	exp.Collect(toks)

	call := callAt(t, toks, len(toks)-4)
	depth := 0
	for {
		out, ok := exp.Expand(call)
		if !ok {
			break
		}
		depth++
		call = callAt(t, out, 0)
	}
	test.Equal(t, depth, 3)
	test.Equal(t, bag.Items()[0].Code, diag.ExpRecursionLimit)
}

func TestTokenBudget(t *testing.T) {
	fs := source.NewFileSet()
	toks := lex(t, fs, "macro m($a) { m!($a $a) } m!(1)")
	bag := diag.NewBag(0)
	exp := expand.New(fs.Hygiene(), expand.Options{Reporter: diag.BagReporter{Bag: bag}, MaxTokens: 200})
	exp.Collect(toks)

	// каждый уровень удваивает аргумент: 6, 8, 12, 20, 36, 68, 132 токенов
	call := callAt(t, toks, len(toks)-5)
	depth := 0
	for {
		out, ok := exp.Expand(call)
		if !ok {
			break
		}
		depth++
		call = callAt(t, out, 0)
	}
	test.Equal(t, depth, 6)
	test.Equal(t, bag.Len(), 1)
	test.Equal(t, bag.Items()[0].Code, diag.ExpRecursionLimit)

	// бюджет исчерпан: дальше без новых диагностик
	_, ok := exp.Expand(call)
	test.True(t, !ok)
	test.Equal(t, bag.Len(), 1)
	test.Equal(t, len(exp.Expansions()), 6)
}
