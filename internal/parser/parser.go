package parser

import (
	"slices"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/expand"
	"rillint/internal/lexer"
	"rillint/internal/source"
	"rillint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Strings is shared between files of one run; nil creates a private interner.
	Strings *source.Interner
	// MaxDepth limits nested macro expansions (expand.MaxDepth when zero).
	MaxDepth int
	// MaxExpandedTokens limits the output of all expansions in the file
	// (expand.MaxTokens when zero).
	MaxExpandedTokens int
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree     *ast.Tree
	Expander *expand.Expander
	Errors   uint
}

// frame — поток токенов: сам файл или результат одного раскрытия макроса.
type frame struct {
	toks []token.Token
	pos  int
	eof  token.Token
	// expansion marks frames produced by a macro call.
	expansion bool
}

// Parser — состояние парсера на один файл
type Parser struct {
	fs       *source.FileSet
	hyg      *source.Hygiene
	tree     *ast.Tree
	exp      *expand.Expander
	opts     Options
	frames   []frame
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	// noStruct запрещает struct-литералы в условиях if/while/match/for.
	noStruct bool
}

// ParseFile lexes and parses one file. Macro calls are expanded in place;
// every node span carries the context of the expansion that produced it.
func ParseFile(fs *source.FileSet, file *source.File, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := &Parser{
		fs:   fs,
		hyg:  fs.Hygiene(),
		tree: ast.NewTree(file.ID, opts.Strings, ast.HintsFor(len(file.Content))),
	}
	p.opts = opts
	p.exp = expand.New(p.hyg, expand.Options{Reporter: opts.Reporter, MaxDepth: opts.MaxDepth, MaxTokens: opts.MaxExpandedTokens})

	toks := lexer.New(file, lexer.Options{Reporter: opts.Reporter}).All()
	eof := toks[len(toks)-1]
	toks = toks[:len(toks)-1]
	p.exp.Collect(toks)
	p.frames = []frame{{toks: toks, eof: eof}}
	p.lastSpan = source.Span{File: file.ID}

	p.parseItems()
	p.tree.Span = source.Span{File: file.ID, End: eof.Span.End}
	return Result{Tree: p.tree, Expander: p.exp, Errors: p.opts.CurrentErrors}
}

func (p *Parser) top() *frame {
	return &p.frames[len(p.frames)-1]
}

func (p *Parser) peek() token.Token {
	f := p.top()
	if f.pos < len(f.toks) {
		return f.toks[f.pos]
	}
	return f.eof
}

// peekN смотрит на n токенов вперёд в пределах текущего кадра.
func (p *Parser) peekN(n int) token.Token {
	f := p.top()
	if f.pos+n < len(f.toks) {
		return f.toks[f.pos+n]
	}
	return f.eof
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) inExpansion() bool {
	return p.top().expansion
}

// pushExpansion makes toks the current token stream until popFrame.
func (p *Parser) pushExpansion(toks []token.Token, site source.Span) {
	p.frames = append(p.frames, frame{
		toks:      toks,
		eof:       token.Token{Kind: token.EOF, Span: site.ShrinkToEnd()},
		expansion: true,
	})
}

// popFrame drops the current expansion; leftover tokens are reported.
func (p *Parser) popFrame(site source.Span) {
	f := p.top()
	if f.pos < len(f.toks) {
		extra := f.toks[f.pos]
		diag.ReportError(p.opts.Reporter, diag.ExpTrailingTokens, extra.Span,
			"macro expansion ignores token \""+extra.Text+"\"").
			WithNote(site, "caused by the macro expansion here").
			Emit()
	}
	p.frames = p.frames[:len(p.frames)-1]
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		before := p.top().pos
		items, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			if p.top().pos == before {
				p.advance()
			}
			continue
		}
		for _, it := range items {
			p.tree.PushItem(it)
		}
	}
}

// join — span узла с учётом контекстов раскрытия.
func (p *Parser) join(a, b source.Span) source.Span {
	return p.hyg.Join(a, b)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	return p.tree.Exprs.Span(id)
}

// intern returns the id of an identifier in NFC form.
func (p *Parser) intern(text string) source.StringID {
	return p.tree.Strings.InternIdent(text)
}
