package parser

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/expand"
	"rillint/internal/source"
	"rillint/internal/token"
)

// collectMacroCall съедает `name!(...)` целиком; текущий токен — имя.
func (p *Parser) collectMacroCall() (expand.Call, bool) {
	name := p.advance()
	p.advance() // '!'
	f := p.top()
	open := p.peek()
	closeIdx, ok := expand.MatchingClose(f.toks, f.pos)
	if !ok {
		p.report(diag.SynUnclosedDelimiter, open.Span, "unclosed delimiter in macro call", nil)
		f.pos = len(f.toks)
		return expand.Call{}, false
	}
	call := expand.Call{Name: name, Open: open, Close: f.toks[closeIdx], Inner: f.toks[f.pos+1 : closeIdx]}
	f.pos = closeIdx + 1
	p.lastSpan = call.Close.Span
	return call, true
}

// expandCall раскрывает вызов и делает результат текущим потоком токенов.
// Вызывающий обязан вызвать popFrame(site), если ok.
func (p *Parser) expandCall() (site source.Span, ok bool) {
	call, ok := p.collectMacroCall()
	if !ok {
		return p.lastSpan, false
	}
	site = call.Span()
	toks, ok := p.exp.Expand(call)
	if !ok {
		p.opts.CurrentErrors++
		return site, false
	}
	p.pushExpansion(toks, site)
	return site, true
}

func (p *Parser) parseMacroCallExpr() ast.ExprID {
	site, ok := p.expandCall()
	if !ok {
		return p.tree.Exprs.NewBad(site)
	}
	var id ast.ExprID
	if p.at(token.EOF) {
		p.report(diag.SynExpectExpression, site, "macro expands to nothing; expected an expression", nil)
		id = p.tree.Exprs.NewBad(site)
	} else {
		p.withStructs(func() { id = p.parseExpr() })
	}
	p.popFrame(site)
	return id
}

// stmtMacroAhead — вызов макроса в позиции оператора раскрывается в
// последовательность операторов, если за ним не продолжается выражение.
func (p *Parser) stmtMacroAhead() bool {
	f := p.top()
	open := f.pos + 2
	if open >= len(f.toks) {
		return false
	}
	if f.toks[open].Kind == token.LBrace {
		return true
	}
	closeIdx, ok := expand.MatchingClose(f.toks, open)
	if !ok {
		return true
	}
	if closeIdx+1 >= len(f.toks) {
		return true
	}
	switch f.toks[closeIdx+1].Kind {
	case token.Semicolon, token.RBrace:
		return true
	}
	return false
}

func (p *Parser) parseMacroStmts() []ast.StmtID {
	brace := p.peekN(2).Kind == token.LBrace
	site, ok := p.expandCall()
	var out []ast.StmtID
	if ok {
		p.withStructs(func() { out = p.parseStmtsUntil(token.EOF) })
		p.popFrame(site)
	} else {
		out = []ast.StmtID{p.tree.Stmts.NewExpr(site, p.tree.Exprs.NewBad(site), true)}
	}
	if _, ok := p.eat(token.Semicolon); ok && len(out) > 0 {
		if es, isExpr := p.tree.Stmts.Expr(out[len(out)-1]); isExpr {
			es.Semi = true
		}
	} else if !brace && len(out) > 0 && !p.at(token.RBrace) && !p.at(token.EOF) {
		p.expectInsert(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after macro call")
	}
	return out
}

func (p *Parser) parseMacroItems() []ast.ItemID {
	brace := p.peekN(2).Kind == token.LBrace
	site, ok := p.expandCall()
	if !ok {
		p.eat(token.Semicolon)
		return nil
	}
	var items []ast.ItemID
	for !p.at(token.EOF) {
		before := p.top().pos
		got, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			if p.top().pos == before {
				p.advance()
			}
			continue
		}
		items = append(items, got...)
	}
	p.popFrame(site)
	if !brace {
		p.expectInsert(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after macro call in item position")
	}
	return items
}
