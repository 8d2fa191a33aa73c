package parser

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/token"
)

// parseStmtsUntil читает операторы до end (не съедая его) или конца потока.
func (p *Parser) parseStmtsUntil(end token.Kind) []ast.StmtID {
	var stmts []ast.StmtID
	for !p.at(end) && !p.at(token.EOF) {
		depth, before := len(p.frames), p.top().pos
		stmts = append(stmts, p.parseStmt()...)
		if len(p.frames) == depth && p.top().pos == before {
			// ничего не съели — пропускаем токен, чтобы не зациклиться
			p.advance()
		}
	}
	return stmts
}

func (p *Parser) parseStmt() []ast.StmtID {
	tok := p.peek()
	switch {
	case tok.Kind == token.Semicolon:
		p.advance()
		return []ast.StmtID{p.tree.Stmts.NewEmpty(tok.Span)}
	case tok.Kind == token.KwLet:
		return []ast.StmtID{p.parseLetStmt()}
	case isItemStart(tok.Kind):
		items, ok := p.parseItem()
		if !ok {
			p.resyncStatement()
			return nil
		}
		out := make([]ast.StmtID, 0, len(items))
		for _, it := range items {
			out = append(out, p.tree.Stmts.NewItem(p.tree.Items.Get(it).Span, it))
		}
		return out
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.Bang && p.peekN(2).IsOpen() && p.stmtMacroAhead():
		return p.parseMacroStmts()
	}
	return []ast.StmtID{p.parseExprStmt()}
}

func (p *Parser) parseExprStmt() ast.StmtID {
	expr, blockLike := p.parseStmtLikeExpr()
	sp := p.exprSpan(expr)
	if semi, ok := p.eat(token.Semicolon); ok {
		return p.tree.Stmts.NewExpr(p.join(sp, semi.Span), expr, true)
	}
	if !blockLike && !p.at(token.RBrace) && !p.at(token.EOF) {
		p.expectInsert(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
		p.resyncStatement()
	}
	return p.tree.Stmts.NewExpr(sp, expr, false)
}

func (p *Parser) parseLetStmt() ast.StmtID {
	letTok := p.advance()
	data := ast.StmtLetData{Type: ast.NoTypeID, Init: ast.NoExprID, Else: ast.NoExprID}
	data.Pat = p.parsePattern()
	sp := p.join(letTok.Span, p.patSpan(data.Pat))
	if _, ok := p.eat(token.Colon); ok {
		data.Type = p.parseType()
		sp = p.join(sp, p.typeSpan(data.Type))
	}
	if _, ok := p.eat(token.Assign); ok {
		data.Init = p.parseExpr()
		sp = p.join(sp, p.exprSpan(data.Init))
	}
	if _, ok := p.eat(token.KwElse); ok {
		data.Else = p.parseBlockExpr("expected '{' after 'else' in let statement")
		sp = p.join(sp, p.exprSpan(data.Else))
	}
	if semi, ok := p.expectInsert(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement"); ok {
		sp = p.join(sp, semi.Span)
	} else {
		p.resyncStatement()
	}
	return p.tree.Stmts.NewLet(sp, data)
}

func isItemStart(k token.Kind) bool {
	switch k {
	case token.KwFn, token.KwStruct, token.KwEnum, token.KwConst, token.KwMacro, token.KwExtern:
		return true
	}
	return false
}
