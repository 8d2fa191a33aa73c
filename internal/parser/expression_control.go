package parser

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/source"
	"rillint/internal/token"
)

// parseBlock разбирает `{ stmts }`; start — начало узла (метка, unsafe или '{').
func (p *Parser) parseBlock(label ast.Label, unsafe bool, start source.Span) ast.ExprID {
	p.advance() // '{'
	var stmts []ast.StmtID
	p.withStructs(func() { stmts = p.parseStmtsUntil(token.RBrace) })
	closeTok, ok := p.expectInsert(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	end := closeTok.Span
	if !ok {
		end = p.lastSpan
	}
	return p.tree.Exprs.NewBlock(p.join(start, end), ast.ExprBlockData{Stmts: stmts, Label: label, Unsafe: unsafe})
}

// parseBlockExpr требует '{' в текущей позиции.
func (p *Parser) parseBlockExpr(msg string) ast.ExprID {
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, msg)
		return p.tree.Exprs.NewBad(p.getDiagnosticSpan())
	}
	return p.parseBlock(ast.Label{}, false, p.peek().Span)
}

func (p *Parser) parseIfExpr() ast.ExprID {
	ifTok := p.advance()
	data := ast.ExprIfData{Else: ast.NoExprID}
	data.Cond = p.parseCondExpr()
	data.Then = p.parseBlockExpr("expected '{' after if condition")
	sp := p.join(ifTok.Span, p.exprSpan(data.Then))
	if elseTok, ok := p.eat(token.KwElse); ok {
		data.ElseSpan = elseTok.Span
		if p.at(token.KwIf) {
			data.Else = p.parseIfExpr()
		} else {
			data.Else = p.parseBlockExpr("expected '{' or 'if' after 'else'")
		}
		sp = p.join(sp, p.exprSpan(data.Else))
	}
	return p.tree.Exprs.NewIf(sp, data)
}

// parseLoopExpr: while, loop и for с необязательной меткой.
func (p *Parser) parseLoopExpr(label ast.Label, start source.Span) ast.ExprID {
	kw := p.advance()
	data := ast.ExprLoopData{Label: label, Cond: ast.NoExprID, Pat: ast.NoPatID, Iter: ast.NoExprID}
	var kind ast.ExprKind
	switch kw.Kind {
	case token.KwWhile:
		kind = ast.ExprWhile
		data.Cond = p.parseCondExpr()
	case token.KwFor:
		kind = ast.ExprFor
		data.Pat = p.parsePattern()
		if _, ok := p.eat(token.KwIn); !ok {
			p.err(diag.SynForMissingIn, "expected 'in' after for pattern")
		}
		data.Iter = p.parseCondExpr()
	default:
		kind = ast.ExprLoop
	}
	data.Body = p.parseBlockExpr("expected '{' to start loop body")
	return p.tree.Exprs.NewLoop(kind, p.join(start, p.exprSpan(data.Body)), data)
}

// parseLabeledExpr: `'a: loop {}`, `'a: { ... }`.
func (p *Parser) parseLabeledExpr() ast.ExprID {
	lt := p.advance()
	label := ast.Label{Name: p.intern(lt.Text), Span: lt.Span}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after label"); !ok {
		return p.tree.Exprs.NewBad(lt.Span)
	}
	switch p.peek().Kind {
	case token.KwWhile, token.KwLoop, token.KwFor:
		return p.parseLoopExpr(label, lt.Span)
	case token.LBrace:
		return p.parseBlock(label, false, lt.Span)
	case token.KwUnsafe:
		p.advance()
		if p.at(token.LBrace) {
			return p.parseBlock(label, true, lt.Span)
		}
	}
	p.err(diag.SynUnexpectedToken, "expected loop or block after label")
	return p.tree.Exprs.NewBad(lt.Span)
}

func (p *Parser) parseMatchExpr() ast.ExprID {
	matchTok := p.advance()
	data := ast.ExprMatchData{Scrutinee: p.parseCondExpr()}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after match scrutinee"); !ok {
		return p.tree.Exprs.NewBad(p.join(matchTok.Span, p.exprSpan(data.Scrutinee)))
	}
	p.withStructs(func() {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			arm := ast.MatchArm{Pat: p.parsePattern(), Guard: ast.NoExprID}
			if _, ok := p.eat(token.KwIf); ok {
				arm.Guard = p.parseExpr()
			}
			if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' after match pattern"); !ok {
				p.skipEntry(token.Comma, token.RBrace)
				continue
			}
			body, blockLike := p.parseStmtLikeExpr()
			arm.Body = body
			arm.Span = p.join(p.patSpan(arm.Pat), p.exprSpan(body))
			data.Arms = append(data.Arms, arm)
			if _, ok := p.eat(token.Comma); ok || p.at(token.RBrace) {
				continue
			}
			if !blockLike {
				p.expectInsert(token.Comma, diag.SynUnexpectedToken, "expected ',' after match arm")
			}
		}
	})
	closeTok, _ := p.expectInsert(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close match")
	return p.tree.Exprs.NewMatch(p.join(matchTok.Span, closeTok.Span), data)
}

// parseJumpExpr: break ['a] [e], continue ['a], return [e].
func (p *Parser) parseJumpExpr() ast.ExprID {
	kw := p.advance()
	var kind ast.ExprKind
	switch kw.Kind {
	case token.KwBreak:
		kind = ast.ExprBreak
	case token.KwContinue:
		kind = ast.ExprContinue
	default:
		kind = ast.ExprReturn
	}
	sp := kw.Span
	var label ast.Label
	if kind != ast.ExprReturn && p.at(token.Lifetime) {
		lt := p.advance()
		label = ast.Label{Name: p.intern(lt.Text), Span: lt.Span}
		sp = p.join(sp, lt.Span)
	}
	value := ast.NoExprID
	if kind != ast.ExprContinue && canStartExpr(p.peek().Kind) && !(p.noStruct && p.at(token.LBrace)) {
		value = p.parseExpr()
		sp = p.join(sp, p.exprSpan(value))
	}
	return p.tree.Exprs.NewJump(kind, sp, label, value)
}
