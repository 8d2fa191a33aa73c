package parser

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/source"
	"rillint/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(precAssignment)
}

// parseCondExpr парсит условие if/while, скрутини match и итератор for:
// struct-литералы там запрещены, иначе `if x == S {}` не разобрать.
func (p *Parser) parseCondExpr() ast.ExprID {
	old := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = old }()
	return p.parseExpr()
}

// withStructs разрешает struct-литералы внутри скобок и блоков.
func (p *Parser) withStructs(fn func()) {
	old := p.noStruct
	p.noStruct = false
	fn()
	p.noStruct = old
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	var left ast.ExprID
	if p.atOr(token.DotDot, token.DotDotEq) && minPrec <= precRange {
		left = p.parseRange(ast.NoExprID)
	} else {
		left = p.parseUnaryExpr()
	}
	return p.parseBinaryRest(left, minPrec)
}

// parseBinaryRest продолжает разбор, когда левая часть уже есть.
func (p *Parser) parseBinaryRest(left ast.ExprID, minPrec int) ast.ExprID {
	for {
		tok := p.peek()
		prec, _ := getBinaryOperatorPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			return left
		}

		switch {
		case tok.Kind == token.KwAs:
			p.advance()
			ty := p.parseType()
			left = p.tree.Exprs.NewCast(p.join(p.exprSpan(left), p.typeSpan(ty)), left, ty)

		case prec == precRange:
			left = p.parseRange(left)
			if p.atOr(token.DotDot, token.DotDotEq) {
				p.err(diag.SynUnexpectedToken, "range operators cannot be chained")
				return left
			}

		case prec == precAssignment:
			opTok := p.advance()
			// присваивание правоассоциативно
			right := p.parseBinaryExpr(prec)
			sp := p.join(p.exprSpan(left), p.exprSpan(right))
			if opTok.Kind == token.Assign {
				left = p.tree.Exprs.NewAssign(sp, opTok.Span, left, right)
			} else {
				left = p.tree.Exprs.NewAssignOp(sp, tokenKindToBinaryOp(opTok.Kind), opTok.Span, left, right)
			}

		default:
			opTok := p.advance()
			right := p.parseBinaryExpr(prec + 1)
			sp := p.join(p.exprSpan(left), p.exprSpan(right))
			left = p.tree.Exprs.NewBinary(sp, tokenKindToBinaryOp(opTok.Kind), opTok.Span, left, right)
			if prec == precComparison && isComparison(p.peek().Kind) {
				p.err(diag.SynChainedCompare, "comparison operators cannot be chained; use parentheses")
			}
		}
	}
}

// parseRange разбирает `lo..hi`, `lo..`, `..hi` и `..`.
func (p *Parser) parseRange(lo ast.ExprID) ast.ExprID {
	opTok := p.advance()
	data := ast.ExprRangeData{Lo: lo, Hi: ast.NoExprID, Inclusive: opTok.Kind == token.DotDotEq}
	sp := opTok.Span
	if lo.IsValid() {
		sp = p.join(p.exprSpan(lo), sp)
	}
	if canStartExpr(p.peek().Kind) && !(p.noStruct && p.at(token.LBrace)) && !p.atOr(token.DotDot, token.DotDotEq) {
		data.Hi = p.parseBinaryExpr(precRange + 1)
		sp = p.join(sp, p.exprSpan(data.Hi))
	} else if data.Inclusive {
		p.err(diag.SynExpectExpression, "inclusive range requires an upper bound")
	}
	return p.tree.Exprs.NewRange(sp, data)
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Amp, token.AndAnd:
		p.advance()
		mut := false
		if _, ok := p.eat(token.KwMut); ok {
			mut = true
		}
		operand := p.parseUnaryExpr()
		sp := p.join(tok.Span, p.exprSpan(operand))
		if tok.Kind == token.AndAnd {
			// `&&x` — два взятия адреса подряд
			innerOp := tok.Span
			if innerOp.Len() == 2 {
				innerOp.Start++
			}
			inner := p.tree.Exprs.NewAddrOf(p.join(innerOp, p.exprSpan(operand)), mut, operand)
			return p.tree.Exprs.NewAddrOf(sp, false, inner)
		}
		return p.tree.Exprs.NewAddrOf(sp, mut, operand)
	}

	if op, ok := getUnaryOperator(tok.Kind); ok {
		p.advance()
		operand := p.parseUnaryExpr()
		return p.tree.Exprs.NewUnary(p.join(tok.Span, p.exprSpan(operand)), op, tok.Span, operand)
	}

	return p.parsePostfixExpr(p.parsePrimaryExpr())
}

// startsBlockLike — выражения, которые в позиции оператора не требуют ';'.
func (p *Parser) startsBlockLike() bool {
	switch p.peek().Kind {
	case token.LBrace, token.KwIf, token.KwWhile, token.KwLoop, token.KwFor, token.KwMatch:
		return true
	case token.KwUnsafe:
		return p.peekN(1).Kind == token.LBrace
	case token.Lifetime:
		return p.peekN(1).Kind == token.Colon
	}
	return false
}

// parseStmtLikeExpr разбирает выражение в позиции оператора или тела
// ветки match. Блочное выражение заканчивается на '}', если за ним не
// следует '.' или '?'.
func (p *Parser) parseStmtLikeExpr() (ast.ExprID, bool) {
	if !p.startsBlockLike() {
		return p.parseExpr(), false
	}
	e := p.parsePrimaryExpr()
	if p.atOr(token.Dot, token.Question) {
		e = p.parsePostfixExpr(e)
		return p.parseBinaryRest(e, precAssignment), false
	}
	return e, true
}

func (p *Parser) typeSpan(id ast.TypeID) source.Span {
	if t := p.tree.Types.Get(id); t != nil {
		return t.Span
	}
	return p.lastSpan
}

func (p *Parser) patSpan(id ast.PatID) source.Span {
	if pt := p.tree.Pats.Get(id); pt != nil {
		return pt.Span
	}
	return p.lastSpan
}

// isBlockLike — узел заканчивается блоком.
func (p *Parser) isBlockLike(id ast.ExprID) bool {
	switch p.tree.Exprs.Kind(id) {
	case ast.ExprBlock, ast.ExprIf, ast.ExprWhile, ast.ExprLoop, ast.ExprFor, ast.ExprMatch:
		return true
	}
	return false
}
