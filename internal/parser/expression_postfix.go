package parser

import (
	"strings"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/source"
	"rillint/internal/token"
)

// parsePostfixExpr обрабатывает постфиксные операторы
func (p *Parser) parsePostfixExpr(expr ast.ExprID) ast.ExprID {
	for {
		switch p.peek().Kind {
		case token.LParen:
			// Вызов функции: expr(args...)
			args, closeTok := p.parseExprList(token.RParen)
			sp := p.join(p.exprSpan(expr), closeTok.Span)
			expr = p.tree.Exprs.NewCall(sp, expr, args)

		case token.LBracket:
			// Индексация: expr[index]
			p.advance()
			var index ast.ExprID
			p.withStructs(func() { index = p.parseExpr() })
			closeTok, _ := p.expectInsert(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index")
			sp := p.join(p.exprSpan(expr), closeTok.Span)
			expr = p.tree.Exprs.NewIndex(sp, expr, index)

		case token.Dot:
			expr = p.parseDotExpr(expr)

		case token.Question:
			q := p.advance()
			expr = p.tree.Exprs.NewInner(ast.ExprTry, p.join(p.exprSpan(expr), q.Span), expr)

		default:
			return expr
		}
	}
}

// parseExprList разбирает `(a, b, c)` или `[a, b]`; открывающая скобка
// текущая. Возвращает закрывающий токен (Invalid при ошибке).
func (p *Parser) parseExprList(closer token.Kind) ([]ast.ExprID, token.Token) {
	p.advance()
	var args []ast.ExprID
	p.withStructs(func() {
		for !p.at(closer) && !p.at(token.EOF) {
			args = append(args, p.parseExpr())
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	})
	closeTok, _ := p.expectInsert(closer, diag.SynUnclosedDelimiter, "expected '"+closer.String()+"' to close the list")
	return args, closeTok
}

// parseDotExpr: поле, индекс кортежа или вызов метода.
func (p *Parser) parseDotExpr(target ast.ExprID) ast.ExprID {
	p.advance() // '.'
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		name := p.intern(tok.Text)
		var typeArgs []ast.TypeID
		if p.at(token.ColonColon) && p.peekN(1).Kind == token.Lt {
			p.advance()
			typeArgs, _ = p.parseGenericArgs()
		}
		if p.at(token.LParen) {
			args, closeTok := p.parseExprList(token.RParen)
			sp := p.join(p.exprSpan(target), closeTok.Span)
			return p.tree.Exprs.NewMethodCall(sp, ast.ExprMethodCallData{
				Receiver: target,
				Name:     name,
				NameSpan: tok.Span,
				TypeArgs: typeArgs,
				Args:     args,
			})
		}
		if typeArgs != nil {
			p.err(diag.SynUnexpectedToken, "expected '(' after method type arguments")
		}
		return p.tree.Exprs.NewField(p.join(p.exprSpan(target), tok.Span), target, name, tok.Span)

	case token.IntLit:
		p.advance()
		return p.tree.Exprs.NewField(p.join(p.exprSpan(target), tok.Span), target, p.intern(tok.Text), tok.Span)

	case token.FloatLit:
		// t.0.1 лексер отдаёт как Ident Dot FloatLit("0.1")
		p.advance()
		first, second, ok := strings.Cut(tok.Text, ".")
		if !ok || first == "" || second == "" || strings.ContainsAny(tok.Text, "eE_") {
			p.report(diag.SynUnexpectedToken, tok.Span, "invalid tuple index \""+tok.Text+"\"", nil)
			return p.tree.Exprs.NewBad(tok.Span)
		}
		firstSpan, secondSpan := tok.Span, tok.Span
		if tok.Span.Len() == uint32(len(tok.Text)) { // #nosec G115 -- длина токена укладывается в uint32
			firstSpan = tok.Span.WithEnd(tok.Span.Start + uint32(len(first)))     // #nosec G115
			secondSpan = tok.Span.WithStart(tok.Span.End - uint32(len(second))) // #nosec G115
		}
		inner := p.tree.Exprs.NewField(p.join(p.exprSpan(target), firstSpan), target, p.intern(first), firstSpan)
		return p.tree.Exprs.NewField(p.join(p.exprSpan(inner), secondSpan), inner, p.intern(second), secondSpan)
	}

	p.err(diag.SynExpectIdentifier, "expected field or method name after '.', got \""+tok.Text+"\"")
	return p.tree.Exprs.NewBad(p.join(p.exprSpan(target), p.lastSpan))
}

// parseGenericArgs разбирает `<T, U>`; текущий токен — '<'.
func (p *Parser) parseGenericArgs() ([]ast.TypeID, source.Span) {
	p.advance()
	var args []ast.TypeID
	for !p.atOr(token.Gt, token.Shr, token.GtEq, token.ShrAssign, token.EOF) {
		args = append(args, p.parseType())
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	closeTok, ok := p.splitGt()
	if !ok {
		p.err(diag.SynUnclosedDelimiter, "expected '>' to close generic arguments")
		return args, p.lastSpan
	}
	return args, closeTok.Span
}
