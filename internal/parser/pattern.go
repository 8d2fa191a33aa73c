package parser

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/token"
)

// parsePattern разбирает паттерн верхнего уровня, включая `A | B`.
func (p *Parser) parsePattern() ast.PatID {
	p.eat(token.Pipe) // ведущий '|' допустим
	first := p.parsePatternNoOr()
	if !p.at(token.Pipe) {
		return first
	}
	elems := []ast.PatID{first}
	for {
		if _, ok := p.eat(token.Pipe); !ok {
			break
		}
		elems = append(elems, p.parsePatternNoOr())
	}
	sp := p.join(p.patSpan(first), p.patSpan(elems[len(elems)-1]))
	return p.tree.Pats.New(ast.Pat{Kind: ast.PatOr, Span: sp, Elems: elems})
}

func (p *Parser) parsePatternNoOr() ast.PatID {
	tok := p.peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return p.tree.Pats.New(ast.Pat{Kind: ast.PatWild, Span: tok.Span})

	case token.DotDot:
		p.advance()
		return p.tree.Pats.New(ast.Pat{Kind: ast.PatRest, Span: tok.Span})

	case token.KwMut:
		p.advance()
		name, nameSpan, _ := p.parseName()
		return p.tree.Pats.New(ast.Pat{Kind: ast.PatIdent, Span: p.join(tok.Span, nameSpan), Name: name, Mut: true})

	case token.Ident:
		next := p.peekN(1).Kind
		if next != token.ColonColon && next != token.LParen && !isUpperIdent(tok.Text) {
			p.advance()
			return p.tree.Pats.New(ast.Pat{Kind: ast.PatIdent, Span: tok.Span, Name: p.intern(tok.Text)})
		}
		path := p.parsePathExpr()
		if !p.at(token.LParen) {
			return p.tree.Pats.New(ast.Pat{Kind: ast.PatPath, Span: p.exprSpan(path), Path: path})
		}
		elems, closeTok, _ := p.parsePatternList()
		return p.tree.Pats.New(ast.Pat{
			Kind:  ast.PatTupleStruct,
			Span:  p.join(p.exprSpan(path), closeTok.Span),
			Path:  path,
			Elems: elems,
		})

	case token.LParen:
		open := tok
		elems, closeTok, trailing := p.parsePatternList()
		if len(elems) == 1 && !trailing && p.tree.Pats.Get(elems[0]).Kind != ast.PatRest {
			return elems[0]
		}
		return p.tree.Pats.New(ast.Pat{Kind: ast.PatTuple, Span: p.join(open.Span, closeTok.Span), Elems: elems})

	case token.Minus, token.IntLit, token.FloatLit, token.StringLit, token.RawStringLit,
		token.ByteStringLit, token.ByteLit, token.CharLit, token.KwTrue, token.KwFalse:
		lit := p.parseUnaryExpr()
		return p.tree.Pats.New(ast.Pat{Kind: ast.PatLit, Span: p.exprSpan(lit), Lit: lit})
	}

	p.err(diag.SynUnexpectedToken, "expected pattern, got \""+tok.Text+"\"")
	if !tok.IsClose() && tok.Kind != token.EOF {
		p.advance()
	}
	return p.tree.Pats.New(ast.Pat{Kind: ast.PatWild, Span: tok.Span})
}

// parsePatternList: `(p1, p2, ..)`; текущий токен — '('.
func (p *Parser) parsePatternList() (elems []ast.PatID, closeTok token.Token, trailing bool) {
	p.advance()
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elems = append(elems, p.parsePattern())
		trailing = false
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		trailing = true
	}
	closeTok, _ = p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close pattern list")
	return elems, closeTok, trailing
}
