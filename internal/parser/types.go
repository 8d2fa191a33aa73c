package parser

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/token"
)

// parseType разбирает записанный тип: u8, Option<T>, &mut T, (A, B), [T; N], [T], _, !.
func (p *Parser) parseType() ast.TypeID {
	tok := p.peek()
	switch tok.Kind {
	case token.Amp, token.AndAnd:
		p.advance()
		mut := false
		if _, ok := p.eat(token.KwMut); ok {
			mut = true
		}
		elem := p.parseType()
		ref := ast.Type{Kind: ast.TypeRef, Span: p.join(tok.Span, p.typeSpan(elem)), Elem: elem, Mut: mut}
		if tok.Kind == token.AndAnd {
			inner := p.tree.Types.New(ref)
			return p.tree.Types.New(ast.Type{Kind: ast.TypeRef, Span: ref.Span, Elem: inner})
		}
		return p.tree.Types.New(ref)

	case token.LParen:
		p.advance()
		var elems []ast.TypeID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elems = append(elems, p.parseType())
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		closeTok, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple type")
		return p.tree.Types.New(ast.Type{Kind: ast.TypeTuple, Span: p.join(tok.Span, closeTok.Span), Args: elems})

	case token.LBracket:
		p.advance()
		elem := p.parseType()
		typ := ast.Type{Kind: ast.TypeSlice, Elem: elem, Len: ast.NoExprID}
		if _, ok := p.eat(token.Semicolon); ok {
			typ.Kind = ast.TypeArray
			typ.Len = p.parseExpr()
		}
		closeTok, _ := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array type")
		typ.Span = p.join(tok.Span, closeTok.Span)
		return p.tree.Types.New(typ)

	case token.Underscore:
		p.advance()
		return p.tree.Types.New(ast.Type{Kind: ast.TypeInfer, Span: tok.Span})

	case token.Bang:
		p.advance()
		return p.tree.Types.New(ast.Type{Kind: ast.TypeNever, Span: tok.Span})

	case token.Ident:
		return p.parsePathType()
	}

	p.err(diag.SynExpectType, "expected type, got \""+tok.Text+"\"")
	return p.tree.Types.New(ast.Type{Kind: ast.TypeInfer, Span: p.getDiagnosticSpan()})
}

// parsePathType: `a::B<T, U>`.
func (p *Parser) parsePathType() ast.TypeID {
	first := p.advance()
	typ := ast.Type{Kind: ast.TypePath, Span: first.Span}
	typ.Path = append(typ.Path, ast.PathSegment{Name: p.intern(first.Text), Span: first.Span})
	for p.at(token.ColonColon) && p.peekN(1).Kind == token.Ident {
		p.advance()
		seg := p.advance()
		typ.Path = append(typ.Path, ast.PathSegment{Name: p.intern(seg.Text), Span: seg.Span})
		typ.Span = p.join(typ.Span, seg.Span)
	}
	if p.at(token.Lt) {
		args, closeSpan := p.parseGenericArgs()
		typ.Args = args
		typ.Span = p.join(typ.Span, closeSpan)
	}
	return p.tree.Types.New(typ)
}
