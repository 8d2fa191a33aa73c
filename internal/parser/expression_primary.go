package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/token"
)

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.RawStringLit,
		token.ByteStringLit, token.ByteLit, token.CharLit, token.KwTrue, token.KwFalse:
		return p.parseLiteral()

	case token.Ident, token.Underscore:
		if tok.Kind == token.Ident && p.peekN(1).Kind == token.Bang && p.peekN(2).IsOpen() {
			return p.parseMacroCallExpr()
		}
		path := p.parsePathExpr()
		if p.structLiteralAhead() {
			return p.parseStructLiteral(path)
		}
		return path

	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseBlock(ast.Label{}, false, tok.Span)
	case token.KwUnsafe:
		p.advance()
		if !p.at(token.LBrace) {
			p.err(diag.SynExpectBlock, "expected '{' after 'unsafe'")
			return p.tree.Exprs.NewBad(tok.Span)
		}
		return p.parseBlock(ast.Label{}, true, tok.Span)

	case token.KwIf:
		return p.parseIfExpr()
	case token.KwWhile, token.KwLoop, token.KwFor:
		return p.parseLoopExpr(ast.Label{}, tok.Span)
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.Lifetime:
		return p.parseLabeledExpr()
	case token.KwBreak, token.KwContinue, token.KwReturn:
		return p.parseJumpExpr()
	case token.Pipe, token.OrOr:
		return p.parseClosure()
	case token.KwLet:
		return p.parseLetExpr()
	}

	p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	if !tok.IsClose() && tok.Kind != token.EOF && tok.Kind != token.Semicolon && tok.Kind != token.Comma {
		p.advance()
	}
	return p.tree.Exprs.NewBad(p.getDiagnosticSpan())
}

var numericSuffixes = [...]string{
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64",
}

// numericSuffix возвращает суффикс типа числового литерала ("u8", "isize").
func numericSuffix(text string) string {
	hex := len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
	for _, s := range numericSuffixes {
		if hex && s[0] == 'f' {
			continue
		}
		if len(text) > len(s) && strings.HasSuffix(text, s) {
			return s
		}
	}
	return ""
}

func (p *Parser) parseLiteral() ast.ExprID {
	tok := p.advance()
	data := ast.ExprLitData{Text: tok.Text}
	switch tok.Kind {
	case token.IntLit:
		data.Kind = ast.LitInt
		data.Suffix = numericSuffix(tok.Text)
		if data.Suffix == "f32" || data.Suffix == "f64" {
			data.Kind = ast.LitFloat
		}
	case token.FloatLit:
		data.Kind = ast.LitFloat
		data.Suffix = numericSuffix(tok.Text)
	case token.StringLit:
		data.Kind = ast.LitStr
	case token.RawStringLit:
		data.Kind = ast.LitRawStr
	case token.ByteStringLit:
		data.Kind = ast.LitByteStr
	case token.ByteLit:
		data.Kind = ast.LitByte
	case token.CharLit:
		data.Kind = ast.LitChar
	case token.KwTrue, token.KwFalse:
		data.Kind = ast.LitBool
	}
	return p.tree.Exprs.NewLit(tok.Span, data)
}

// parsePathExpr разбирает `a`, `a::b`, `Vec::<u8>::new`.
func (p *Parser) parsePathExpr() ast.ExprID {
	first := p.advance()
	data := ast.ExprPathData{Segments: []ast.PathSegment{{Name: p.intern(first.Text), Span: first.Span}}}
	sp := first.Span
	for p.at(token.ColonColon) {
		next := p.peekN(1)
		if next.Kind == token.Lt {
			p.advance()
			args, closeSpan := p.parseGenericArgs()
			data.GenericArgs = args
			data.GenericSeg = len(data.Segments) - 1
			data.GenericClose = closeSpan
			sp = p.join(sp, closeSpan)
			continue
		}
		if next.Kind != token.Ident {
			p.advance()
			p.err(diag.SynExpectIdentifier, "expected identifier after '::'")
			break
		}
		p.advance()
		seg := p.advance()
		data.Segments = append(data.Segments, ast.PathSegment{Name: p.intern(seg.Text), Span: seg.Span})
		sp = p.join(sp, seg.Span)
	}
	return p.tree.Exprs.NewPath(sp, data)
}

// structLiteralAhead — после пути идёт `{ }`, `{ ..`, `{ a:` , `{ a,` или `{ a }`.
func (p *Parser) structLiteralAhead() bool {
	if p.noStruct || !p.at(token.LBrace) {
		return false
	}
	switch p.peekN(1).Kind {
	case token.RBrace, token.DotDot:
		return true
	case token.Ident:
		switch p.peekN(2).Kind {
		case token.Colon, token.Comma, token.RBrace:
			return true
		}
	}
	return false
}

func (p *Parser) parseStructLiteral(path ast.ExprID) ast.ExprID {
	p.advance() // '{'
	data := ast.ExprStructData{Path: path, Base: ast.NoExprID}
	p.withStructs(func() {
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if _, ok := p.eat(token.DotDot); ok {
				data.Base = p.parseExpr()
				break
			}
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name in struct literal")
			if !ok {
				p.skipEntry(token.Comma, token.RBrace)
				continue
			}
			field := ast.FieldInit{Name: p.intern(nameTok.Text), NameSpan: nameTok.Span}
			if _, ok := p.eat(token.Colon); ok {
				field.Value = p.parseExpr()
			} else {
				field.Shorthand = true
				field.Value = p.tree.Exprs.NewPath(nameTok.Span, ast.ExprPathData{
					Segments: []ast.PathSegment{{Name: field.Name, Span: nameTok.Span}},
				})
			}
			data.Fields = append(data.Fields, field)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
	})
	closeTok, _ := p.expectInsert(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct literal")
	return p.tree.Exprs.NewStruct(p.join(p.exprSpan(path), closeTok.Span), data)
}

func (p *Parser) parseParenOrTuple() ast.ExprID {
	open := p.advance()
	var (
		elems    []ast.ExprID
		trailing bool
	)
	p.withStructs(func() {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elems = append(elems, p.parseExpr())
			trailing = false
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
			trailing = true
		}
	})
	closeTok, _ := p.expectInsert(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
	sp := p.join(open.Span, closeTok.Span)
	if len(elems) == 1 && !trailing {
		return p.tree.Exprs.NewInner(ast.ExprParen, sp, elems[0])
	}
	return p.tree.Exprs.NewList(ast.ExprTuple, sp, elems)
}

func (p *Parser) parseArray() ast.ExprID {
	open := p.advance()
	var elems []ast.ExprID
	count := ast.NoExprID
	p.withStructs(func() {
		if p.at(token.RBracket) {
			return
		}
		elems = append(elems, p.parseExpr())
		if _, ok := p.eat(token.Semicolon); ok {
			count = p.parseExpr()
			return
		}
		for {
			if _, ok := p.eat(token.Comma); !ok || p.at(token.RBracket) {
				return
			}
			elems = append(elems, p.parseExpr())
		}
	})
	closeTok, _ := p.expectInsert(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'")
	sp := p.join(open.Span, closeTok.Span)
	if count.IsValid() {
		return p.tree.Exprs.NewRepeat(sp, elems[0], count)
	}
	return p.tree.Exprs.NewList(ast.ExprArray, sp, elems)
}

// parseClosure: `|a, b: T| expr`, `|| expr`, `|x| -> T { ... }`.
func (p *Parser) parseClosure() ast.ExprID {
	start := p.advance()
	var params []ast.ClosureParam
	if start.Kind == token.Pipe {
		for !p.at(token.Pipe) && !p.at(token.EOF) {
			param := ast.ClosureParam{Pat: p.parsePatternNoOr(), Type: ast.NoTypeID}
			if _, ok := p.eat(token.Colon); ok {
				param.Type = p.parseType()
			}
			params = append(params, param)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		p.expect(token.Pipe, diag.SynUnexpectedToken, "expected '|' to close closure parameters")
	}
	data := ast.ExprClosureData{Params: params, Ret: ast.NoTypeID}
	if _, ok := p.eat(token.Arrow); ok {
		data.Ret = p.parseType()
		data.Body = p.parseBlockExpr("expected block after closure return type")
	} else {
		data.Body = p.parseExpr()
	}
	return p.tree.Exprs.NewClosure(p.join(start.Span, p.exprSpan(data.Body)), data)
}

// parseLetExpr: `let PAT = e` в условиях if/while.
func (p *Parser) parseLetExpr() ast.ExprID {
	letTok := p.advance()
	pat := p.parsePattern()
	p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let condition")
	init := p.parseBinaryExpr(precComparison)
	return p.tree.Exprs.NewLet(p.join(letTok.Span, p.exprSpan(init)), pat, init)
}

// isUpperIdent — имена с заглавной буквы в паттернах считаются путями.
func isUpperIdent(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
