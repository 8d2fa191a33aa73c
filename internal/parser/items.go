package parser

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/expand"
	"rillint/internal/source"
	"rillint/internal/token"
)

// parseItem выбирает по первому токену нужный распознаватель top-level
// конструкции. Вызов макроса может дать несколько items.
func (p *Parser) parseItem() ([]ast.ItemID, bool) {
	tok := p.peek()
	var (
		id ast.ItemID
		ok bool
	)
	switch tok.Kind {
	case token.KwFn:
		id, ok = p.parseFnItem()
	case token.KwStruct:
		id, ok = p.parseStructItem()
	case token.KwEnum:
		id, ok = p.parseEnumItem()
	case token.KwConst:
		id, ok = p.parseConstItem()
	case token.KwMacro, token.KwExtern:
		id, ok = p.parseMacroItem()
	case token.Ident:
		if p.peekN(1).Kind == token.Bang && p.peekN(2).IsOpen() {
			return p.parseMacroItems(), true
		}
		fallthrough
	default:
		p.report(diag.SynBadItem, tok.Span, "expected item (fn, struct, enum, const or macro), got \""+tok.Text+"\"", nil)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return []ast.ItemID{id}, true
}

func (p *Parser) parseName() (source.StringID, source.Span, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier, got \""+p.peek().Text+"\"")
	if !ok {
		return source.NoStringID, tok.Span, false
	}
	return p.intern(tok.Text), tok.Span, true
}

func (p *Parser) parseFnItem() (ast.ItemID, bool) {
	fnTok := p.advance()
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoItemID, false
	}
	data := ast.FnData{Ret: ast.NoTypeID}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pat := p.parsePatternNoOr()
		param := ast.FnParam{Pat: pat, Type: ast.NoTypeID}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); ok {
			param.Type = p.parseType()
		}
		param.Span = p.join(p.patSpan(pat), p.typeSpan(param.Type))
		data.Params = append(data.Params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list"); !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.eat(token.Arrow); ok {
		data.Ret = p.parseType()
	}
	data.Body = p.parseBlockExpr("expected '{' to start function body")
	return p.tree.Items.NewFn(p.join(fnTok.Span, p.exprSpan(data.Body)), name, nameSpan, data), true
}

func (p *Parser) parseStructItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoItemID, false
	}
	vd := ast.VariantData{Name: name, NameSpan: nameSpan}
	end := nameSpan
	switch p.peek().Kind {
	case token.Semicolon:
		vd.Shape = ast.ShapeUnit
		end = p.advance().Span
	case token.LBrace:
		vd.Shape = ast.ShapeNamed
		vd.Fields, vd.BodySpan = p.parseNamedFields()
		end = vd.BodySpan
	case token.LParen:
		vd.Shape = ast.ShapeTuple
		vd.Fields, vd.BodySpan = p.parseTupleFields()
		end = vd.BodySpan
		if semi, ok := p.expectInsert(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple struct"); ok {
			end = semi.Span
		}
	default:
		p.err(diag.SynBadItem, "expected ';', '{' or '(' after struct name")
		return ast.NoItemID, false
	}
	vd.Span = p.join(kw.Span, end)
	return p.tree.Items.NewStruct(vd.Span, vd), true
}

func (p *Parser) parseEnumItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after enum name"); !ok {
		return ast.NoItemID, false
	}
	var data ast.EnumData
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		vname, vspan, ok := p.parseName()
		if !ok {
			p.skipEntry(token.Comma, token.RBrace)
			continue
		}
		vd := ast.VariantData{Name: vname, NameSpan: vspan, Span: vspan}
		switch p.peek().Kind {
		case token.LParen:
			vd.Shape = ast.ShapeTuple
			vd.Fields, vd.BodySpan = p.parseTupleFields()
			vd.Span = p.join(vspan, vd.BodySpan)
		case token.LBrace:
			vd.Shape = ast.ShapeNamed
			vd.Fields, vd.BodySpan = p.parseNamedFields()
			vd.Span = p.join(vspan, vd.BodySpan)
		}
		data.Variants = append(data.Variants, vd)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	closeTok, _ := p.expectInsert(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close enum")
	return p.tree.Items.NewEnum(p.join(kw.Span, closeTok.Span), name, nameSpan, data), true
}

// parseNamedFields: `{ a: T, b: U }`.
func (p *Parser) parseNamedFields() ([]ast.FieldDef, source.Span) {
	open := p.advance()
	var fields []ast.FieldDef
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name, nameSpan, ok := p.parseName()
		if !ok {
			p.skipEntry(token.Comma, token.RBrace)
			continue
		}
		f := ast.FieldDef{Name: name, NameSpan: nameSpan, Type: ast.NoTypeID}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); ok {
			f.Type = p.parseType()
		}
		f.Span = p.join(nameSpan, p.typeSpan(f.Type))
		fields = append(fields, f)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	closeTok, _ := p.expectInsert(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close field list")
	return fields, p.join(open.Span, closeTok.Span)
}

// parseTupleFields: `(T, U)`.
func (p *Parser) parseTupleFields() ([]ast.FieldDef, source.Span) {
	open := p.advance()
	var fields []ast.FieldDef
	for !p.at(token.RParen) && !p.at(token.EOF) {
		ty := p.parseType()
		fields = append(fields, ast.FieldDef{Name: source.NoStringID, Type: ty, Span: p.typeSpan(ty)})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	closeTok, _ := p.expectInsert(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close field list")
	return fields, p.join(open.Span, closeTok.Span)
}

func (p *Parser) parseConstItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoItemID, false
	}
	data := ast.ConstData{Type: ast.NoTypeID, Value: ast.NoExprID}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' and a type after const name"); ok {
		data.Type = p.parseType()
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const item"); ok {
		data.Value = p.parseExpr()
	}
	end := p.lastSpan
	if semi, ok := p.expectInsert(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after const item"); ok {
		end = semi.Span
	}
	return p.tree.Items.NewConst(p.join(kw.Span, end), name, nameSpan, data), true
}

// parseMacroItem: `[extern] macro name($a, $b) { tokens }`. Тело не
// разбирается: оно раскрывается в местах вызова.
func (p *Parser) parseMacroItem() (ast.ItemID, bool) {
	start := p.peek().Span
	external := false
	if _, ok := p.eat(token.KwExtern); ok {
		external = true
		if !p.at(token.KwMacro) {
			p.err(diag.SynBadItem, "expected 'macro' after 'extern'")
			return ast.NoItemID, false
		}
	}
	kw := p.advance()
	if p.inExpansion() {
		p.report(diag.ExpMacroInsideMacro, kw.Span, "macros cannot be defined by a macro expansion", nil)
		p.resyncUntil(token.LBrace)
		p.skipDelimited()
		return ast.NoItemID, false
	}
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after macro name"); !ok {
		return ast.NoItemID, false
	}
	data := ast.MacroData{External: external}
	for p.at(token.Dollar) {
		p.advance()
		param, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected metavariable name after '$'")
		if !ok {
			break
		}
		data.Params = append(data.Params, p.intern(param.Text))
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close macro parameters"); !ok {
		return ast.NoItemID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected '{' to start macro body")
		return ast.NoItemID, false
	}
	body, ok := p.skipDelimited()
	if !ok {
		return ast.NoItemID, false
	}
	data.BodySpan = body
	return p.tree.Items.NewMacro(p.join(start, body), name, nameSpan, data), true
}

// skipDelimited пропускает группу в скобках целиком и возвращает её span.
func (p *Parser) skipDelimited() (source.Span, bool) {
	f := p.top()
	if f.pos >= len(f.toks) {
		return p.lastSpan, false
	}
	open := f.toks[f.pos]
	closeIdx, ok := expand.MatchingClose(f.toks, f.pos)
	if !ok {
		p.report(diag.SynUnclosedDelimiter, open.Span, "unclosed delimiter", nil)
		f.pos = len(f.toks)
		return open.Span, false
	}
	f.pos = closeIdx + 1
	p.lastSpan = f.toks[closeIdx].Span
	return open.Span.Cover(f.toks[closeIdx].Span), true
}
