package parser

import (
	"rillint/internal/diag"
	"rillint/internal/fix"
	"rillint/internal/source"
	"rillint/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	f := p.top()
	if f.pos >= len(f.toks) {
		return f.eof
	}
	tok := f.toks[f.pos]
	f.pos++
	if tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat съедает токен, если он нужного вида.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// getDiagnosticSpan — возвращает лучший span для диагностики
// Если текущий токен EOF, используем позицию после lastSpan
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ShrinkToEnd()
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diagSpan, msg, nil)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// expectInsert — как expect, но с предложением вставить пропущенный токен.
func (p *Parser) expectInsert(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	insertSpan := p.lastSpan.ShrinkToEnd()
	text := k.String()
	p.report(code, p.getDiagnosticSpan(), msg, func(b *diag.ReportBuilder) {
		if insertSpan.FromExpansion() {
			return
		}
		b.WithFixSuggestion(fix.InsertText(
			"insert '"+text+"'",
			insertSpan,
			text,
			"",
			fix.WithID(fix.MakeFixID(code, insertSpan)),
			fix.WithKind(diag.FixKindRefactor),
		))
		b.WithNote(insertSpan, "insert missing '"+text+"'")
	})
	return token.Token{Kind: token.Invalid, Span: insertSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.getDiagnosticSpan(), msg, nil)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string, decorate func(*diag.ReportBuilder)) {
	if p.opts.Enough() {
		p.opts.CurrentErrors++
		return // достигли максимального количества ошибок
	}
	p.opts.CurrentErrors++
	b := diag.ReportError(p.opts.Reporter, code, sp, msg)
	if decorate != nil {
		decorate(b)
	}
	b.Emit()
}

// splitGt отдаёт первый '>' из '>>' или '>=' и оставляет остаток в потоке.
// Нужен для закрытия generic-аргументов: Option<Vec<u8>>.
func (p *Parser) splitGt() (token.Token, bool) {
	f := p.top()
	if f.pos >= len(f.toks) {
		return token.Token{}, false
	}
	tok := f.toks[f.pos]
	var rest token.Kind
	switch tok.Kind {
	case token.Gt:
		return p.advance(), true
	case token.Shr:
		rest = token.Gt
	case token.GtEq:
		rest = token.Assign
	case token.ShrAssign:
		rest = token.GtEq
	default:
		return token.Token{}, false
	}
	first := token.Token{Kind: token.Gt, Span: tok.Span.WithEnd(tok.Span.Start + 1), Text: ">", Leading: tok.Leading}
	f.toks[f.pos] = token.Token{Kind: rest, Span: tok.Span.WithStart(tok.Span.Start + 1), Text: tok.Text[1:]}
	if tok.Span.Len() < 2 {
		// токен из with_span!: позиции не соответствуют тексту
		first.Span, f.toks[f.pos].Span = tok.Span, tok.Span
	}
	p.lastSpan = first.Span
	return first, true
}

// resyncUntil прокручивает поток до одного из токенов (не съедая его),
// пропуская вложенные скобки целиком.
func (p *Parser) resyncUntil(stops ...token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		tok := p.peek()
		if depth == 0 {
			for _, k := range stops {
				if tok.Kind == k {
					return
				}
			}
		}
		switch {
		case tok.IsOpen():
			depth++
		case tok.IsClose():
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// skipEntry пропускает испорченный элемент списка до sep или closer и съедает
// sep. Чужая закрывающая скобка съедается, иначе цикл списка не продвинется.
func (p *Parser) skipEntry(sep, closer token.Kind) {
	before := p.top().pos
	p.resyncUntil(sep, closer)
	if p.top().pos == before && !p.atOr(sep, closer, token.EOF) {
		p.advance()
	}
	p.eat(sep)
}

// resyncTop — восстановление после ошибки на верхнем уровне.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwFn, token.KwStruct, token.KwEnum, token.KwConst, token.KwMacro, token.KwExtern)
	if p.at(token.Semicolon) || p.at(token.RBrace) {
		p.advance()
	}
}

// resyncStatement — до ';' или '}' текущего блока.
func (p *Parser) resyncStatement() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// canStartExpr — может ли токен начинать выражение (для break/return/range).
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.Lifetime, token.IntLit, token.FloatLit, token.StringLit, token.RawStringLit,
		token.ByteStringLit, token.ByteLit, token.CharLit, token.KwTrue, token.KwFalse,
		token.LParen, token.LBracket, token.LBrace, token.Minus, token.Bang, token.Star, token.Amp, token.AndAnd,
		token.Pipe, token.OrOr, token.DotDot, token.DotDotEq,
		token.KwIf, token.KwWhile, token.KwLoop, token.KwFor, token.KwMatch, token.KwUnsafe,
		token.KwBreak, token.KwContinue, token.KwReturn, token.ColonColon:
		return true
	}
	return false
}
