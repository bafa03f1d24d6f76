package parser

import (
	"lockweak/internal/diag"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

// getDiagnosticSpan: на EOF указываем сразу за последним токеном
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false // достигли максимального количества ошибок
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.StringsInterner.Intern(s)
}

// text возвращает исходный текст между смещениями
func (p *Parser) text(start, end uint32) string {
	return p.src.Text(source.Span{File: p.src.ID, Start: start, End: end})
}

// skipGroup съедает сбалансированную группу (), [] или {} начиная с открывающей скобки.
// Возвращает span закрывающего токена (или последнего съеденного при ошибке).
func (p *Parser) skipGroup() source.Span {
	open := p.advance()
	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.report(unclosedCode(open.Kind), diag.SevError, open.Span, "unclosed '"+open.Text+"'")
			return p.lastSpan
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		}
		p.advance()
	}
	return p.lastSpan
}

func unclosedCode(k token.Kind) diag.Code {
	switch k {
	case token.LParen:
		return diag.SynUnclosedParen
	case token.LBrace:
		return diag.SynUnclosedBrace
	case token.LBracket:
		return diag.SynUnclosedBracket
	default:
		return diag.SynUnclosedDelimiter
	}
}

// isContinuation: токен next на новой строке продолжает текущую конструкцию
func isContinuation(prev, next token.Token) bool {
	switch next.Kind {
	case token.Dot, token.Operator, token.Arrow, token.Assign, token.KwWhere, token.KwAs:
		return true
	}
	switch prev.Kind {
	case token.Operator, token.Assign, token.Comma, token.Dot, token.Colon, token.Arrow, token.At, token.KwAs:
		return true
	}
	return false
}

// angleDelta считает '<' и '>' в операторе: для обобщённых типов вида Array<Set<Int>>?
func angleDelta(tok token.Token) int {
	if tok.Kind != token.Operator {
		return 0
	}
	d := 0
	for i := 0; i < len(tok.Text); i++ {
		switch tok.Text[i] {
		case '<':
			d++
		case '>':
			d--
		}
	}
	return d
}

// detectIndent находит единицу отступа: таб, если строки начинаются с таба,
// иначе минимальное ненулевое число пробелов. По умолчанию четыре пробела.
func detectIndent(content []byte) string {
	minSpaces := 0
	lineStart := true
	spaces := 0
	for _, b := range content {
		if lineStart {
			switch b {
			case '\t':
				if spaces == 0 {
					return "\t"
				}
				lineStart = false
			case ' ':
				spaces++
				continue
			case '\n':
				spaces = 0
				continue
			default:
				// строки " * " внутри /** */ не считаем
				if b != '*' && spaces > 0 && (minSpaces == 0 || spaces < minSpaces) {
					minSpaces = spaces
				}
				lineStart = false
			}
			continue
		}
		if b == '\n' {
			lineStart = true
			spaces = 0
		}
	}
	if minSpaces == 0 {
		return "    "
	}
	out := make([]byte, minSpaces)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
