package lexer

import (
	"lockweak/internal/diag"
	"lockweak/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Не-ASCII идентификаторы приводятся к NFC,
// чтобы "é" в двух нормальных формах давало одно имя.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	ascii := true

	r, sz := lx.cursor.PeekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if r >= utf8RuneSelf && !isIdentStartRune(r) {
		lx.cursor.BumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return lx.emit(token.Invalid, start)
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.cursor.PeekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.cursor.BumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if !ascii {
		tok.Text = norm.NFC.String(tok.Text)
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// `class`: экранированный идентификатор; Text без обратных кавычек.
func (lx *Lexer) scanEscapedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '`' {
			lx.cursor.Bump()
			tok := lx.emit(token.Ident, start)
			tok.Text = norm.NFC.String(tok.Text[1 : len(tok.Text)-1])
			return tok
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unterminated escaped identifier")
	return lx.emit(token.Invalid, start)
}

// $0, $name
func (lx *Lexer) scanDollarIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Off-uint32(start) == 1 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "expected identifier after '$'")
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(token.Ident, start)
}
