package lexer

import (
	"strings"

	"lockweak/internal/diag"
	"lockweak/internal/token"
)

// scanString читает "..." или """...""" с интерполяцией \( ... ).
// hashes: число '#' у сырой строки: тогда escape и интерполяция
// распознаются только как \#( и \#n, а закрывающая кавычка требует столько же '#'.
func (lx *Lexer) scanString(hashes int) token.Token {
	start := lx.cursor.Mark()
	if hashes > 0 {
		start = Mark(uint32(start) - uint32(hashes)) // #nosec G115 -- hashes < token length
	}
	closing := "\"" + strings.Repeat("#", hashes)
	multiline := false
	if lx.cursor.EatString(`"""`) {
		multiline = true
		closing = `"""` + strings.Repeat("#", hashes)
	} else {
		lx.cursor.Bump() // opening '"'
	}
	escape := "\\" + strings.Repeat("#", hashes)

	for !lx.cursor.EOF() {
		if lx.cursor.EatString(closing) {
			return lx.emit(token.StringLit, start)
		}
		if lx.cursor.EatString(escape) {
			if lx.cursor.EOF() {
				break
			}
			if lx.cursor.Peek() == '(' {
				if !lx.skipInterpolation() {
					break
				}
				continue
			}
			// грубая обработка escape: съесть следующий байт, не валидируем глубоко здесь
			lx.cursor.Bump()
			continue
		}
		if lx.cursor.Peek() == '\n' && !multiline {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.emit(token.Invalid, start)
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// skipInterpolation пропускает \( ... ) с учётом вложенных скобок и строк.
func (lx *Lexer) skipInterpolation() bool {
	lx.cursor.Bump() // '('
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lx.cursor.Bump()
				return true
			}
		case '"':
			inner := lx.scanString(0)
			if inner.Kind == token.Invalid {
				return false
			}
			continue
		case '\n':
			return false
		}
		lx.cursor.Bump()
	}
	return false
}

// #"..."#, ##"..."##
func (lx *Lexer) isRawStringStart() bool {
	n := uint32(0)
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return n > 0 && lx.cursor.PeekAt(n) == '"'
}

func (lx *Lexer) scanRawString() token.Token {
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	return lx.scanString(hashes)
}
