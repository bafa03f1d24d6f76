package lexer

import (
	"lockweak/internal/diag"
	"lockweak/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.5, 1e-3, 0x1p4.
// "1...5" и "1..<5": целое и оператор диапазона, точка в число не входит.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		hex := false
		switch lx.cursor.PeekAt(1) {
		case 'b':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x':
			digit, hex = isHex, true
		}
		if digit != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !digit(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digit after base prefix")
				return lx.emit(token.Invalid, start)
			}
			for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			// шестнадцатеричная экспонента p/P
			if p := lx.cursor.Peek(); hex && (p == 'p' || p == 'P') {
				kind = token.FloatLit
				if !lx.scanExponent() {
					return lx.badExponent(start)
				}
			}
			return lx.emit(kind, start)
		}
	}

	lx.eatDecimalDigits()

	// дробная часть только если после точки цифра
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDecimalDigits()
	}

	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		kind = token.FloatLit
		if !lx.scanExponent() {
			return lx.badExponent(start)
		}
	}

	return lx.emit(kind, start)
}

func (lx *Lexer) eatDecimalDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

// scanExponent съедает e/E/p/P, знак и цифры; false если цифр нет
func (lx *Lexer) scanExponent() bool {
	lx.cursor.Bump()
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		return false
	}
	lx.eatDecimalDigits()
	return true
}

func (lx *Lexer) badExponent(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
	return lx.emit(token.Invalid, start)
}
