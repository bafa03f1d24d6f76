package lexer

import (
	"lockweak/internal/diag"
	"lockweak/internal/token"
)

// scanOperatorOrPunct: пунктуация один символ, операторы: максимальная серия
// операторных символов. '.'-операторы (..., ..<) начинаются только с точки.
// '?' и '!' сразу после операнда: отдельные постфиксные токены (Foo?, x!).
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch ch {
	case '(':
		return lx.single(token.LParen, start)
	case ')':
		return lx.single(token.RParen, start)
	case '{':
		return lx.single(token.LBrace, start)
	case '}':
		return lx.single(token.RBrace, start)
	case '[':
		return lx.single(token.LBracket, start)
	case ']':
		return lx.single(token.RBracket, start)
	case ',':
		return lx.single(token.Comma, start)
	case ':':
		return lx.single(token.Colon, start)
	case ';':
		return lx.single(token.Semicolon, start)
	case '@':
		return lx.single(token.At, start)
	case '#':
		return lx.single(token.Hash, start)
	case '\\':
		return lx.single(token.Backslash, start)
	}

	if (ch == '?' || ch == '!') && isPostfixContext(lx.cursor.Prev()) {
		if ch == '?' {
			return lx.single(token.Question, start)
		}
		// x != y: не постфикс
		if lx.cursor.PeekAt(1) != '=' {
			return lx.single(token.Bang, start)
		}
	}

	if ch == '.' {
		lx.cursor.Bump()
		if lx.cursor.Peek() != '.' {
			return lx.emit(token.Dot, start)
		}
		for lx.cursor.Peek() == '.' || lx.isOperatorContinue() {
			lx.cursor.Bump()
		}
		return lx.emit(token.Operator, start)
	}

	if isOperatorByte(ch) {
		lx.cursor.Bump()
		for lx.isOperatorContinue() {
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Operator, start)
		switch tok.Text {
		case "=":
			tok.Kind = token.Assign
		case "->":
			tok.Kind = token.Arrow
		case "?":
			tok.Kind = token.Question
		case "!":
			tok.Kind = token.Bang
		}
		return tok
	}

	lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return lx.emit(token.Invalid, start)
}

// isOperatorContinue: следующий байт продолжает оператор, но "//" и "/*" начинают комментарий
func (lx *Lexer) isOperatorContinue() bool {
	b := lx.cursor.Peek()
	if !isOperatorByte(b) {
		return false
	}
	if b == '/' {
		n := lx.cursor.PeekAt(1)
		return n != '/' && n != '*'
	}
	return true
}

func (lx *Lexer) single(k token.Kind, start Mark) token.Token {
	lx.cursor.Bump()
	return lx.emit(k, start)
}
