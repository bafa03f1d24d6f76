package lexer

import (
	"lockweak/internal/diag"
	"lockweak/internal/token"
)

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

// collectLeadingTrivia копит trivia перед значимым токеном в lx.hold.
// Пробелы и табы сливаются в один TriviaSpace, подряд идущие '\n' в один
// TriviaNewline; комментарии разбирает scanComment.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for {
		start := lx.cursor.Mark()
		switch {
		case lx.cursor.EatWhile(isBlank) > 0:
			lx.pushTrivia(token.TriviaSpace, start)
		case lx.cursor.EatWhile(func(b byte) bool { return b == '\n' }) > 0:
			lx.pushTrivia(token.TriviaNewline, start)
		case lx.cursor.Peek() == '/' && lx.scanComment():
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.file.Text(sp)})
}

// scanComment: "//", "///" (doc), "/* */" с вложенностью как в Swift, "/** */" (doc).
// Одиночный '/' не трогает: это оператор.
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	c := &lx.cursor
	switch {
	case c.EatString("//"):
		kind := token.TriviaLineComment
		if c.Peek() == '/' && c.PeekAt(1) != '/' {
			kind = token.TriviaDocLine
		}
		c.EatWhile(func(b byte) bool { return b != '\n' })
		lx.pushTrivia(kind, start)
		return true

	case c.EatString("/*"):
		kind := token.TriviaBlockComment
		// "/**/" пустой обычный, не doc
		if c.Peek() == '*' && c.PeekAt(1) != '/' {
			kind = token.TriviaDocBlock
		}
		depth := 1
		for depth > 0 && !c.EOF() {
			switch {
			case c.EatString("/*"):
				depth++
			case c.EatString("*/"):
				depth--
			default:
				c.Bump()
			}
		}
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, c.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(kind, start)
		return true
	}
	return false
}
