package lexer

import (
	"lockweak/internal/diag"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // один токен вперёд для Peek
	hold   []token.Trivia // leading trivia текущего токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF; висящие trivia приклеиваются к EOF,
// чтобы печать могла воспроизвести хвост файла.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	tok := lx.scan(lx.cursor.Peek())
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token too long")
		lx.cursor.SkipToEOF()
		tok.Kind = token.Invalid
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// scan выбирает сканер по первому байту токена.
func (lx *Lexer) scan(ch byte) token.Token {
	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		// не-ASCII: scanIdentOrKeyword сам проверит, буква ли это
		return lx.scanIdentOrKeyword()
	case ch == '`':
		return lx.scanEscapedIdent()
	case ch == '$':
		// $0, $1, $name в замыканиях и property wrappers
		return lx.scanDollarIdent()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString(0)
	case ch == '#' && lx.isRawStringStart():
		return lx.scanRawString()
	}
	return lx.scanOperatorOrPunct()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the whole file, EOF included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// File returns the source file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span { return lx.emptySpan() }

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.file.Text(sp)}
}
