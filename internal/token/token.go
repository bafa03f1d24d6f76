package token

import (
	"lockweak/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier or a hard keyword.
// Attribute names and member labels accept both.
func (t Token) IsWord() bool { return t.Kind == Ident || t.Kind.IsKeyword() }

// Is reports whether the token is the identifier word.
func (t Token) Is(word string) bool { return t.Kind == Ident && t.Text == word }

// StartsLine reports whether a newline precedes the token in its leading trivia.
// The first token of a file also counts as starting a line.
func (t Token) StartsLine() bool {
	if t.Span.Start == 0 {
		return true
	}
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}
