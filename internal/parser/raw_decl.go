package parser

import (
	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

// parseRawDecl пропускает объявление, которое мы не разбираем, и сохраняет его span.
// Конец: новая строка глубины 0 без продолжения, ';' или '}' охватывающего тела.
// Директивы `#if`, `#endif` занимают ровно одну строку.
func (p *Parser) parseRawDecl(parent ast.DeclID, start source.Span, startPos int) ast.DeclID {
	first := p.peek()
	keyword := first.Text

	switch {
	case first.Kind == token.EOF || first.Kind == token.RBrace:
		// только атрибуты/модификаторы без объявления
		if p.pos == startPos {
			p.err(diag.SynUnexpectedToken, "expected declaration")
		}
		return p.arenas.Decls.NewRaw(start.Cover(p.lastSpan), parent, keyword)

	case first.Kind == token.RParen || first.Kind == token.RBracket:
		p.err(diag.SynUnexpectedToken, "unexpected '"+first.Text+"'")
		p.advance()
		return p.arenas.Decls.NewRaw(start.Cover(first.Span), parent, keyword)

	case first.Kind == token.Hash:
		p.advance()
		if p.peek().IsWord() && !p.peek().StartsLine() {
			keyword = "#" + p.peek().Text
		}
		for !p.at(token.EOF) && !p.peek().StartsLine() {
			if p.peek().Kind.IsOpen() {
				p.skipGroup()
				continue
			}
			p.advance()
		}
		return p.arenas.Decls.NewRaw(start.Cover(p.lastSpan), parent, keyword)
	}

	for {
		if p.peek().Kind.IsOpen() {
			p.skipGroup()
		} else {
			p.advance()
		}
		next := p.peek()
		if next.Kind == token.EOF || next.Kind == token.RBrace {
			break
		}
		if next.Kind == token.Semicolon {
			p.advance()
			break
		}
		if next.StartsLine() && next.Kind != token.LBrace && !isContinuation(p.toks[p.pos-1], next) {
			break
		}
	}
	return p.arenas.Decls.NewRaw(start.Cover(p.lastSpan), parent, keyword)
}
