package parser

import (
	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

// parseAttributes читает `@Name` и `@Name(args)`; скобки должны примыкать к имени.
func (p *Parser) parseAttributes() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.At) {
		at := p.advance()
		if !p.peek().IsWord() {
			p.err(diag.SynExpectIdentifier, "expected attribute name after '@'")
			break
		}
		name := p.advance()
		attr := ast.Attr{
			Name: p.intern(name.Text),
			Span: at.Span.Cover(name.Span),
		}
		if p.at(token.LParen) && p.peek().Span.Start == name.Span.End {
			open := p.peek()
			closeSpan := p.skipGroup()
			attr.HasArgs = true
			if closeSpan.Start > open.Span.End {
				attr.Args = p.text(open.Span.End, closeSpan.Start)
			}
			attr.Span = attr.Span.Cover(closeSpan)
		}
		attr.Extent = p.extentUntilNext(attr.Span)
		attrs = append(attrs, attr)
	}
	return attrs
}

// extentUntilNext расширяет sp пробелами и переводами строк до следующего токена,
// останавливаясь на первом комментарии.
func (p *Parser) extentUntilNext(sp source.Span) source.Span {
	next := p.peek()
	end := sp.End
	for _, tr := range next.Leading {
		if tr.IsComment() {
			return source.Span{File: sp.File, Start: sp.Start, End: end}
		}
		end = tr.Span.End
	}
	if next.Kind != token.EOF {
		end = next.Span.Start
	}
	return source.Span{File: sp.File, Start: sp.Start, End: end}
}

// parseModifiers собирает модификаторы объявления в битовое множество.
// `private(set)` не меняет доступ на чтение и в множество не попадает.
func (p *Parser) parseModifiers() token.Modifier {
	var mods token.Modifier
	for {
		tok := p.peek()
		var bit token.Modifier
		switch {
		case tok.Kind == token.KwStatic:
			bit = token.ModStatic
		case tok.Kind == token.KwClass && p.isClassModifier():
			bit = token.ModClass
		case tok.Kind == token.Ident:
			m, ok := token.LookupModifier(tok.Text)
			if !ok || m == token.ModClass || m == token.ModStatic {
				return mods
			}
			next := p.peekN(1)
			if !next.IsWord() && !(next.Kind == token.LParen && next.Span.Start == tok.Span.End) {
				return mods
			}
			bit = m
		default:
			return mods
		}
		word := p.advance()
		if p.at(token.LParen) && p.peek().Span.Start == word.Span.End {
			open := p.peek()
			closeSpan := p.skipGroup()
			if p.text(open.Span.End, closeSpan.Start) == "set" {
				continue
			}
		}
		mods |= bit
	}
}

// `class var`, `class func`, `class override func`: модификатор, а не объявление класса
func (p *Parser) isClassModifier() bool {
	next := p.peekN(1)
	switch next.Kind {
	case token.KwVar, token.KwLet, token.KwFunc, token.KwSubscript:
		return true
	case token.Ident:
		if _, ok := token.LookupModifier(next.Text); ok {
			return p.peekN(2).IsWord()
		}
	}
	return false
}
