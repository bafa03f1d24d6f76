package parser

import (
	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

// parseTypeDecl разбирает `class|struct|enum|actor|protocol|extension Name<...>: A, B where ... { members }`.
func (p *Parser) parseTypeDecl(parent ast.DeclID, start source.Span, attrs []ast.Attr, mods token.Modifier, kind ast.TypeKind) ast.DeclID {
	kw := p.advance()
	td := ast.TypeDecl{
		Kind:      kind,
		Attrs:     attrs,
		Modifiers: mods,
		Keyword:   kw.Span,
	}

	if kind == ast.TypeExtension {
		td.Extended = p.parseExtendedType()
	} else if p.at(token.Ident) {
		name := p.advance()
		td.Name = p.intern(name.Text)
		td.NameSpan = name.Span
	} else {
		p.err(diag.SynExpectIdentifier, "expected "+kind.String()+" name")
	}

	td.Inherits = p.parseTypeHead()

	lbrace, ok := p.expect(token.LBrace, diag.SynTypeExpectBody, "expected '{' to start "+kind.String()+" body")
	if !ok {
		return p.arenas.Decls.NewType(start.Cover(p.lastSpan), parent, td)
	}
	td.LBrace = lbrace.Span

	// id выделяем до членов: им нужен Parent
	id := p.arenas.Decls.NewType(start, parent, td)
	var members []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		members = append(members, p.parseDecl(id))
	}
	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close "+kind.String()+" body")

	decl := p.arenas.Decls.Get(id)
	decl.Span = start.Cover(p.lastSpan)
	got := p.arenas.Decls.Type(id)
	got.Members = members
	if ok {
		got.RBrace = rbrace.Span
	}
	return id
}

// parseExtendedType: текст типа после `extension` до ':', 'where' или '{'
func (p *Parser) parseExtendedType() string {
	first := p.peek()
	if p.atOr(token.LBrace, token.Colon, token.KwWhere, token.EOF, token.RBrace) {
		p.err(diag.SynExpectType, "expected type after 'extension'")
		return ""
	}
	for !p.atOr(token.LBrace, token.Colon, token.KwWhere, token.EOF, token.RBrace) {
		if p.peek().Kind.IsOpen() {
			p.skipGroup()
			continue
		}
		p.advance()
	}
	return p.text(first.Span.Start, p.lastSpan.End)
}

// parseTypeHead пропускает generic-параметры, список наследования и where до '{'.
// Возвращает тексты элементов списка наследования.
func (p *Parser) parseTypeHead() []string {
	var inherits []string
	inList, inWhere := false, false
	depth := 0
	itemStart := uint32(0)
	flush := func() {
		if inList && itemStart < p.lastSpan.End {
			inherits = append(inherits, p.text(itemStart, p.lastSpan.End))
		}
	}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || tok.Kind == token.RBrace:
			flush()
			return inherits
		case tok.Kind == token.LBrace:
			flush()
			return inherits
		case tok.Kind == token.Colon && depth == 0 && !inList && !inWhere:
			p.advance()
			inList = true
			itemStart = p.peek().Span.Start
			continue
		case tok.Kind == token.Comma && depth == 0 && inList:
			flush()
			p.advance()
			itemStart = p.peek().Span.Start
			continue
		case tok.Kind == token.KwWhere && depth == 0:
			flush()
			inList, inWhere = false, true
		case tok.Kind.IsOpen():
			p.skipGroup()
			continue
		}
		depth += angleDelta(tok)
		if depth < 0 {
			depth = 0
		}
		p.advance()
	}
}
