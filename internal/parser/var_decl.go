package parser

import (
	"strings"

	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

// parseVarDecl разбирает `var|let name[: Type][= init][, ...][{ accessors }]`.
// Запоминается только первая привязка.
func (p *Parser) parseVarDecl(parent ast.DeclID, start source.Span, attrs []ast.Attr, mods token.Modifier) ast.DeclID {
	startPos := p.pos
	kw := p.advance()
	vd := ast.VarDecl{
		Binding:   ast.BindingVar,
		Attrs:     attrs,
		Modifiers: mods,
		Keyword:   kw.Span,
		Bindings:  1,
	}
	if kw.Kind == token.KwLet {
		vd.Binding = ast.BindingLet
	}

	// `let (a, b) = ...`, `let _ = ...`: не одиночное имя, оставляем как есть
	if !p.at(token.Ident) || p.peek().Text == "_" {
		p.pos = startPos
		return p.parseRawDecl(parent, start, startPos)
	}
	name := p.advance()
	vd.Name = p.intern(name.Text)
	vd.NameSpan = name.Span

	if p.at(token.Colon) {
		p.advance()
		vd.Type = p.parseTypeAnnotation()
	}
	if p.at(token.Assign) {
		eq := p.advance()
		end, ok := p.skipExpression()
		if !ok {
			p.err(diag.SynExpectExpression, "expected initial value after '='")
		}
		vd.HasInit = true
		vd.InitSpan = eq.Span.Cover(end)
	}
	for p.at(token.Comma) {
		p.advance()
		vd.Bindings++
		p.skipBinding()
	}
	if p.at(token.LBrace) {
		p.parseAccessorBlock(&vd)
	}

	return p.arenas.Decls.NewVar(start.Cover(p.lastSpan), parent, vd)
}

// parseTypeAnnotation читает тип до '=', '{', ',', ';', '}' или новой строки на глубине 0.
func (p *Parser) parseTypeAnnotation() *ast.TypeRef {
	first := p.peek()
	angle := 0
	consumed := false
	for {
		tok := p.peek()
		if angle == 0 {
			if p.atOr(token.Assign, token.LBrace, token.Comma, token.Semicolon, token.RBrace, token.EOF) {
				break
			}
			if consumed && tok.StartsLine() && !isContinuation(p.toks[p.pos-1], tok) {
				break
			}
		} else if tok.Kind == token.EOF || tok.Kind == token.RBrace {
			break
		}
		if tok.Kind.IsOpen() {
			p.skipGroup()
			consumed = true
			continue
		}
		angle += angleDelta(tok)
		if angle < 0 {
			angle = 0
		}
		p.advance()
		consumed = true
	}
	if !consumed {
		p.err(diag.SynExpectType, "expected type annotation after ':'")
		return nil
	}
	sp := source.Span{File: first.Span.File, Start: first.Span.Start, End: p.lastSpan.End}
	text := p.src.Text(sp)
	ref := &ast.TypeRef{Text: text, Span: sp}
	if strings.HasSuffix(text, "?") {
		ref.Optional = true
		ref.Wrapped = strings.TrimSpace(strings.TrimSuffix(text, "?"))
	}
	return ref
}

// skipExpression пропускает выражение-инициализатор. Останавливается на ',', ';', '}'
// глубины 0, на новой строке без продолжения и на блоке наблюдателей `{ willSet/didSet }`.
func (p *Parser) skipExpression() (source.Span, bool) {
	consumed := false
	for {
		tok := p.peek()
		if p.atOr(token.Comma, token.Semicolon, token.RBrace, token.EOF) {
			break
		}
		if consumed && tok.StartsLine() && !isContinuation(p.toks[p.pos-1], tok) {
			break
		}
		if tok.Kind == token.LBrace {
			if consumed && p.isObserverBlock() {
				break
			}
			p.skipGroup()
			consumed = true
			continue
		}
		if tok.Kind.IsOpen() {
			p.skipGroup()
			consumed = true
			continue
		}
		p.advance()
		consumed = true
	}
	return p.lastSpan, consumed
}

// isObserverBlock: текущий '{' открывает willSet/didSet
func (p *Parser) isObserverBlock() bool {
	k, ok := token.LookupAccessor(p.firstAccessorWord())
	return ok && k.IsObserver()
}

// firstAccessorWord пропускает атрибуты и модификаторы после '{' и возвращает первое слово
func (p *Parser) firstAccessorWord() string {
	i := 1
	for {
		tok := p.peekN(i)
		switch {
		case tok.Kind == token.At:
			i += 2
			if p.peekN(i).Kind == token.LParen {
				// @attr(...) внутри блока доступа: редкость, дальше не смотрим
				return ""
			}
		case tok.Is("mutating") || tok.Is("nonmutating") || tok.Is("override"):
			i++
		case tok.IsWord():
			return tok.Text
		default:
			return ""
		}
	}
}

// skipBinding пропускает дополнительную привязку `, name[: T][= v]`
func (p *Parser) skipBinding() {
	if p.at(token.Ident) {
		p.advance()
	}
	if p.at(token.Colon) {
		p.advance()
		p.parseTypeAnnotation()
	}
	if p.at(token.Assign) {
		p.advance()
		p.skipExpression()
	}
}

// parseAccessorBlock классифицирует `{ ... }` после привязки.
func (p *Parser) parseAccessorBlock(vd *ast.VarDecl) {
	open := p.peek()
	if _, ok := token.LookupAccessor(p.firstAccessorWord()); !ok {
		closeSpan := p.skipGroup()
		vd.Accessors = ast.AccessorsGetterOnly
		vd.AccessorSpan = open.Span.Cover(closeSpan)
		return
	}

	vd.Accessors = ast.AccessorsList
	p.advance() // '{'
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		tok := p.peek()
		if tok.Kind.IsOpen() {
			p.skipGroup()
			continue
		}
		if tok.IsWord() {
			if k, ok := token.LookupAccessor(tok.Text); ok {
				vd.AccessorList = append(vd.AccessorList, ast.Accessor{Kind: k, Span: tok.Span})
			}
		}
		p.advance()
	}
	closeTok, _ := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close accessor block")
	vd.AccessorSpan = open.Span.Cover(closeTok.Span)
}
