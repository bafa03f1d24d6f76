package parser

import (
	"slices"

	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/lexer"
	"lockweak/internal/source"
	"lockweak/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser: состояние парсера на один файл.
// Токены читаются целиком заранее: эвристикам объявлений нужен lookahead больше одного.
type Parser struct {
	toks     []token.Token
	pos      int
	src      *source.File
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	_ = fs
	p := Parser{
		toks:     lx.All(),
		src:      lx.File(),
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseDecls()

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseDecls: основной цикл верхнего уровня: пока не EOF: parseDecl.
func (p *Parser) parseDecls() {
	f := p.arenas.Files.Get(p.file)
	f.Span = source.Span{File: p.src.ID, Start: 0, End: p.peekN(len(p.toks)).Span.End}
	f.Indent = detectIndent(p.src.Content)

	for !p.at(token.EOF) {
		switch {
		case p.at(token.Semicolon):
			p.advance()
		case p.at(token.RBrace):
			p.err(diag.SynUnexpectedToken, "unexpected '}' at top level")
			p.advance()
		default:
			id := p.parseDecl(ast.NoDeclID)
			p.arenas.PushDecl(p.file, id)
		}
	}
}

// parseDecl выбирает по первому значимому токену после атрибутов и модификаторов.
func (p *Parser) parseDecl(parent ast.DeclID) ast.DeclID {
	start := p.peek().Span
	startPos := p.pos
	attrs := p.parseAttributes()
	mods := p.parseModifiers()

	tok := p.peek()
	switch {
	case tok.Kind == token.KwClass:
		return p.parseTypeDecl(parent, start, attrs, mods, ast.TypeClass)
	case tok.Kind == token.KwStruct:
		return p.parseTypeDecl(parent, start, attrs, mods, ast.TypeStruct)
	case tok.Kind == token.KwEnum:
		return p.parseTypeDecl(parent, start, attrs, mods, ast.TypeEnum)
	case tok.Kind == token.KwProtocol:
		return p.parseTypeDecl(parent, start, attrs, mods, ast.TypeProtocol)
	case tok.Kind == token.KwExtension:
		return p.parseTypeDecl(parent, start, attrs, mods, ast.TypeExtension)
	case tok.Is("actor") && p.peekN(1).Kind == token.Ident:
		return p.parseTypeDecl(parent, start, attrs, mods, ast.TypeActor)
	case tok.Kind == token.KwVar || tok.Kind == token.KwLet:
		return p.parseVarDecl(parent, start, attrs, mods)
	default:
		return p.parseRawDecl(parent, start, startPos)
	}
}
