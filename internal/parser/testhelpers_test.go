package parser

import (
	"fmt"
	"strings"
	"testing"

	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/lexer"
	"lockweak/internal/source"
)

type parsed struct {
	fs      *source.FileSet
	file    *source.File
	builder *ast.Builder
	ast     *ast.File
	fileID  ast.FileID
	bag     *diag.Bag
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(fs, lx, builder, Options{Reporter: reporter})
	if res.Bag != bag {
		t.Fatalf("result must carry the reporter bag")
	}
	return parsed{fs: fs, file: file, builder: builder, ast: builder.Files.Get(res.File), fileID: res.File, bag: bag}
}

func mustParse(t *testing.T, input string) parsed {
	t.Helper()
	p := parseSource(t, input)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (p parsed) text(sp source.Span) string { return p.file.Text(sp) }

func (p parsed) name(id source.StringID) string { return p.builder.Name(id) }

// typeAt возвращает i-е объявление верхнего уровня как тип
func (p parsed) typeAt(t *testing.T, i int) (ast.DeclID, *ast.TypeDecl) {
	t.Helper()
	if i >= len(p.ast.Decls) {
		t.Fatalf("only %d top-level decls", len(p.ast.Decls))
	}
	id := p.ast.Decls[i]
	td := p.builder.Decls.Type(id)
	if td == nil {
		t.Fatalf("decl %d is %v, not a type", i, p.builder.Decls.Get(id).Kind)
	}
	return id, td
}

func (p parsed) member(t *testing.T, td *ast.TypeDecl, i int) *ast.VarDecl {
	t.Helper()
	if i >= len(td.Members) {
		t.Fatalf("only %d members", len(td.Members))
	}
	vd := p.builder.Decls.Var(td.Members[i])
	if vd == nil {
		t.Fatalf("member %d is %v, not a var", i, p.builder.Decls.Get(td.Members[i]).Kind)
	}
	return vd
}
