package expand

import (
	"testing"

	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/lexer"
	"lockweak/internal/parser"
	"lockweak/internal/source"
)

type fixture struct {
	fs      *source.FileSet
	sf      *source.File
	builder *ast.Builder
	file    ast.FileID
	bag     *diag.Bag
}

func parseFixture(t *testing.T, src string) *fixture {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Sources/AnyFoo.swift", []byte(src))
	sf := fs.Get(id)

	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lx, b, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return &fixture{fs: fs, sf: sf, builder: b, file: res.File, bag: bag}
}

func (f *fixture) ctx(policy ExtensionPolicy) *Context {
	return NewContext(f.builder, f.sf, Names{}, policy)
}

// decl returns the i-th top-level declaration.
func (f *fixture) decl(t *testing.T, i int) ast.DeclID {
	t.Helper()
	decls := f.builder.Files.Get(f.file).Decls
	if i >= len(decls) {
		t.Fatalf("only %d top-level decls", len(decls))
	}
	return decls[i]
}

func (f *fixture) lockedAttr(t *testing.T, id ast.DeclID) ast.Attr {
	t.Helper()
	td := f.builder.Decls.Type(id)
	idx := f.ctx(ExtensionAlways).LockedAttr(td)
	if idx < 0 {
		t.Fatalf("declaration has no @LockedWeakReference")
	}
	return td.Attrs[idx]
}

func (f *fixture) expand(t *testing.T, opts Options) (string, Stats, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	opts.Reporter = &diag.BagReporter{Bag: bag}
	res, err := ExpandFile(f.builder, f.file, f.sf, opts)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	return string(res.Output), res.Stats, bag
}

// varDecl parses `class C { <member> }` and returns the member payload.
func varDecl(t *testing.T, member string) *ast.VarDecl {
	t.Helper()
	f := parseFixture(t, "class C {\n    "+member+"\n}\n")
	td := f.builder.Decls.Type(f.decl(t, 0))
	if len(td.Members) != 1 {
		t.Fatalf("expected one member in %q", member)
	}
	v := f.builder.Decls.Var(td.Members[0])
	if v == nil {
		t.Fatalf("member %q is not a var", member)
	}
	return v
}
