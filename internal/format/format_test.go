package format

import (
	"errors"
	"testing"

	"lockweak/internal/ast"
	"lockweak/internal/source"
)

func virtualFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.swift", []byte(content))
	return fs.Get(id)
}

func TestRenderCodeIndentsBlocks(t *testing.T) {
	code := ast.Block("get {",
		ast.Block("_delegate.withLock {",
			ast.Line("$0 as? FooDelegate"),
		),
	)
	got := RenderCode(code, "        ", Options{})
	want := "        get {\n" +
		"            _delegate.withLock {\n" +
		"                $0 as? FooDelegate\n" +
		"            }\n" +
		"        }"
	if got != want {
		t.Fatalf("unexpected render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderCodesJoinsLines(t *testing.T) {
	got := RenderCodes([]ast.Code{ast.Line("a"), ast.Block("b {"), ast.Line("c")}, "\t", Options{Indent: "\t"})
	want := "\ta\n\tb {\n\t}\n\tc"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestOptionsUnit(t *testing.T) {
	cases := []struct {
		opt  Options
		want string
	}{
		{Options{}, "    "},
		{Options{IndentWidth: 2}, "  "},
		{Options{UseTabs: true}, "\t"},
		{Options{Indent: "   ", UseTabs: true}, "   "},
	}
	for _, tc := range cases {
		if got := tc.opt.Unit(); got != tc.want {
			t.Fatalf("%+v: got %q want %q", tc.opt, got, tc.want)
		}
	}
}

func TestRewriterAppliesEditsInOrder(t *testing.T) {
	sf := virtualFile(t, "@A\nclass C {\n    var x\n}\n")
	r := NewRewriter(sf, Options{})
	r.Delete(source.Span{File: sf.ID, Start: 0, End: 3})
	r.Insert(22, "\n\n    let y")
	r.Insert(22, "\n    let z")
	r.Replace(source.Span{File: sf.ID, Start: 21, End: 22}, "value")
	r.Insert(24, "\nextension C {}")
	got, err := r.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "class C {\n    var value\n\n    let y\n    let z\n}\nextension C {}\n"
	if string(got) != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestRewriterInsertBeforeReplaceAtSameOffset(t *testing.T) {
	sf := virtualFile(t, "abcdef")
	r := NewRewriter(sf, Options{})
	r.Replace(source.Span{File: sf.ID, Start: 2, End: 4}, "XY")
	r.Insert(2, "-")
	got, err := r.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "ab-XYef" {
		t.Fatalf("got %q", got)
	}
}

func TestRewriterInsertAfterGoesLast(t *testing.T) {
	sf := virtualFile(t, "abcdef")
	r := NewRewriter(sf, Options{})
	r.InsertAfter(3, "F")
	r.Replace(source.Span{File: sf.ID, Start: 3, End: 3}, "R")
	r.Insert(3, "i")
	r.Replace(source.Span{File: sf.ID, Start: 3, End: 5}, "XY")
	got, err := r.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "abcRiFXYf" {
		t.Fatalf("got %q", got)
	}
}

func TestRewriterRejectsOverlap(t *testing.T) {
	sf := virtualFile(t, "abcdef")
	r := NewRewriter(sf, Options{})
	r.Replace(source.Span{File: sf.ID, Start: 1, End: 4}, "")
	r.Insert(2, "x")
	if _, err := r.Bytes(); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestRewriterWithoutEditsCopiesSource(t *testing.T) {
	sf := virtualFile(t, "let x = 1\n")
	r := NewRewriter(sf, Options{})
	r.Delete(source.Span{File: sf.ID, Start: 3, End: 3})
	if r.Len() != 0 {
		t.Fatalf("empty delete must be ignored")
	}
	got, err := r.Bytes()
	if err != nil || string(got) != "let x = 1\n" {
		t.Fatalf("got %q, %v", got, err)
	}
}
