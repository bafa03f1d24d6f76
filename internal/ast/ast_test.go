package ast

import (
	"testing"

	"lockweak/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("unexpected allocation %d", id)
	}
	a.Allocate(7)
	var ids []uint32
	for id, v := range a.All() {
		ids = append(ids, id)
		*v++
	}
	if len(ids) != 2 || ids[1] != 2 || *a.Get(2) != 8 {
		t.Fatalf("All: ids %v, second %d", ids, *a.Get(2))
	}
}

func TestQualifiedName(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	outer := b.Decls.NewType(source.Span{}, NoDeclID, TypeDecl{Kind: TypeClass, Name: b.StringsInterner.Intern("Outer")})
	inner := b.Decls.NewType(source.Span{}, outer, TypeDecl{Kind: TypeClass, Name: b.StringsInterner.Intern("Inner")})
	ext := b.Decls.NewType(source.Span{}, NoDeclID, TypeDecl{Kind: TypeExtension, Name: source.NoStringID, Extended: "Outer.Inner"})
	deep := b.Decls.NewType(source.Span{}, ext, TypeDecl{Kind: TypeClass, Name: b.StringsInterner.Intern("Deep")})

	if got, ok := b.QualifiedName(inner); !ok || got != "Outer.Inner" {
		t.Fatalf("QualifiedName(inner) = %q,%v", got, ok)
	}
	if got, _ := b.QualifiedName(deep); got != "Outer.Inner.Deep" {
		t.Fatalf("QualifiedName(deep) = %q", got)
	}
	if _, ok := b.QualifiedName(ext); ok {
		t.Fatalf("extension has no name")
	}
	if b.Decls.TopLevel(inner) != outer || b.Decls.TopLevel(outer) != outer {
		t.Fatalf("TopLevel broken")
	}

	var seen []DeclID
	b.Decls.Type(outer).Members = []DeclID{inner}
	b.Decls.Walk(outer, func(id DeclID) bool {
		seen = append(seen, id)
		return true
	})
	if len(seen) != 2 || seen[1] != inner {
		t.Fatalf("Walk visited %v", seen)
	}
}

func TestAttrLookupAndExtension(t *testing.T) {
	in := source.NewInterner()
	marker := in.Intern("RegisterWeakReference")
	attrs := []Attr{{Name: in.Intern("objc")}, {Name: marker}}
	if FindAttr(attrs, marker) != 1 || HasAttr(attrs, in.Intern("other")) {
		t.Fatalf("attr lookup")
	}
	if HasAttr(attrs, source.NoStringID) {
		t.Fatalf("NoStringID never matches")
	}

	ext := Extension{Access: "private", TypeName: "AnyFoo", Members: []Code{Line("let x = 1")}}
	code := ext.Code()
	if code.Line != "private extension AnyFoo {" || !code.IsBlock() || len(code.Body) != 1 {
		t.Fatalf("unexpected extension code %+v", code)
	}
}
