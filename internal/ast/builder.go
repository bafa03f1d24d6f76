package ast

import (
	"strings"

	"lockweak/internal/source"
)

type Hints struct{ Files, Decls uint }

type Builder struct {
	Files           *Files
	Decls           *Decls
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Decls:           NewDecls(hints.Decls),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushDecl(file FileID, decl DeclID) { b.Files.AddDecl(file, decl) }

// Name returns the interned text of id, "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	s, _ := b.StringsInterner.Lookup(id)
	return s
}

// QualifiedName joins the names of id and its enclosing named types with '.'.
// Enclosing extensions contribute the type they extend.
func (b *Builder) QualifiedName(id DeclID) (string, bool) {
	td := b.Decls.Type(id)
	if !td.HasName() {
		return "", false
	}
	parts := []string{b.Name(td.Name)}
	for parent := b.Decls.Get(id).Parent; parent.IsValid(); parent = b.Decls.Get(parent).Parent {
		pt := b.Decls.Type(parent)
		if pt == nil {
			break
		}
		switch {
		case pt.HasName():
			parts = append(parts, b.Name(pt.Name))
		case pt.Extended != "":
			parts = append(parts, pt.Extended)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "."), true
}
