package ast

import "lockweak/internal/source"

// File: корень дерева одного исходника.
type File struct {
	Span   source.Span
	Source source.FileID
	Decls  []DeclID
	// Indent is the detected indentation unit ("    ", "\t", ...).
	Indent string
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

// New registers a file node covering sp; Source is taken from the span.
func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp, Source: sp.File}))
}

func (f *Files) Get(id FileID) *File { return f.Arena.Get(uint32(id)) }

// AddDecl appends a top-level declaration.
func (f *Files) AddDecl(id FileID, decl DeclID) {
	if file := f.Get(id); file != nil {
		file.Decls = append(file.Decls, decl)
	}
}
