// Package testkit holds structural checks shared by parser and expansion tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lockweak/internal/ast"
	"lockweak/internal/source"
)

// CheckSpanInvariants validates the declaration tree of a parsed file:
//  1. the file span lies within the content and belongs to sf;
//  2. every declaration span is non-empty and nested in its parent
//     (the file for top-level declarations), with a matching Parent link;
//  3. attributes lie inside their declaration, members inside the braces.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	for _, id := range f.Decls {
		if err := checkDecl(b, id, ast.NoDeclID, f.Span, sf.ID); err != nil {
			return err
		}
	}
	return nil
}

func checkDecl(b *ast.Builder, id, parent ast.DeclID, outer source.Span, file source.FileID) error {
	decl := b.Decls.Get(id)
	if decl == nil {
		return fmt.Errorf("nil decl for id=%d", id)
	}
	sp := decl.Span
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s decl span: %v", decl.Kind, sp)
	}
	if sp.File != file {
		return fmt.Errorf("decl span file mismatch: got=%d want=%d", sp.File, file)
	}
	if !outer.Contains(sp) {
		return fmt.Errorf("%s decl span %v is outside %v", decl.Kind, sp, outer)
	}
	if decl.Parent != parent {
		return fmt.Errorf("decl %d has parent %d, want %d", id, decl.Parent, parent)
	}

	var attrs []ast.Attr
	switch decl.Kind {
	case ast.DeclVar:
		attrs = b.Decls.Var(id).Attrs
	case ast.DeclType:
		td := b.Decls.Type(id)
		attrs = td.Attrs
		if len(td.Members) > 0 {
			body := source.Span{File: file, Start: td.LBrace.End, End: td.RBrace.Start}
			if td.RBrace.Empty() {
				// незакрытое тело: члены тянутся до конца объявления
				body.End = sp.End
			}
			for _, m := range td.Members {
				if err := checkDecl(b, m, id, body, file); err != nil {
					return err
				}
			}
		}
	}
	for _, a := range attrs {
		if a.Synthetic {
			continue
		}
		if !sp.Contains(a.Span) {
			return fmt.Errorf("attribute span %v is outside decl %v", a.Span, sp)
		}
	}
	return nil
}
