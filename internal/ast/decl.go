package ast

import (
	"lockweak/internal/source"
)

type DeclKind uint8

const (
	// DeclRaw: объявление, которое мы не разбираем (func, init, case, #if ...).
	// Печатается как есть.
	DeclRaw DeclKind = iota
	DeclType
	DeclVar
)

func (k DeclKind) String() string {
	switch k {
	case DeclType:
		return "type"
	case DeclVar:
		return "var"
	default:
		return "raw"
	}
}

type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Parent  DeclID
	Payload PayloadID
}

// RawDecl keeps only the leading keyword for dumps.
type RawDecl struct {
	Keyword string
}

type Decls struct {
	Arena *Arena[Decl]
	Types *Arena[TypeDecl]
	Vars  *Arena[VarDecl]
	Raws  *Arena[RawDecl]
}

// NewDecls creates per-kind arenas; capHint 0 means 1<<7.
func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Decls{
		Arena: NewArena[Decl](capHint),
		Types: NewArena[TypeDecl](capHint >> 2),
		Vars:  NewArena[VarDecl](capHint),
		Raws:  NewArena[RawDecl](capHint),
	}
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) NewType(sp source.Span, parent DeclID, td TypeDecl) DeclID {
	payload := PayloadID(d.Types.Allocate(td))
	return DeclID(d.Arena.Allocate(Decl{Kind: DeclType, Span: sp, Parent: parent, Payload: payload}))
}

func (d *Decls) NewVar(sp source.Span, parent DeclID, vd VarDecl) DeclID {
	payload := PayloadID(d.Vars.Allocate(vd))
	return DeclID(d.Arena.Allocate(Decl{Kind: DeclVar, Span: sp, Parent: parent, Payload: payload}))
}

func (d *Decls) NewRaw(sp source.Span, parent DeclID, keyword string) DeclID {
	payload := PayloadID(d.Raws.Allocate(RawDecl{Keyword: keyword}))
	return DeclID(d.Arena.Allocate(Decl{Kind: DeclRaw, Span: sp, Parent: parent, Payload: payload}))
}

// Type returns the type declaration payload of id, nil for other kinds.
func (d *Decls) Type(id DeclID) *TypeDecl {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclType {
		return nil
	}
	return d.Types.Get(uint32(decl.Payload))
}

// Var returns the variable declaration payload of id, nil for other kinds.
func (d *Decls) Var(id DeclID) *VarDecl {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclVar {
		return nil
	}
	return d.Vars.Get(uint32(decl.Payload))
}

func (d *Decls) Raw(id DeclID) *RawDecl {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclRaw {
		return nil
	}
	return d.Raws.Get(uint32(decl.Payload))
}

// TopLevel walks Parent links up to the declaration at file scope.
func (d *Decls) TopLevel(id DeclID) DeclID {
	for {
		decl := d.Get(id)
		if decl == nil || !decl.Parent.IsValid() {
			return id
		}
		id = decl.Parent
	}
}

// Walk visits every declaration of the subtree rooted at id in source order.
// Returning false from fn skips the children of that declaration.
func (d *Decls) Walk(id DeclID, fn func(DeclID) bool) {
	if !fn(id) {
		return
	}
	if td := d.Type(id); td != nil {
		for _, m := range td.Members {
			d.Walk(m, fn)
		}
	}
}
