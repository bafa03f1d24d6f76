package ast

import (
	"lockweak/internal/source"
	"lockweak/internal/token"
)

type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeEnum
	TypeActor
	TypeProtocol
	TypeExtension
)

func (k TypeKind) String() string {
	switch k {
	case TypeClass:
		return "class"
	case TypeStruct:
		return "struct"
	case TypeEnum:
		return "enum"
	case TypeActor:
		return "actor"
	case TypeProtocol:
		return "protocol"
	case TypeExtension:
		return "extension"
	default:
		return "?"
	}
}

// TypeDecl: тело `class|struct|enum|actor|protocol|extension`.
type TypeDecl struct {
	Kind TypeKind
	// Name is NoStringID for extensions: they extend a type, they do not name one.
	Name      source.StringID
	NameSpan  source.Span
	Extended  string // текст расширяемого типа для extension
	Attrs     []Attr
	Modifiers token.Modifier
	Inherits  []string
	Members   []DeclID
	Keyword   source.Span
	LBrace    source.Span
	RBrace    source.Span
}

// HasName reports whether a simple identifier can be extracted from the declaration.
func (t *TypeDecl) HasName() bool {
	return t != nil && t.Name != source.NoStringID
}
