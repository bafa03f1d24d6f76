package ast

import (
	"lockweak/internal/source"
	"lockweak/internal/token"
)

type BindingKind uint8

const (
	BindingVar BindingKind = iota
	BindingLet
)

func (k BindingKind) String() string {
	if k == BindingLet {
		return "let"
	}
	return "var"
}

// TypeRef: аннотация типа первой привязки.
type TypeRef struct {
	Text string
	// Optional is true for the `T?` sugar only; `T!` and `Optional<T>` do not count.
	Optional bool
	Wrapped  string
	Span     source.Span
}

type AccessorsKind uint8

const (
	AccessorsNone AccessorsKind = iota
	// AccessorsGetterOnly: `var x: T { expr }`
	AccessorsGetterOnly
	// AccessorsList: `{ get set }`, `{ willSet {} didSet {} }` и т.п.
	AccessorsList
)

func (k AccessorsKind) String() string {
	switch k {
	case AccessorsGetterOnly:
		return "getter"
	case AccessorsList:
		return "list"
	default:
		return "none"
	}
}

type Accessor struct {
	Kind token.AccessorKind
	Span source.Span
}

// VarDecl describes a `var`/`let` member. Only the first binding of a
// multi-binding declaration is recorded; Bindings counts all of them.
type VarDecl struct {
	Binding      BindingKind
	Name         source.StringID
	NameSpan     source.Span
	Type         *TypeRef
	HasInit      bool
	InitSpan     source.Span
	Modifiers    token.Modifier
	Accessors    AccessorsKind
	AccessorList []Accessor
	AccessorSpan source.Span
	Attrs        []Attr
	Bindings     int
	Keyword      source.Span
}
