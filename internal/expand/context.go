package expand

import (
	"lockweak/internal/ast"
	"lockweak/internal/source"
)

// Context: всё, что фазам нужно знать об окружении.
type Context struct {
	Builder *ast.Builder
	// File is the source the declarations came from; used for fix guards.
	File   *source.File
	Names  Names
	Policy ExtensionPolicy

	locked   source.StringID
	register source.StringID
}

// NewContext interns the attribute names once.
func NewContext(b *ast.Builder, file *source.File, names Names, policy ExtensionPolicy) *Context {
	names = names.withDefaults()
	return &Context{
		Builder:  b,
		File:     file,
		Names:    names,
		Policy:   policy,
		locked:   b.StringsInterner.Intern(names.Locked),
		register: b.StringsInterner.Intern(names.Register),
	}
}

// LockedAttr returns the index of the class attribute on td, or -1.
func (c *Context) LockedAttr(td *ast.TypeDecl) int {
	if td == nil {
		return -1
	}
	return ast.FindAttr(td.Attrs, c.locked)
}

// RegisterAttr returns the index of the member marker on v, or -1.
func (c *Context) RegisterAttr(v *ast.VarDecl) int {
	if v == nil {
		return -1
	}
	return ast.FindAttr(v.Attrs, c.register)
}

// Marker builds the synthetic member marker.
func (c *Context) Marker() ast.Attr {
	return ast.Attr{Name: c.register, Synthetic: true}
}

func (c *Context) name(id source.StringID) string {
	return c.Builder.Name(id)
}
