package expand

import (
	"lockweak/internal/ast"
	"lockweak/internal/token"
)

// CanLockWeakReference reports whether v can be rewritten into a locked accessor.
// Every phase decides through it, so a member gets a backing field exactly
// when it gets accessors.
func CanLockWeakReference(v *ast.VarDecl) bool {
	return IsSingleBinding(v) &&
		IsOptional(v) &&
		IsWeak(v) &&
		IsInstance(v) &&
		!HasAccessorBlock(v) &&
		!IsImmutable(v)
}

// IsOptional: тип первой привязки записан как `T?`
func IsOptional(v *ast.VarDecl) bool {
	return v != nil && v.Type != nil && v.Type.Optional
}

// IsWeak reports a `weak` modifier; `unowned` does not count.
func IsWeak(v *ast.VarDecl) bool {
	return v != nil && v.Modifiers.Has(token.ModWeak)
}

// IsInstance: нет `static` и `class`
func IsInstance(v *ast.VarDecl) bool {
	return v != nil && !v.Modifiers.Has(token.ModStatic) && !v.Modifiers.Has(token.ModClass)
}

// HasAccessorBlock is true for any `{ ... }` after the binding, observers included:
// the rewrite would drop their bodies.
func HasAccessorBlock(v *ast.VarDecl) bool {
	return v != nil && v.Accessors != ast.AccessorsNone
}

// IsImmutable: `let` binding.
func IsImmutable(v *ast.VarDecl) bool {
	return v != nil && v.Binding == ast.BindingLet
}

// IsSingleBinding rejects `weak var a: A?, b: B?`: one accessor block cannot
// cover several bindings.
func IsSingleBinding(v *ast.VarDecl) bool {
	return v != nil && v.Bindings <= 1
}
