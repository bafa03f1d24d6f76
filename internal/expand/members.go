package expand

import (
	"fmt"

	"lockweak/internal/ast"
)

// checkKind повторяется в ExpandMembers и ExpandExtensions: хост вызывает их независимо.
// nil, nil: имя не извлекается, раскрывать нечего.
func (c *Context) checkKind(attr ast.Attr, decl ast.DeclID) (*ast.TypeDecl, error) {
	td := c.Builder.Decls.Type(decl)
	if !td.HasName() {
		return nil, nil
	}
	var kind string
	switch td.Kind {
	case ast.TypeClass:
		return td, nil
	case ast.TypeEnum:
		kind = "enumeration"
	case ast.TypeStruct:
		kind = "struct"
	case ast.TypeActor:
		kind = "actor"
	case ast.TypeProtocol:
		kind = "protocol"
	default:
		kind = td.Kind.String()
	}
	msg := fmt.Sprintf("'@%s' cannot be applied to %s type '%s'", c.Names.Locked, kind, c.name(td.Name))
	return nil, c.invalidSpecifier(attr, msg)
}

// eligibleMembers returns the members of td that pass CanLockWeakReference, in order.
func (c *Context) eligibleMembers(td *ast.TypeDecl) []ast.DeclID {
	var out []ast.DeclID
	for _, m := range td.Members {
		if CanLockWeakReference(c.Builder.Decls.Var(m)) {
			out = append(out, m)
		}
	}
	return out
}

// ExpandMembers генерирует по одному полю `private let _name = Wrapper()`
// на каждый подходящий член класса.
func ExpandMembers(ctx *Context, attr ast.Attr, decl ast.DeclID) ([]ast.Code, error) {
	td, err := ctx.checkKind(attr, decl)
	if err != nil || td == nil {
		return nil, err
	}
	eligible := ctx.eligibleMembers(td)
	if len(eligible) == 0 {
		return nil, nil
	}
	out := make([]ast.Code, 0, len(eligible))
	for _, m := range eligible {
		v := ctx.Builder.Decls.Var(m)
		out = append(out, ast.Line(fmt.Sprintf("private let _%s = %s()", ctx.name(v.Name), ctx.Names.Wrapper)))
	}
	return out, nil
}

// ExpandExtensions генерирует `private extension Name { final class Wrapper ... }`.
// Ровно одно расширение на объявление, сколько бы полей ни было.
func ExpandExtensions(ctx *Context, attr ast.Attr, decl ast.DeclID) ([]ast.Extension, error) {
	td, err := ctx.checkKind(attr, decl)
	if err != nil || td == nil {
		return nil, err
	}
	if ctx.Policy == ExtensionWhenUsed && len(ctx.eligibleMembers(td)) == 0 {
		return nil, nil
	}
	name, ok := ctx.Builder.QualifiedName(decl)
	if !ok {
		return nil, nil
	}
	return []ast.Extension{{
		Access:   "private",
		TypeName: name,
		Members:  []ast.Code{ctx.wrapperType()},
	}}, nil
}

// wrapperType: блокировка, слабый слот AnyObject? и withLock с defer unlock.
func (c *Context) wrapperType() ast.Code {
	lock := c.Names.Lock
	return ast.Block("final class "+c.Names.Wrapper+": @unchecked Sendable {",
		ast.Code{
			Line:  "private let lock: " + lock + " = {",
			Body:  []ast.Code{ast.Line(lock + "()")},
			Close: "}()",
		},
		ast.Line("private(set) weak var value: AnyObject?"),
		ast.Block("func withLock<R>(_ body: (inout AnyObject?) throws -> R) rethrows -> R {",
			ast.Line("lock.lock()"),
			ast.Block("defer {",
				ast.Line("lock.unlock()"),
			),
			ast.Line("return try body(&value)"),
		),
	)
}

// ExpandMemberAttributes возвращает маркер для member, если он подходит и ещё не помечен.
func ExpandMemberAttributes(ctx *Context, attr ast.Attr, decl, member ast.DeclID) []ast.Attr {
	td := ctx.Builder.Decls.Type(decl)
	if td == nil || td.Kind != ast.TypeClass {
		return nil
	}
	v := ctx.Builder.Decls.Var(member)
	if v == nil || ctx.RegisterAttr(v) >= 0 || !CanLockWeakReference(v) {
		return nil
	}
	return []ast.Attr{ctx.Marker()}
}

// ExpandAccessors заменяет хранимое свойство парой get/set через `_name.withLock`.
// Неподходящий член или тип без обёрнутого имени дают пустой результат.
func ExpandAccessors(ctx *Context, attr ast.Attr, member ast.DeclID) []ast.Code {
	v := ctx.Builder.Decls.Var(member)
	if !CanLockWeakReference(v) {
		return nil
	}
	name := ctx.name(v.Name)
	wrapped := v.Type.Wrapped
	if name == "" || wrapped == "" {
		return nil
	}
	return []ast.Code{
		ast.Block("get {",
			ast.Block("_"+name+".withLock {",
				ast.Line("$0 as? "+wrapped),
			),
		),
		ast.Block("set {",
			ast.Block("_"+name+".withLock {",
				ast.Line("$0 = newValue"),
			),
		),
	}
}
