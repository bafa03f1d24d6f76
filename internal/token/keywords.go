package token

var keywords = map[string]Kind{
	"class":          KwClass,
	"struct":         KwStruct,
	"enum":           KwEnum,
	"protocol":       KwProtocol,
	"extension":      KwExtension,
	"var":            KwVar,
	"let":            KwLet,
	"func":           KwFunc,
	"init":           KwInit,
	"deinit":         KwDeinit,
	"subscript":      KwSubscript,
	"typealias":      KwTypealias,
	"import":         KwImport,
	"case":           KwCase,
	"static":         KwStatic,
	"as":             KwAs,
	"where":          KwWhere,
	"operator":       KwOperator,
	"associatedtype": KwAssocType,
	"inout":          KwInout,
}

// LookupKeyword возвращает Kind, если ident: жёсткое ключевое слово.
// Регистр важен.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Modifier is a bit in a declaration modifier set.
type Modifier uint32

const (
	ModNone Modifier = 0

	ModWeak Modifier = 1 << iota
	ModUnowned
	ModStatic
	ModClass // `class var` / `class func` inside a class body
	ModFinal
	ModLazy
	ModOverride
	ModPrivate
	ModFileprivate
	ModInternal
	ModPublic
	ModOpen
	ModPackage
	ModRequired
	ModConvenience
	ModDynamic
	ModMutating
	ModNonmutating
	ModNonisolated
	ModIndirect
	ModOptional
	ModPrefix
	ModPostfix
	ModInfix
	ModDistributed
)

var modifiers = map[string]Modifier{
	"weak":        ModWeak,
	"unowned":     ModUnowned,
	"static":      ModStatic,
	"class":       ModClass,
	"final":       ModFinal,
	"lazy":        ModLazy,
	"override":    ModOverride,
	"private":     ModPrivate,
	"fileprivate": ModFileprivate,
	"internal":    ModInternal,
	"public":      ModPublic,
	"open":        ModOpen,
	"package":     ModPackage,
	"required":    ModRequired,
	"convenience": ModConvenience,
	"dynamic":     ModDynamic,
	"mutating":    ModMutating,
	"nonmutating": ModNonmutating,
	"nonisolated": ModNonisolated,
	"indirect":    ModIndirect,
	"optional":    ModOptional,
	"prefix":      ModPrefix,
	"postfix":     ModPostfix,
	"infix":       ModInfix,
	"distributed": ModDistributed,
}

// LookupModifier classifies a declaration modifier word.
func LookupModifier(word string) (Modifier, bool) {
	m, ok := modifiers[word]
	return m, ok
}

// Has reports whether every bit of other is set in m.
func (m Modifier) Has(other Modifier) bool {
	return other != ModNone && m&other == other
}

// AccessorKind names an accessor inside a property accessor block.
type AccessorKind uint8

const (
	AccessorUnknown AccessorKind = iota
	AccessorGet
	AccessorSet
	AccessorWillSet
	AccessorDidSet
	AccessorModify
	AccessorRead
	AccessorInit
	AccessorAddress
	AccessorMutableAddress
)

var accessors = map[string]AccessorKind{
	"get":                  AccessorGet,
	"set":                  AccessorSet,
	"willSet":              AccessorWillSet,
	"didSet":               AccessorDidSet,
	"_modify":              AccessorModify,
	"_read":                AccessorRead,
	"init":                 AccessorInit,
	"unsafeAddress":        AccessorAddress,
	"unsafeMutableAddress": AccessorMutableAddress,
}

// LookupAccessor classifies a word that may start an accessor.
func LookupAccessor(word string) (AccessorKind, bool) {
	k, ok := accessors[word]
	return k, ok
}

func (k AccessorKind) String() string {
	for word, kind := range accessors {
		if kind == k {
			return word
		}
	}
	return "unknown"
}

// IsObserver reports whether k is a property observer rather than a real accessor.
func (k AccessorKind) IsObserver() bool {
	return k == AccessorWillSet || k == AccessorDidSet
}

var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModPrivate, "private"}, {ModFileprivate, "fileprivate"}, {ModInternal, "internal"},
	{ModPackage, "package"}, {ModPublic, "public"}, {ModOpen, "open"},
	{ModStatic, "static"}, {ModClass, "class"}, {ModFinal, "final"},
	{ModOverride, "override"}, {ModRequired, "required"}, {ModConvenience, "convenience"},
	{ModLazy, "lazy"}, {ModWeak, "weak"}, {ModUnowned, "unowned"},
	{ModDynamic, "dynamic"}, {ModMutating, "mutating"}, {ModNonmutating, "nonmutating"},
	{ModNonisolated, "nonisolated"}, {ModIndirect, "indirect"}, {ModOptional, "optional"},
	{ModPrefix, "prefix"}, {ModPostfix, "postfix"}, {ModInfix, "infix"},
	{ModDistributed, "distributed"},
}

// Names lists the set modifiers in a stable order for dumps.
func (m Modifier) Names() []string {
	var out []string
	for _, e := range modifierOrder {
		if m.Has(e.mod) {
			out = append(out, e.name)
		}
	}
	return out
}
