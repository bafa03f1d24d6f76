package expand

// Names: имена, которые раскрытие читает и генерирует.
type Names struct {
	// Locked: атрибут на классе, Register: маркер на члене
	Locked   string
	Register string
	// Wrapper: имя вложенного типа-обёртки, Lock: тип блокировки внутри неё
	Wrapper string
	Lock    string
}

// DefaultNames returns the names used when nothing is configured.
func DefaultNames() Names {
	return Names{
		Locked:   "LockedWeakReference",
		Register: "RegisterWeakReference",
		Wrapper:  "LockedWeakReference",
		Lock:     "NSLock",
	}
}

func (n Names) withDefaults() Names {
	def := DefaultNames()
	if n.Locked == "" {
		n.Locked = def.Locked
	}
	if n.Register == "" {
		n.Register = def.Register
	}
	if n.Wrapper == "" {
		n.Wrapper = def.Wrapper
	}
	if n.Lock == "" {
		n.Lock = def.Lock
	}
	return n
}

// ExtensionPolicy decides whether a class with no eligible members still gets the wrapper extension.
type ExtensionPolicy uint8

const (
	// ExtensionAlways emits the extension once the kind check passes.
	ExtensionAlways ExtensionPolicy = iota
	// ExtensionWhenUsed emits it only when at least one backing field exists.
	ExtensionWhenUsed
)

func (p ExtensionPolicy) String() string {
	if p == ExtensionWhenUsed {
		return "when-used"
	}
	return "always"
}

// ParseExtensionPolicy accepts "always" and "when-used".
func ParseExtensionPolicy(s string) (ExtensionPolicy, bool) {
	switch s {
	case "", "always":
		return ExtensionAlways, true
	case "when-used":
		return ExtensionWhenUsed, true
	default:
		return ExtensionAlways, false
	}
}
