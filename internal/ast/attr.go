package ast

import "lockweak/internal/source"

// Attr описывает атрибут вида `@Name` или `@Name(args...)`.
type Attr struct {
	Name source.StringID
	// Args: сырой текст между скобками; HasArgs различает `@A` и `@A()`
	Args    string
	HasArgs bool
	Span    source.Span
	// Extent covers the attribute plus the whitespace after it, up to the next
	// token or comment. Removing Extent removes the attribute cleanly.
	Extent source.Span
	// Synthetic marks attributes injected by expansion rather than written in source.
	Synthetic bool
}

// FindAttr returns the index of the first attribute named name, or -1.
func FindAttr(attrs []Attr, name source.StringID) int {
	if name == source.NoStringID {
		return -1
	}
	for i := range attrs {
		if attrs[i].Name == name {
			return i
		}
	}
	return -1
}

// HasAttr reports whether attrs contain an attribute named name.
func HasAttr(attrs []Attr, name source.StringID) bool {
	return FindAttr(attrs, name) >= 0
}
