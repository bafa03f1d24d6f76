package format

import "strings"

type Options struct {
	IndentWidth int
	UseTabs     bool
	// Indent, если задан, перекрывает IndentWidth/UseTabs (обычно берётся из файла).
	Indent string
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// Unit returns one level of indentation.
func (o Options) Unit() string {
	if o.Indent != "" {
		return o.Indent
	}
	o = o.withDefaults()
	if o.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentWidth)
}
