package format

import (
	"lockweak/internal/ast"
)

// RenderCode печатает фрагмент построчно. Каждая строка получает отступ
// base + уровень вложенности; после последней строки перевода строки нет.
func RenderCode(c ast.Code, base string, opt Options) string {
	return RenderCodes([]ast.Code{c}, base, opt)
}

// RenderCodes печатает фрагменты подряд, по одному на строку.
func RenderCodes(codes []ast.Code, base string, opt Options) string {
	w := NewWriter(nil, opt)
	w.SetBase(base)
	for i, c := range codes {
		if i > 0 {
			w.Newline()
		}
		w.StartLine()
		writeCode(w, c)
	}
	return string(w.Bytes())
}

func writeCode(w *Writer, c ast.Code) {
	w.WriteString(c.Line)
	if !c.IsBlock() {
		return
	}
	w.IndentPush()
	for _, child := range c.Body {
		w.Newline()
		writeCode(w, child)
	}
	w.IndentPop()
	w.Newline()
	w.WriteString(c.Close)
}
