package lexer

import (
	"lockweak/internal/diag"
	"lockweak/internal/source"
)

// maxTokenLength caps a single token; longer input is reported and lexing stops.
const maxTokenLength = 1 << 20

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
