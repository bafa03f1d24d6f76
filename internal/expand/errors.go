package expand

import (
	"strings"

	"lockweak/internal/ast"
	"lockweak/internal/diag"
	"lockweak/internal/fix"
)

// DiagnosticsError is returned by an expansion that rejected its declaration.
type DiagnosticsError struct {
	Diagnostics []diag.Diagnostic
}

func (e *DiagnosticsError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Message
	}
	return strings.Join(msgs, "; ")
}

// Report forwards every diagnostic to r.
func (e *DiagnosticsError) Report(r diag.Reporter) {
	if e == nil {
		return
	}
	for _, d := range e.Diagnostics {
		d.ReportTo(r)
	}
}

// invalidSpecifier строит ошибку на атрибуте с fix, удаляющим атрибут.
func (c *Context) invalidSpecifier(attr ast.Attr, msg string) *DiagnosticsError {
	d := diag.NewError(diag.MacInvalidSpecifier, attr.Span, msg)
	if !attr.Synthetic {
		extent := attr.Extent
		if extent.Empty() {
			extent = attr.Span
		}
		guard := ""
		if c.File != nil {
			guard = c.File.Text(extent)
		}
		d = d.WithFixSuggestion(fix.DeleteSpan(
			"remove '@"+c.Names.Locked+"'",
			extent,
			guard,
			fix.Preferred(),
		))
	}
	return &DiagnosticsError{Diagnostics: []diag.Diagnostic{d}}
}
