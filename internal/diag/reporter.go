package diag

import "lockweak/internal/source"

// Reporter принимает диагностики от лексера, парсера и раскрытия.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// ReportBuilder копит заметки и правки, Emit отправляет один раз.
// Все методы безопасны на nil.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func (b *ReportBuilder) update(fn func(Diagnostic) Diagnostic) *ReportBuilder {
	if b != nil {
		b.d = fn(b.d)
	}
	return b
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	return b.update(func(d Diagnostic) Diagnostic { return d.WithNote(sp, msg) })
}

// WithFix adds an always-safe quick fix.
func (b *ReportBuilder) WithFix(title string, edits ...TextEdit) *ReportBuilder {
	return b.update(func(d Diagnostic) Diagnostic { return d.WithFix(title, edits...) })
}

func (b *ReportBuilder) WithFixSuggestion(fix Fix) *ReportBuilder {
	return b.update(func(d Diagnostic) Diagnostic { return d.WithFixSuggestion(fix) })
}

func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	b.d.ReportTo(b.to)
}

// Diagnostic returns what has been built so far without emitting it.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}

// BagReporter складывает всё в Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Fixes: fixes})
	}
}

type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note, []Fix) {}
