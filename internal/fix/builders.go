package fix

import (
	"lockweak/internal/diag"
	"lockweak/internal/source"
)

// Option настраивает diag.Fix при построении.
type Option func(*diag.Fix)

func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) { f.Applicability = app }
}

func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) { f.Kind = kind }
}

// Preferred marks the fix an editor should offer first.
func Preferred() Option {
	return func(f *diag.Fix) { f.IsPreferred = true }
}

// WithID gives the fix a stable id for `lockweak fix --id`.
func WithID(id string) Option {
	return func(f *diag.Fix) { f.ID = id }
}

// WithRequiresAll: fix осмыслен только вместе с остальными правками прогона.
func WithRequiresAll() Option {
	return func(f *diag.Fix) { f.RequiresAll = true }
}

// edit строит always-safe quick fix из одной правки. guard, если не пуст,
// должен совпасть с текущим текстом span при применении.
func edit(title string, sp source.Span, newText, guard string, opts []Option) diag.Fix {
	f := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{{Span: sp, NewText: newText, OldText: guard}},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText inserts text at an empty span.
func InsertText(title string, at source.Span, text, guard string, opts ...Option) diag.Fix {
	return edit(title, at, text, guard, opts)
}

func DeleteSpan(title string, span source.Span, expect string, opts ...Option) diag.Fix {
	return edit(title, span, "", expect, opts)
}

func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return edit(title, span, newText, expect, opts)
}
