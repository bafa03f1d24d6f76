package diag

import (
	"testing"

	"lockweak/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.swift", []byte("a\nb\n"), 0)
	generated := fs.Add("/workspace/.lockweak/out.swift", []byte("x\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: generated, Start: 0, End: 0}, Msg: "skip me"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevError,
			Code:     MacInvalidSpecifier,
			Message:  "'@LockedWeakReference' cannot be applied to struct type 'S'",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevWarning,
			Code:     SynUnexpectedModifier,
			Message:  "unknown file",
			Primary:  source.Span{File: 99, Start: 0, End: 1},
		},
	}

	expected := "error SYN2001 testdata/golden/sample.swift:1:1 first line second\n" +
		"error MAC3001 testdata/golden/sample.swift:2:1 '@LockedWeakReference' cannot be applied to struct type 'S'\n" +
		"note SYN2001 testdata/golden/sample.swift:2:1 note line"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynUnexpectedToken:  "SYN2001",
		MacInvalidSpecifier: "MAC3001",
		IOLoadFileError:     "IO4001",
		CfgInvalidConfig:    "CFG5001",
		UnknownCode:         "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if MacInvalidSpecifier.Title() != "invalid specifier" {
		t.Fatalf("unexpected title %q", MacInvalidSpecifier.Title())
	}
	if MacInvalidSpecifier.Domain() != "LockedWeakReference" {
		t.Fatalf("unexpected domain %q", MacInvalidSpecifier.Domain())
	}
	if Code(3999).Title() != "Unknown error" {
		t.Fatalf("unknown codes fall back to the default title")
	}
}

func TestDedupReporterCollapsesRepeats(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 4, End: 24}

	for range 2 {
		ReportError(r, MacInvalidSpecifier, sp, "same").Emit()
	}
	ReportError(r, MacInvalidSpecifier, sp, "other").Emit()
	ReportError(r, MacInvalidSpecifier, source.Span{Start: 5, End: 24}, "same").Emit()

	if bag.Len() != 3 {
		t.Fatalf("expected 3 unique diagnostics, got %d", bag.Len())
	}
}

func TestBagLimitSortAndDedup(t *testing.T) {
	bag := NewBag(3)
	add := func(start uint32, sev Severity, code Code) bool {
		return bag.Add(New(sev, code, source.Span{Start: start, End: start + 1}, "m"))
	}
	add(10, SevWarning, SynUnexpectedModifier)
	add(2, SevError, SynUnexpectedToken)
	add(2, SevError, SynUnexpectedToken)
	if add(0, SevError, SynExpectType) {
		t.Fatalf("bag must reject items past the limit")
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
	bag.Sort()
	if bag.Items()[0].Primary.Start != 2 {
		t.Fatalf("sort by start failed: %+v", bag.Items())
	}
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("dedup left %d items", bag.Len())
	}

	other := NewBag(1)
	other.Add(NewError(MacInvalidSpecifier, source.Span{}, "x"))
	bag.Merge(other)
	if bag.Len() != 3 {
		t.Fatalf("merge: %d", bag.Len())
	}
	bag.Filter(func(d Diagnostic) bool { return d.Code != SynUnexpectedModifier })
	if bag.Len() != 2 {
		t.Fatalf("filter: %d", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	sp := source.Span{Start: 1, End: 3}
	b := ReportError(BagReporter{Bag: bag}, MacInvalidSpecifier, sp, "msg").
		WithNote(sp, "note").
		WithFix("remove", TextEdit{Span: sp, NewText: ""})
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Fatalf("notes/fixes lost: %+v", d)
	}
	if d.Fixes[0].Applicability != FixApplicabilityAlwaysSafe || d.Fixes[0].Kind != FixKindQuickFix {
		t.Fatalf("unexpected fix metadata: %+v", d.Fixes[0])
	}
	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(sp, "x").Emit()
}
