package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"lockweak/internal/diag"
	"lockweak/internal/fix"
	"lockweak/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("class C {\n    var s = \"unterminated\n}\n")
	fileID := fs.AddVirtual("Sources/C.swift", content)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 22, End: 35}, "unterminated string literal"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", output.Count)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "C.swift" {
		t.Errorf("Expected file=C.swift, got %s", d.Location.File)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 13 {
		t.Errorf("Expected 2:13, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("@LockedWeakReference\nstruct S {}\n")
	fileID := fs.AddVirtual("S.swift", content)

	attr := source.Span{File: fileID, Start: 0, End: 20}
	d := diag.NewError(diag.MacInvalidSpecifier, attr, "'@LockedWeakReference' cannot be applied to struct type 'S'").
		WithNote(source.Span{File: fileID, Start: 21, End: 27}, "declared here").
		WithFixSuggestion(fix.DeleteSpan("remove '@LockedWeakReference'", source.Span{File: fileID, Start: 0, End: 21}, "@LockedWeakReference\n", fix.Preferred()))
	bag := diag.NewBag(4)
	bag.Add(d)

	output, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true, IncludeFixes: true, IncludePreviews: true})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	got := output.Diagnostics[0]
	if got.Code != "MAC3001" {
		t.Fatalf("Expected MAC3001, got %s", got.Code)
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != "declared here" {
		t.Fatalf("unexpected notes %+v", got.Notes)
	}
	if len(got.Fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d", len(got.Fixes))
	}
	fx := got.Fixes[0]
	if fx.Title != "remove '@LockedWeakReference'" || !fx.IsPreferred || fx.Kind != "quickfix" || fx.Applicability != "always-safe" {
		t.Fatalf("unexpected fix %+v", fx)
	}
	if len(fx.Edits) != 1 || fx.Edits[0].NewText != "" || fx.Edits[0].OldText != "@LockedWeakReference\n" {
		t.Fatalf("unexpected edits %+v", fx.Edits)
	}
	e := fx.Edits[0]
	if len(e.BeforeLines) != 2 || e.BeforeLines[0] != "@LockedWeakReference" || len(e.AfterLines) != 1 || e.AfterLines[0] != "struct S {}" {
		t.Fatalf("unexpected preview %+v", fx.Edits[0])
	}
}

func TestJSONWithoutPositionsAndMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.swift", []byte("class A {}\n"))
	bag := diag.NewBag(10)
	for i := range 5 {
		off := uint32(i)
		bag.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: fileID, Start: off, End: off + 1}, "unexpected"))
	}

	output, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	if output.Count != 2 {
		t.Fatalf("Expected Max to cut output to 2, got %d", output.Count)
	}
	if loc := output.Diagnostics[0].Location; loc.StartLine != 0 || loc.StartCol != 0 {
		t.Fatalf("positions must be omitted: %+v", loc)
	}
	if output.Diagnostics[0].Fixes != nil || output.Diagnostics[0].Notes != nil {
		t.Fatalf("fixes and notes are off by default")
	}
}

func TestJSONNilBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil, source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatalf("JSON(nil): %v", err)
	}
	if got := buf.String(); got != "{\n  \"diagnostics\": [],\n  \"count\": 0\n}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
