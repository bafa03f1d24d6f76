package fix

import (
	"testing"

	"lockweak/internal/diag"
	"lockweak/internal/source"
)

func TestDeleteSpanGuardsOldText(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte("@LockedWeakReference\nclass C {}"))

	span := source.Span{File: fileID, Start: 0, End: 21}
	f := DeleteSpan("remove attribute", span, "@LockedWeakReference\n", WithRequiresAll())

	if !f.RequiresAll {
		t.Error("expected RequiresAll to be true")
	}
	if len(f.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(f.Edits))
	}
	edit := f.Edits[0]
	if edit.NewText != "" {
		t.Errorf("expected empty NewText for deletion, got %q", edit.NewText)
	}
	if edit.OldText != "@LockedWeakReference\n" {
		t.Errorf("unexpected OldText %q", edit.OldText)
	}
	if f.Kind != diag.FixKindQuickFix || f.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Errorf("unexpected defaults: %v %v", f.Kind, f.Applicability)
	}
}

func TestReplaceAndInsert(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte("let x = 1"))

	r := ReplaceSpan("let to var", source.Span{File: fileID, Start: 0, End: 3}, "var", "let")
	if r.Edits[0].NewText != "var" || r.Edits[0].OldText != "let" {
		t.Errorf("replace edit: %+v", r.Edits[0])
	}
	in := InsertText("add weak", source.Span{File: fileID, Start: 0, End: 0}, "weak ", "")
	if in.Edits[0].Span.Start != in.Edits[0].Span.End {
		t.Errorf("insert must be zero-length")
	}
}

func TestMultipleOptions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte("let x = 1"))

	f := InsertText(
		"Test fix",
		source.Span{File: fileID},
		"// ",
		"",
		WithRequiresAll(),
		Preferred(),
		WithID("custom-id"),
		WithKind(diag.FixKindRefactor),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
		nil,
	)
	if !f.RequiresAll || !f.IsPreferred {
		t.Error("expected RequiresAll and IsPreferred")
	}
	if f.ID != "custom-id" {
		t.Errorf("expected ID 'custom-id', got %q", f.ID)
	}
	if f.Kind != diag.FixKindRefactor {
		t.Errorf("expected Kind FixKindRefactor, got %v", f.Kind)
	}
	if f.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Errorf("expected Applicability SafeWithHeuristics, got %v", f.Applicability)
	}
}
